/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package server

import (
	"encoding/json"
	"math"
	"strconv"
)

// normalizeVariables converts the JSON numbers in variables that hold integral values into int64,
// so that they coerce to Int and ID as well as to Float. It modifies variables in place.
func normalizeVariables(variables map[string]interface{}) map[string]interface{} {
	for name, value := range variables {
		variables[name] = normalizeValue(value)
	}
	return variables
}

func normalizeValue(value interface{}) interface{} {
	switch value := value.(type) {
	case float64:
		if value == math.Trunc(value) && value >= math.MinInt64 && value < math.MaxInt64 {
			return int64(value)
		}
		return value

	case json.Number:
		if i, err := strconv.ParseInt(value.String(), 10, 64); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return normalizeValue(f)
		}
		return value.String()

	case map[string]interface{}:
		return normalizeVariables(value)

	case []interface{}:
		for i, v := range value {
			value[i] = normalizeValue(v)
		}
		return value
	}
	return value
}
