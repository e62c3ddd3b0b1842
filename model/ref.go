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

package model

import (
	"strconv"
)

// Ref refers to the id of another record. It is stored in string form so that references given as
// GraphQL Int and as GraphQL ID compare equal when they spell the same id.
type Ref string

// RefFromInt creates a Ref from an integer reference.
func RefFromInt(i int) Ref {
	return Ref(strconv.Itoa(i))
}

// RefOf returns a pointer to a Ref holding the given id.
func RefOf(id string) *Ref {
	r := Ref(id)
	return &r
}

// Matches returns true if ref is set and refers to the given id.
func (r *Ref) Matches(id string) bool {
	return r != nil && string(*r) == id
}

// String returns the referenced id.
func (r Ref) String() string {
	return string(r)
}
