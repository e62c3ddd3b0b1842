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

package schema

import (
	"github.com/botobag/artemis/graphql"
	"github.com/botobag/rendezvous/model"
)

// inputData returns the coerced "data" argument. It is nil when the argument was omitted or null.
func inputData(info graphql.ResolveInfo) map[string]interface{} {
	data, _ := info.Args().Get("data").(map[string]interface{})
	return data
}

// argID returns the coerced "id" argument, or "" if it was omitted or null.
func argID(info graphql.ResolveInfo) string {
	id, _ := info.Args().Get("id").(string)
	return id
}

// optional reads an input field. An absent field gives an unset Optional and an explicit null
// gives a set Optional without value.
func optional[T any](data map[string]interface{}, name string, convert func(value interface{}) (T, bool)) model.Optional[T] {
	value, exists := data[name]
	if !exists {
		return model.Optional[T]{}
	}
	if value == nil {
		return model.Null[T]()
	}
	v, ok := convert(value)
	if !ok {
		return model.Optional[T]{}
	}
	return model.Some(v)
}

func asString(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func asFloat(value interface{}) (float64, bool) {
	switch value := value.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	}
	return 0, false
}

// asRef accepts a coerced Int (stored in decimal form) or ID (stored verbatim).
func asRef(value interface{}) (model.Ref, bool) {
	switch value := value.(type) {
	case int:
		return model.RefFromInt(value), true
	case string:
		return model.Ref(value), true
	}
	return "", false
}

func userPatchOf(data map[string]interface{}) model.UserPatch {
	return model.UserPatch{
		Username: optional(data, "username", asString),
		Email:    optional(data, "email", asString),
	}
}

func eventPatchOf(data map[string]interface{}) model.EventPatch {
	return model.EventPatch{
		Title:      optional(data, "title", asString),
		Desc:       optional(data, "desc", asString),
		Date:       optional(data, "date", asString),
		From:       optional(data, "from", asString),
		To:         optional(data, "to", asString),
		LocationID: optional(data, "location_id", asRef),
		UserID:     optional(data, "user_id", asRef),
	}
}

func locationPatchOf(data map[string]interface{}) model.LocationPatch {
	return model.LocationPatch{
		Name: optional(data, "name", asString),
		Desc: optional(data, "desc", asString),
		Lat:  optional(data, "lat", asFloat),
		Lng:  optional(data, "lng", asFloat),
	}
}

func participantPatchOf(data map[string]interface{}) model.ParticipantPatch {
	return model.ParticipantPatch{
		UserID:  optional(data, "user_id", asRef),
		EventID: optional(data, "event_id", asRef),
	}
}
