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

// Event is a scheduled gathering. LocationID and UserID loosely refer to the venue and the
// organizer.
type Event struct {
	ID         string
	Title      *string
	Desc       *string
	Date       *string
	From       *string
	To         *string
	LocationID *Ref
	UserID     *Ref
}

// RecordID implements store.Record.
func (e Event) RecordID() string {
	return e.ID
}

// EventPatch lists the fields to be changed on an Event.
type EventPatch struct {
	Title      Optional[string]
	Desc       Optional[string]
	Date       Optional[string]
	From       Optional[string]
	To         Optional[string]
	LocationID Optional[Ref]
	UserID     Optional[Ref]
}

// Apply merges the fields present in patch into e.
func (patch *EventPatch) Apply(e *Event) {
	patch.Title.assign(&e.Title)
	patch.Desc.assign(&e.Desc)
	patch.Date.assign(&e.Date)
	patch.From.assign(&e.From)
	patch.To.assign(&e.To)
	patch.LocationID.assign(&e.LocationID)
	patch.UserID.assign(&e.UserID)
}
