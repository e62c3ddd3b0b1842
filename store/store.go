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

package store

import (
	"github.com/botobag/rendezvous/model"
)

// Store aggregates one collection per entity kind. Collections share no state.
type Store struct {
	Users        *Collection[model.User]
	Events       *Collection[model.Event]
	Locations    *Collection[model.Location]
	Participants *Collection[model.Participant]
}

// New creates a Store with empty collections.
func New() *Store {
	return &Store{
		Users:        NewCollection[model.User](KindUser),
		Events:       NewCollection[model.Event](KindEvent),
		Locations:    NewCollection[model.Location](KindLocation),
		Participants: NewCollection[model.Participant](KindParticipant),
	}
}

// Counts returns the number of records per kind.
func (s *Store) Counts() map[Kind]int {
	return map[Kind]int{
		KindUser:        s.Users.Len(),
		KindEvent:       s.Events.Len(),
		KindLocation:    s.Locations.Len(),
		KindParticipant: s.Participants.Len(),
	}
}
