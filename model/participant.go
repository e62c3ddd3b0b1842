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

// Participant records that a user takes part in an event.
type Participant struct {
	ID      string
	UserID  *Ref
	EventID *Ref
}

// RecordID implements store.Record.
func (p Participant) RecordID() string {
	return p.ID
}

// ParticipantPatch lists the fields to be changed on a Participant.
type ParticipantPatch struct {
	UserID  Optional[Ref]
	EventID Optional[Ref]
}

// Apply merges the fields present in patch into p.
func (patch *ParticipantPatch) Apply(p *Participant) {
	patch.UserID.assign(&p.UserID)
	patch.EventID.assign(&p.EventID)
}
