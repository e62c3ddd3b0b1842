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

// Location is a venue with coordinates.
type Location struct {
	ID   string
	Name *string
	Desc *string
	Lat  *float64
	Lng  *float64
}

// RecordID implements store.Record.
func (l Location) RecordID() string {
	return l.ID
}

// LocationPatch lists the fields to be changed on a Location.
type LocationPatch struct {
	Name Optional[string]
	Desc Optional[string]
	Lat  Optional[float64]
	Lng  Optional[float64]
}

// Apply merges the fields present in patch into l.
func (patch *LocationPatch) Apply(l *Location) {
	patch.Name.assign(&l.Name)
	patch.Desc.assign(&l.Desc)
	patch.Lat.assign(&l.Lat)
	patch.Lng.assign(&l.Lng)
}
