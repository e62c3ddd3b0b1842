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

package model_test

import (
	"github.com/botobag/rendezvous/model"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Patch", func() {
	It("leaves absent fields untouched", func() {
		title := "Launch"
		e := model.Event{
			ID:     "1",
			Title:  &title,
			UserID: model.RefOf("7"),
		}

		patch := model.EventPatch{
			Desc: model.Some("party"),
		}
		patch.Apply(&e)

		Expect(*e.Title).Should(Equal("Launch"))
		Expect(*e.Desc).Should(Equal("party"))
		Expect(e.UserID.Matches("7")).Should(BeTrue())
	})

	It("clears nullable fields on explicit null", func() {
		title := "Launch"
		e := model.Event{
			ID:         "1",
			Title:      &title,
			LocationID: model.RefOf("3"),
		}

		patch := model.EventPatch{
			Title:      model.Null[string](),
			LocationID: model.Null[model.Ref](),
		}
		patch.Apply(&e)

		Expect(e.Title).Should(BeNil())
		Expect(e.LocationID).Should(BeNil())
	})

	It("ignores explicit null on non-null user fields", func() {
		u := model.User{
			ID:       "1",
			Username: "ada",
			Email:    "ada@example.com",
		}

		patch := model.UserPatch{
			Username: model.Null[string](),
			Email:    model.Some("ada@example.org"),
		}
		patch.Apply(&u)

		Expect(u).Should(Equal(model.User{
			ID:       "1",
			Username: "ada",
			Email:    "ada@example.org",
		}))
	})

	It("patches participant references", func() {
		p := model.Participant{ID: "4"}
		patch := model.ParticipantPatch{
			UserID:  model.Some(model.RefFromInt(2)),
			EventID: model.Some(model.Ref("9")),
		}
		patch.Apply(&p)

		Expect(p.UserID.Matches("2")).Should(BeTrue())
		Expect(p.EventID.Matches("9")).Should(BeTrue())
		Expect(p.EventID.Matches("2")).Should(BeFalse())
	})

	It("never matches an unset reference", func() {
		var ref *model.Ref
		Expect(ref.Matches("")).Should(BeFalse())
	})
})
