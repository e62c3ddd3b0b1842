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

package messages_test

import (
	"github.com/botobag/rendezvous/messages"
	"golang.org/x/text/language"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	var catalog *messages.Catalog

	BeforeEach(func() {
		var err error
		catalog, err = messages.New("en", nil)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("loads every embedded language", func() {
		Expect(catalog.Languages()).Should(ConsistOf(language.English, language.French))
	})

	It("names the kind in not-found messages", func() {
		Expect(catalog.NotFound("", "Event")).Should(Equal("Event not found"))
		Expect(catalog.NotFound("en", "Participant")).Should(Equal("Participant not found"))
	})

	It("negotiates from an Accept-Language header", func() {
		Expect(catalog.NotFound("fr-CH, fr;q=0.9, en;q=0.8", "Location")).Should(Equal("Lieu introuvable"))
	})

	It("falls back to the default language", func() {
		Expect(catalog.NotFound("de", "User")).Should(Equal("User not found"))
	})

	It("uses the configured default language", func() {
		fr, err := messages.New("fr", nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(fr.NotFound("", "User")).Should(Equal("Utilisateur introuvable"))
		Expect(fr.StreamingTransportRequired("")).Should(ContainSubstring("transport en continu"))
	})

	It("returns the id of unknown messages", func() {
		Expect(catalog.Localize("en", "NoSuchMessage", nil)).Should(Equal("NoSuchMessage"))
	})

	It("rejects an invalid default locale", func() {
		_, err := messages.New("not a locale!", nil)
		Expect(err).Should(HaveOccurred())
	})
})
