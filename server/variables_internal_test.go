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
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("normalizeVariables", func() {
	It("converts integral numbers", func() {
		Expect(normalizeVariables(map[string]interface{}{
			"int":      float64(7),
			"float":    2.5,
			"negative": float64(-3),
			"number":   json.Number("12"),
			"decimal":  json.Number("1.25"),
			"string":   "8",
			"null":     nil,
			"nested": map[string]interface{}{
				"list": []interface{}{float64(1), 1.5, json.Number("2")},
			},
		})).Should(Equal(map[string]interface{}{
			"int":      int64(7),
			"float":    2.5,
			"negative": int64(-3),
			"number":   int64(12),
			"decimal":  1.25,
			"string":   "8",
			"null":     nil,
			"nested": map[string]interface{}{
				"list": []interface{}{int64(1), 1.5, int64(2)},
			},
		}))
	})

	It("accepts nil", func() {
		Expect(normalizeVariables(nil)).Should(BeNil())
	})
})

var _ = Describe("cacheKey", func() {
	It("distinguishes operation names", func() {
		Expect(cacheKey("query A { a } query B { b }", "A")).ShouldNot(Equal(cacheKey("query A { a } query B { b }", "B")))
		Expect(cacheKey("{ a }", "")).Should(Equal(cacheKey("{ a }", "")))
	})
})

var _ = Describe("acceptsEventStream", func() {
	It("matches text/event-stream among accepted types", func() {
		Expect(acceptsEventStream(newRequestWithAccept("text/event-stream"))).Should(BeTrue())
		Expect(acceptsEventStream(newRequestWithAccept("application/json, text/event-stream;q=0.9"))).Should(BeTrue())
		Expect(acceptsEventStream(newRequestWithAccept("application/json"))).Should(BeFalse())
		Expect(acceptsEventStream(newRequestWithAccept(""))).Should(BeFalse())
	})
})

func newRequestWithAccept(accept string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req
}
