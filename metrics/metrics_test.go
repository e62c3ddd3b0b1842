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

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/botobag/rendezvous/metrics"
	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func scrape(m *metrics.Metrics) string {
	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	Expect(recorder.Code).Should(Equal(http.StatusOK))
	body, err := io.ReadAll(recorder.Body)
	Expect(err).ShouldNot(HaveOccurred())
	return string(body)
}

func lineOf(exposition string, prefix string) string {
	for _, line := range strings.Split(exposition, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.New()
	})

	It("follows bus activity", func() {
		bus := pubsub.NewBus(pubsub.WithObserver(m))
		defer bus.Close()

		s1, err := bus.Subscribe(pubsub.TopicEventCreated)
		Expect(err).ShouldNot(HaveOccurred())
		_, err = bus.Subscribe(pubsub.TopicEventCreated)
		Expect(err).ShouldNot(HaveOccurred())

		bus.Publish(pubsub.TopicEventCreated, model.Event{ID: "1"})
		s1.Close()

		exposition := scrape(m)
		Expect(lineOf(exposition, `rendezvous_pubsub_published_total{topic="eventCreated"}`)).Should(HaveSuffix(" 1"))
		Expect(lineOf(exposition, `rendezvous_pubsub_deliveries_total{topic="eventCreated"}`)).Should(HaveSuffix(" 2"))
		Expect(lineOf(exposition, `rendezvous_pubsub_subscriptions{topic="eventCreated"}`)).Should(HaveSuffix(" 1"))
	})

	It("counts operations by outcome", func() {
		m.ObserveOperation("main", "mutation", false)
		m.ObserveOperation("main", "mutation", true)
		m.ObserveOperation("main", "mutation", false)

		exposition := scrape(m)
		Expect(lineOf(exposition, `rendezvous_graphql_operations_total{outcome="success",schema="main",type="mutation"}`)).Should(HaveSuffix(" 2"))
		Expect(lineOf(exposition, `rendezvous_graphql_operations_total{outcome="error",schema="main",type="mutation"}`)).Should(HaveSuffix(" 1"))
	})

	It("reports store contents", func() {
		s := store.New()
		s.Users.Insert(model.User{ID: "1"})
		s.Users.Insert(model.User{ID: "2"})
		m.WatchStore(s)

		exposition := scrape(m)
		Expect(lineOf(exposition, `rendezvous_store_records{kind="User"}`)).Should(HaveSuffix(" 2"))
		Expect(lineOf(exposition, `rendezvous_store_records{kind="Event"}`)).Should(HaveSuffix(" 0"))
	})

	It("records request durations", func() {
		m.ObserveRequest("/graphql", http.StatusOK, 20*time.Millisecond)
		Expect(lineOf(scrape(m), `rendezvous_http_request_duration_seconds_count{code="200",path="/graphql"}`)).Should(HaveSuffix(" 1"))
	})
})
