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

package schema_test

import (
	"context"
	"time"

	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/rendezvous/internal/testutil"
	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/subscription"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Subscription", func() {
	var (
		f      *fixture
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		f = newFixture()
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	})

	AfterEach(func() {
		cancel()
		f.bus.Close()
	})

	subscribe := func(query string) *subscription.ResultStream {
		operation := testutil.Prepare(f.service.Schema(), query)
		stream, result := subscription.Subscribe(ctx, operation, func() []executor.ExecuteOption {
			return f.service.ExecuteOptions("en")
		})
		Expect(result).Should(BeNil())
		return stream
	}

	It("streams created events", func() {
		stream := subscribe(`subscription { eventCreated { id title location { id } } }`)
		defer stream.Close()
		Expect(f.bus.Subscribers(pubsub.TopicEventCreated)).Should(Equal(1))

		f.mustExecute(`mutation {
			addLocation(data: {name: "Dock", desc: "By the water", lat: 1, lng: 2}) { id }
			addEvent(data: {title: "Launch", desc: "Go live", date: "2019-04-09", location_id: 1}) { id }
		}`)

		result, err := stream.Next(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(testutil.MatchResultInJSON(`{
			"data": {"eventCreated": {"id": "2", "title": "Launch", "location": [{"id": "1"}]}}
		}`))
	})

	It("delivers records to every subscriber in publish order", func() {
		first := subscribe(`subscription { userCreated { username } }`)
		defer first.Close()
		second := subscribe(`subscription { userCreated { id } }`)
		defer second.Close()

		f.mustExecute(`mutation {
			a: addUser(data: {username: "al", email: "al@example.com"}) { id }
			b: addUser(data: {username: "bo", email: "bo@example.com"}) { id }
		}`)

		for _, username := range []string{"al", "bo"} {
			result, err := first.Next(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(result).Should(testutil.MatchResultInJSON(`{"data": {"userCreated": {"username": "` + username + `"}}}`))
		}
		for _, id := range []string{"1", "2"} {
			result, err := second.Next(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(result).Should(testutil.MatchResultInJSON(`{"data": {"userCreated": {"id": "` + id + `"}}}`))
		}
	})

	It("streams created participants", func() {
		stream := subscribe(`subscription { participantCreated { id user_id event_id } }`)
		defer stream.Close()

		f.mustExecute(`mutation { addParticipant(data: {user_id: "4", event_id: "5"}) { id } }`)

		result, err := stream.Next(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(testutil.MatchResultInJSON(`{
			"data": {"participantCreated": {"id": "1", "user_id": 4, "event_id": 5}}
		}`))
	})

	It("detaches from the bus on close", func() {
		stream := subscribe(`subscription { userCreated { id } }`)
		Expect(f.bus.Subscribers(pubsub.TopicUserCreated)).Should(Equal(1))

		stream.Close()
		Expect(f.bus.Subscribers(pubsub.TopicUserCreated)).Should(Equal(0))
	})

	It("fails when the bus is closed", func() {
		f.bus.Close()

		operation := testutil.Prepare(f.service.Schema(), `subscription { userCreated { id } }`)
		stream, result := subscription.Subscribe(ctx, operation, nil)
		Expect(stream).Should(BeNil())
		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(testutil.PathEqual("userCreated")),
		))
	})
})
