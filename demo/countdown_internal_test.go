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

package demo

import (
	"context"
	"time"

	"github.com/botobag/artemis/iterator"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("countdown", func() {
	drain := func(c *countdown) []interface{} {
		values := []interface{}{}
		for {
			value, err := c.Next(context.Background())
			if err == iterator.Done {
				return values
			}
			Expect(err).ShouldNot(HaveOccurred())
			values = append(values, value)
		}
	}

	It("emits from down to zero", func() {
		Expect(drain(newCountdown(3, time.Millisecond))).Should(Equal([]interface{}{3, 2, 1, 0}))
	})

	It("emits zero once", func() {
		Expect(drain(newCountdown(0, time.Millisecond))).Should(Equal([]interface{}{0}))
	})

	It("completes immediately for negative values", func() {
		Expect(drain(newCountdown(-2, time.Hour))).Should(BeEmpty())
	})

	It("waits an interval before each value", func() {
		c := newCountdown(1, 20*time.Millisecond)
		start := time.Now()
		Expect(c.Next(context.Background())).Should(Equal(1))
		Expect(time.Since(start)).Should(BeNumerically(">=", 20*time.Millisecond))
	})

	It("stops when closed", func() {
		c := newCountdown(5, time.Hour)
		go c.Close()
		_, err := c.Next(context.Background())
		Expect(err).Should(Equal(iterator.Done))

		// Closing again is a no-op.
		c.Close()
	})

	It("returns the error of a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newCountdown(5, time.Hour).Next(ctx)
		Expect(err).Should(MatchError(context.Canceled))
	})
})
