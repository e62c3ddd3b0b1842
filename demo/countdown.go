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
	"sync"
	"time"

	"github.com/botobag/artemis/iterator"
)

// countdown emits from, from-1, ..., 0, waiting one interval before each value.
type countdown struct {
	next      int
	timer     *time.Timer
	interval  time.Duration
	closed    chan struct{}
	closeOnce sync.Once
}

func newCountdown(from int, interval time.Duration) *countdown {
	return &countdown{
		next:     from,
		interval: interval,
		closed:   make(chan struct{}),
	}
}

// Next implements subscription.Stream.
func (c *countdown) Next(ctx context.Context) (interface{}, error) {
	if c.next < 0 {
		return nil, iterator.Done
	}

	if c.timer == nil {
		c.timer = time.NewTimer(c.interval)
	} else {
		c.timer.Reset(c.interval)
	}

	select {
	case <-ctx.Done():
		c.timer.Stop()
		return nil, ctx.Err()

	case <-c.closed:
		c.timer.Stop()
		return nil, iterator.Done

	case <-c.timer.C:
	}

	value := c.next
	c.next--
	return value, nil
}

// Close implements subscription.Stream.
func (c *countdown) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}
