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

package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/botobag/artemis/iterator"
)

// ErrBusClosed is returned by Subscribe after the bus has been closed.
var ErrBusClosed = errors.New("pubsub: bus closed")

// Observer receives bus activity. Implementations must not call back into the bus.
type Observer interface {
	// Published is called after a publish with the number of subscriptions that received it.
	Published(topic Topic, delivered int)

	// SubscribersChanged is called with the number of subscriptions attached to topic after a
	// subscription is attached or detached.
	SubscribersChanged(topic Topic, count int)
}

// Option configures a Bus.
type Option func(bus *Bus)

// WithObserver sets the observer of a Bus.
func WithObserver(observer Observer) Option {
	return func(bus *Bus) {
		bus.observer = observer
	}
}

// WithLogger sets the logger of a Bus.
func WithLogger(logger *slog.Logger) Option {
	return func(bus *Bus) {
		bus.logger = logger
	}
}

// Bus broadcasts payloads to the subscriptions of a topic.
type Bus struct {
	observer Observer
	logger   *slog.Logger

	// Lock that guards listeners and closed
	mutex     sync.Mutex
	listeners map[Topic]map[*Subscription]struct{}
	closed    bool
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	bus := &Bus{
		listeners: map[Topic]map[*Subscription]struct{}{},
	}
	for _, opt := range opts {
		opt(bus)
	}
	if bus.logger == nil {
		bus.logger = slog.Default()
	}
	return bus
}

// Publish delivers payload to every subscription currently attached to topic and returns the
// number of deliveries. It never blocks on subscribers. A publish to a topic without subscriptions
// is dropped.
func (bus *Bus) Publish(topic Topic, payload interface{}) int {
	bus.mutex.Lock()
	delivered := 0
	for s := range bus.listeners[topic] {
		if s.inbox.Push(payload) == nil {
			delivered++
		}
	}
	bus.mutex.Unlock()

	bus.logger.Debug("published", "topic", topic, "delivered", delivered)
	if bus.observer != nil {
		bus.observer.Published(topic, delivered)
	}
	return delivered
}

// Subscribe attaches a new subscription to topic. It receives payloads published after the call
// returns.
func (bus *Bus) Subscribe(topic Topic) (*Subscription, error) {
	if !topic.Valid() {
		return nil, fmt.Errorf("pubsub: unknown topic %q", string(topic))
	}

	s := &Subscription{
		bus:   bus,
		topic: topic,
		inbox: newInbox(),
	}

	bus.mutex.Lock()
	if bus.closed {
		bus.mutex.Unlock()
		return nil, ErrBusClosed
	}
	set, exists := bus.listeners[topic]
	if !exists {
		set = map[*Subscription]struct{}{}
		bus.listeners[topic] = set
	}
	set[s] = struct{}{}
	count := len(set)
	bus.mutex.Unlock()

	bus.logger.Debug("subscription attached", "topic", topic, "subscribers", count)
	if bus.observer != nil {
		bus.observer.SubscribersChanged(topic, count)
	}
	return s, nil
}

// Subscribers returns the number of subscriptions attached to topic.
func (bus *Bus) Subscribers(topic Topic) int {
	bus.mutex.Lock()
	count := len(bus.listeners[topic])
	bus.mutex.Unlock()
	return count
}

// detach removes s from its topic.
func (bus *Bus) detach(s *Subscription) {
	bus.mutex.Lock()
	set := bus.listeners[s.topic]
	if _, exists := set[s]; !exists {
		bus.mutex.Unlock()
		return
	}
	delete(set, s)
	count := len(set)
	bus.mutex.Unlock()

	bus.logger.Debug("subscription detached", "topic", s.topic, "subscribers", count)
	if bus.observer != nil {
		bus.observer.SubscribersChanged(s.topic, count)
	}
}

// Close closes all subscriptions and rejects further subscribes.
func (bus *Bus) Close() {
	bus.mutex.Lock()
	bus.closed = true
	var subscriptions []*Subscription
	for _, set := range bus.listeners {
		for s := range set {
			subscriptions = append(subscriptions, s)
		}
	}
	bus.mutex.Unlock()

	for _, s := range subscriptions {
		s.Close()
	}
}

// Subscription receives the payloads published to one topic.
type Subscription struct {
	bus   *Bus
	topic Topic
	inbox *inbox

	closeOnce sync.Once
}

// Topic returns the topic s is attached to.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Pending returns the number of payloads received but not yet consumed by Next.
func (s *Subscription) Pending() int {
	return s.inbox.Len()
}

// Next blocks until a payload is available and returns it in publish order. It returns
// iterator.Done once the subscription is closed and drained. Cancelling ctx closes the
// subscription, in which case Next returns the context's error.
func (s *Subscription) Next(ctx context.Context) (interface{}, error) {
	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	payload, err := s.inbox.Poll(0)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, iterator.Done
	}

	return payload, nil
}

// Close detaches s from the bus. Payloads already received remain available through Next.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.detach(s)
		s.inbox.Close()
	})
}
