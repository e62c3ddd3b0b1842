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
	"sync"
	"time"

	"github.com/botobag/artemis/concurrent"
)

// inboxNode is a node in the linked list of an inbox.
type inboxNode struct {
	payload interface{}
	next    *inboxNode
}

// inbox is an unbounded FIFO queue of payloads. It is a circular singly-linked list where tail.next
// is the head.
type inbox struct {
	// Lock that guards all fields below
	mutex sync.Mutex

	// Tail of linked list; nil if the inbox is empty.
	tail *inboxNode

	// Number of payloads in the list
	size int

	// Condition variable for Poll to wait for Push and Close
	cond *sync.Cond

	closed bool
}

var _ concurrent.Queue = (*inbox)(nil)

func newInbox() *inbox {
	q := &inbox{}
	q.cond = sync.NewCond(&q.mutex)
	return q
}

// Push implements concurrent.Queue.
func (q *inbox) Push(element interface{}) error {
	node := &inboxNode{
		payload: element,
	}

	mutex := &q.mutex
	mutex.Lock()

	if q.closed {
		mutex.Unlock()
		return concurrent.ErrQueueClosed
	}

	if q.tail == nil {
		// node is also the head.
		node.next = node
	} else {
		node.next = q.tail.next
		q.tail.next = node
	}
	q.tail = node
	q.size++

	q.cond.Signal()
	mutex.Unlock()

	return nil
}

// Poll implements concurrent.Queue. A timeout of zero or less waits until a payload arrives or the
// inbox is closed.
func (q *inbox) Poll(timeout time.Duration) (interface{}, error) {
	mutex := &q.mutex
	mutex.Lock()
	defer mutex.Unlock()

	expired := false
	if timeout > 0 && q.tail == nil && !q.closed {
		timer := time.AfterFunc(timeout, func() {
			mutex.Lock()
			expired = true
			q.cond.Broadcast()
			mutex.Unlock()
		})
		defer timer.Stop()
	}

	for q.tail == nil && !q.closed && !expired {
		q.cond.Wait()
	}

	if q.tail == nil {
		if q.closed {
			return nil, nil
		}
		return nil, concurrent.ErrQueuePollTimeout
	}

	head := q.tail.next
	if head == q.tail {
		q.tail = nil
	} else {
		q.tail.next = head.next
	}
	q.size--

	payload := head.payload
	// Help GC.
	head.next = nil
	head.payload = nil

	return payload, nil
}

// Remove implements concurrent.Queue. It removes the first payload equal to element. Payloads must
// be comparable.
func (q *inbox) Remove(element interface{}) error {
	mutex := &q.mutex
	mutex.Lock()
	defer mutex.Unlock()

	if q.tail == nil {
		return concurrent.ErrElementNotFound
	}

	prev := q.tail
	for {
		node := prev.next
		if node.payload == element {
			if node == prev {
				// The only node.
				q.tail = nil
			} else {
				prev.next = node.next
				if node == q.tail {
					q.tail = prev
				}
			}
			q.size--
			node.next = nil
			return nil
		}

		prev = node
		if prev == q.tail {
			break
		}
	}

	return concurrent.ErrElementNotFound
}

// Empty implements concurrent.Queue.
func (q *inbox) Empty() bool {
	q.mutex.Lock()
	empty := q.tail == nil
	q.mutex.Unlock()
	return empty
}

// Len returns the number of pending payloads.
func (q *inbox) Len() int {
	q.mutex.Lock()
	size := q.size
	q.mutex.Unlock()
	return size
}

// Close implements concurrent.Queue.
func (q *inbox) Close() {
	mutex := &q.mutex
	mutex.Lock()
	if !q.closed {
		q.closed = true
		// Unblock current waiters.
		q.cond.Broadcast()
	}
	mutex.Unlock()
}
