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

package store

import (
	"slices"
	"sync"
)

// Record is implemented by the values held in a Collection.
type Record interface {
	// RecordID returns the id assigned to the record at creation.
	RecordID() string
}

// Collection is an insertion-ordered sequence of records of one kind.
type Collection[T Record] struct {
	kind Kind

	mutex   sync.RWMutex
	records []T
}

// NewCollection creates an empty collection for the given kind.
func NewCollection[T Record](kind Kind) *Collection[T] {
	return &Collection[T]{
		kind: kind,
	}
}

// Kind returns the entity kind held by c.
func (c *Collection[T]) Kind() Kind {
	return c.kind
}

func (c *Collection[T]) notFound(id string) error {
	return &NotFoundError{
		Kind: c.kind,
		ID:   id,
	}
}

// indexOf returns the index of the first record with the given id or -1. Caller must hold the lock.
func (c *Collection[T]) indexOf(id string) int {
	for i := range c.records {
		if c.records[i].RecordID() == id {
			return i
		}
	}
	return -1
}

// List returns all records in insertion order. The result is never nil.
func (c *Collection[T]) List() []T {
	c.mutex.RLock()
	result := make([]T, len(c.records))
	copy(result, c.records)
	c.mutex.RUnlock()
	return result
}

// Filter returns the records for which match returns true, in insertion order. The result is never
// nil.
func (c *Collection[T]) Filter(match func(record T) bool) []T {
	result := []T{}

	c.mutex.RLock()
	for i := range c.records {
		if match(c.records[i]) {
			result = append(result, c.records[i])
		}
	}
	c.mutex.RUnlock()

	return result
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mutex.RLock()
	n := len(c.records)
	c.mutex.RUnlock()
	return n
}

// Find returns the first record with the given id.
func (c *Collection[T]) Find(id string) (T, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.records[i], nil
	}

	var zero T
	return zero, c.notFound(id)
}

// Insert appends record at the end of the collection. The id must have been assigned.
func (c *Collection[T]) Insert(record T) T {
	c.mutex.Lock()
	c.records = append(c.records, record)
	c.mutex.Unlock()
	return record
}

// Update applies patch to the first record with the given id and returns the updated record.
func (c *Collection[T]) Update(id string, patch func(record *T)) (T, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, c.notFound(id)
	}

	record := c.records[i]
	patch(&record)
	c.records[i] = record
	return record, nil
}

// Remove removes the first record with the given id and returns it. The order of the rest is kept.
func (c *Collection[T]) Remove(id string) (T, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, c.notFound(id)
	}

	record := c.records[i]
	c.records = slices.Delete(c.records, i, i+1)
	return record, nil
}

// Clear removes all records and returns how many there were.
func (c *Collection[T]) Clear() int {
	c.mutex.Lock()
	n := len(c.records)
	c.records = nil
	c.mutex.Unlock()
	return n
}
