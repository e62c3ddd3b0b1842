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

// Package idgen generates the opaque identifiers assigned to newly created records.
package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces a unique identifier per call.
type Generator interface {
	NewID() string
}

// Strategy names a Generator implementation.
type Strategy string

// Enumeration of Strategy
const (
	StrategySequence Strategy = "sequence"
	StrategyUUID     Strategy = "uuid"
)

// New creates a Generator for the given strategy.
func New(strategy Strategy) (Generator, error) {
	switch strategy {
	case StrategySequence, "":
		return NewSequence(), nil
	case StrategyUUID:
		return UUID{}, nil
	}
	return nil, fmt.Errorf("idgen: unknown strategy %q", string(strategy))
}

// Sequence hands out decimal ids "1", "2", ... shared by all collections. Decimal ids can be
// referred to through the Int foreign keys of the schema.
type Sequence struct {
	last uint64
}

var _ Generator = (*Sequence)(nil)

// NewSequence creates a Sequence whose first id is "1".
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	return strconv.FormatUint(atomic.AddUint64(&s.last, 1), 10)
}

// Observe records an id assigned outside of the sequence (e.g., from seed data) so that later ids
// never collide with it. Non-decimal ids are ignored.
func (s *Sequence) Observe(id string) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return
	}
	for {
		last := atomic.LoadUint64(&s.last)
		if n <= last || atomic.CompareAndSwapUint64(&s.last, last, n) {
			return
		}
	}
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

var _ Generator = UUID{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}
