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

package schema

import (
	"context"
	"sync/atomic"

	"github.com/botobag/artemis/concurrent/future"
	"github.com/botobag/artemis/dataloader"
	"github.com/botobag/artemis/graphql"
	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/store"
)

// Loaders implements graphql.DataLoaderManager for the relations of Event. A Loaders must only be
// used for one request.
type Loaders struct {
	graphql.DataLoaderManagerBase

	// Loads Users by id
	usersByID *dataloader.DataLoader
	// Loads Locations by id
	locationsByID *dataloader.DataLoader
	// Loads Participants by their event_id
	participantsByEvent *dataloader.DataLoader

	// Number of batch loads performed by all loaders
	batches int64
}

var _ graphql.DataLoaderManager = (*Loaders)(nil)

// NewLoaders creates data loaders reading s.
func NewLoaders(s *store.Store) (*Loaders, error) {
	loaders := &Loaders{}

	var err error
	loaders.usersByID, err = newGroupLoader(s.Users, func(u model.User) *model.Ref {
		return model.RefOf(u.ID)
	}, &loaders.batches)
	if err != nil {
		return nil, err
	}

	loaders.locationsByID, err = newGroupLoader(s.Locations, func(l model.Location) *model.Ref {
		return model.RefOf(l.ID)
	}, &loaders.batches)
	if err != nil {
		return nil, err
	}

	loaders.participantsByEvent, err = newGroupLoader(s.Participants, func(p model.Participant) *model.Ref {
		return p.EventID
	}, &loaders.batches)
	if err != nil {
		return nil, err
	}

	return loaders, nil
}

// Batches returns the number of batch loads performed so far.
func (loaders *Loaders) Batches() int {
	return int(atomic.LoadInt64(&loaders.batches))
}

// LoadUsers returns a Future resolving to the Users whose id is ref.
func (loaders *Loaders) LoadUsers(ref model.Ref) (future.Future, error) {
	return loaders.LoadWith(loaders.usersByID, ref.String())
}

// LoadLocations returns a Future resolving to the Locations whose id is ref.
func (loaders *Loaders) LoadLocations(ref model.Ref) (future.Future, error) {
	return loaders.LoadWith(loaders.locationsByID, ref.String())
}

// LoadParticipantsOfEvent returns a Future resolving to the Participants whose event_id is ref.
func (loaders *Loaders) LoadParticipantsOfEvent(ref model.Ref) (future.Future, error) {
	return loaders.LoadWith(loaders.participantsByEvent, ref.String())
}

// newGroupLoader creates a DataLoader whose keys are string refs. A batch scans c once and completes
// each key with the records whose keyOf matches it, in insertion order. Caching is disabled.
func newGroupLoader[T store.Record](
	c *store.Collection[T],
	keyOf func(record T) *model.Ref,
	batches *int64) (*dataloader.DataLoader, error) {

	return dataloader.New(dataloader.Config{
		BatchLoader: dataloader.BatchLoadFunc(func(ctx context.Context, tasks *dataloader.TaskList) {
			atomic.AddInt64(batches, 1)

			groups := map[string][]T{}
			for _, record := range c.List() {
				if ref := keyOf(record); ref != nil {
					groups[ref.String()] = append(groups[ref.String()], record)
				}
			}

			taskIter := tasks.Iterator()
			for {
				task, done := taskIter.Next()
				if done {
					break
				}

				group := groups[task.Key().(string)]
				if group == nil {
					// A nil slice would complete as null.
					group = []T{}
				}
				task.Complete(group)
			}
		}),
		CacheMap: dataloader.NoCacheMap,
	})
}
