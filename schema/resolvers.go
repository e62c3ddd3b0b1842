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
	"log/slog"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/rendezvous/idgen"
	"github.com/botobag/rendezvous/messages"
	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/store"
	"github.com/botobag/rendezvous/subscription"
)

// deleteAllOutput is the result of the deleteAll* mutations.
type deleteAllOutput struct {
	Count int
}

type resolvers struct {
	store    *store.Store
	bus      *pubsub.Bus
	ids      idgen.Generator
	messages *messages.Catalog
	logger   *slog.Logger
}

//===----------------------------------------------------------------------------------------====//
// Query
//===----------------------------------------------------------------------------------------====//

func (r *resolvers) events(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.store.Events.List(), nil
}

// find resolves a lookup by id. A missing record resolves to null, which the non-null return type
// turns into a field error.
func find[T store.Record](c *store.Collection[T], info graphql.ResolveInfo) (interface{}, error) {
	record, err := c.Find(argID(info))
	if err != nil {
		return nil, nil
	}
	return record, nil
}

func (r *resolvers) event(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return find(r.store.Events, info)
}

func (r *resolvers) locations(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.store.Locations.List(), nil
}

func (r *resolvers) location(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return find(r.store.Locations, info)
}

func (r *resolvers) users(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.store.Users.List(), nil
}

func (r *resolvers) user(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return find(r.store.Users, info)
}

func (r *resolvers) participants(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.store.Participants.List(), nil
}

func (r *resolvers) participant(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return find(r.store.Participants, info)
}

//===----------------------------------------------------------------------------------------====//
// Event relations
//===----------------------------------------------------------------------------------------====//

// loadersOf returns the Loaders of the request, or nil if the request runs without them.
func loadersOf(info graphql.ResolveInfo) *Loaders {
	loaders, _ := info.DataLoaderManager().(*Loaders)
	return loaders
}

func (r *resolvers) eventUser(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	e := source.(model.Event)
	if e.UserID == nil {
		return []model.User{}, nil
	}
	if loaders := loadersOf(info); loaders != nil {
		return loaders.LoadUsers(*e.UserID)
	}
	return r.store.Users.Filter(func(u model.User) bool {
		return e.UserID.Matches(u.ID)
	}), nil
}

func (r *resolvers) eventLocation(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	e := source.(model.Event)
	if e.LocationID == nil {
		return []model.Location{}, nil
	}
	if loaders := loadersOf(info); loaders != nil {
		return loaders.LoadLocations(*e.LocationID)
	}
	return r.store.Locations.Filter(func(l model.Location) bool {
		return e.LocationID.Matches(l.ID)
	}), nil
}

// eventParticipant returns the participants whose event_id refers to the event.
func (r *resolvers) eventParticipant(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	e := source.(model.Event)
	if loaders := loadersOf(info); loaders != nil {
		return loaders.LoadParticipantsOfEvent(model.Ref(e.ID))
	}
	return r.store.Participants.Filter(func(p model.Participant) bool {
		return p.EventID.Matches(e.ID)
	}), nil
}

//===----------------------------------------------------------------------------------------====//
// Mutation
//===----------------------------------------------------------------------------------------====//

// publish notifies subscribers of a created record.
func (r *resolvers) publish(topic pubsub.Topic, record interface{}) {
	if r.bus != nil {
		r.bus.Publish(topic, record)
	}
}

func (r *resolvers) addUser(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	user := model.User{ID: r.ids.NewID()}
	patch := userPatchOf(inputData(info))
	patch.Apply(&user)

	r.store.Users.Insert(user)
	r.publish(pubsub.TopicUserCreated, user)
	return user, nil
}

func (r *resolvers) updateUser(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	patch := userPatchOf(inputData(info))
	user, err := r.store.Users.Update(argID(info), patch.Apply)
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return user, nil
}

func (r *resolvers) deleteUser(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	user, err := r.store.Users.Remove(argID(info))
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return user, nil
}

func (r *resolvers) deleteAllUsers(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return deleteAllOutput{Count: r.store.Users.Clear()}, nil
}

func (r *resolvers) addEvent(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	event := model.Event{ID: r.ids.NewID()}
	patch := eventPatchOf(inputData(info))
	patch.Apply(&event)

	r.store.Events.Insert(event)
	r.publish(pubsub.TopicEventCreated, event)
	return event, nil
}

func (r *resolvers) updateEvent(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	patch := eventPatchOf(inputData(info))
	event, err := r.store.Events.Update(argID(info), patch.Apply)
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return event, nil
}

func (r *resolvers) deleteEvent(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	event, err := r.store.Events.Remove(argID(info))
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return event, nil
}

func (r *resolvers) deleteAllEvents(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return deleteAllOutput{Count: r.store.Events.Clear()}, nil
}

func (r *resolvers) addLocation(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	location := model.Location{ID: r.ids.NewID()}
	patch := locationPatchOf(inputData(info))
	patch.Apply(&location)

	r.store.Locations.Insert(location)
	return location, nil
}

func (r *resolvers) updateLocation(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	patch := locationPatchOf(inputData(info))
	location, err := r.store.Locations.Update(argID(info), patch.Apply)
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return location, nil
}

func (r *resolvers) deleteLocation(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	location, err := r.store.Locations.Remove(argID(info))
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return location, nil
}

func (r *resolvers) deleteAllLocations(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return deleteAllOutput{Count: r.store.Locations.Clear()}, nil
}

func (r *resolvers) addParticipant(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	participant := model.Participant{ID: r.ids.NewID()}
	patch := participantPatchOf(inputData(info))
	patch.Apply(&participant)

	r.store.Participants.Insert(participant)
	r.publish(pubsub.TopicParticipantCreated, participant)
	return participant, nil
}

func (r *resolvers) updateParticipant(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	patch := participantPatchOf(inputData(info))
	participant, err := r.store.Participants.Update(argID(info), patch.Apply)
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return participant, nil
}

func (r *resolvers) deleteParticipant(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	participant, err := r.store.Participants.Remove(argID(info))
	if err != nil {
		return nil, r.fieldError(info, err)
	}
	return participant, nil
}

func (r *resolvers) deleteAllParticipants(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return deleteAllOutput{Count: r.store.Participants.Clear()}, nil
}

//===----------------------------------------------------------------------------------------====//
// Subscription
//===----------------------------------------------------------------------------------------====//

// topicResolver creates the resolver of a subscription field streaming the records published on
// topic.
func (r *resolvers) topicResolver(topic pubsub.Topic) graphql.FieldResolver {
	return subscription.FieldResolver(func(ctx context.Context, info graphql.ResolveInfo) (subscription.Stream, error) {
		s, err := r.bus.Subscribe(topic)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("subscribed", "topic", topic)
		return s, nil
	})
}
