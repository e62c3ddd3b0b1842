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

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/pubsub"
)

// field creates a resolver reading a value from a source record of type T.
func field[T any](get func(source T) interface{}) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return get(source.(T)), nil
	})
}

// Helpers converting optional record fields to result values; nil pointers resolve to null.

func stringValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func floatValue(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// refValue resolves a reference in its string form. Int fields parse it and report a field error if
// it is not a decimal integer.
func refValue(r *model.Ref) interface{} {
	if r == nil {
		return nil
	}
	return r.String()
}

func (r *resolvers) schemaConfig() (*graphql.SchemaConfig, error) {
	var (
		nonNullID     = graphql.NonNullOfType(graphql.ID())
		nonNullString = graphql.NonNullOfType(graphql.String())
		nonNullFloat  = graphql.NonNullOfType(graphql.Float())
		nonNullInt    = graphql.NonNullOfType(graphql.Int())
		optString     = graphql.T(graphql.String())
		optFloat      = graphql.T(graphql.Float())
		optInt        = graphql.T(graphql.Int())
	)

	userType := &graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": {
				Type:     nonNullID,
				Resolver: field(func(u model.User) interface{} { return u.ID }),
			},
			"username": {
				Type:     nonNullString,
				Resolver: field(func(u model.User) interface{} { return u.Username }),
			},
			"email": {
				Type:     nonNullString,
				Resolver: field(func(u model.User) interface{} { return u.Email }),
			},
		},
	}

	locationType := &graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id": {
				Type:     nonNullID,
				Resolver: field(func(l model.Location) interface{} { return l.ID }),
			},
			"name": {
				Type:     optString,
				Resolver: field(func(l model.Location) interface{} { return stringValue(l.Name) }),
			},
			"desc": {
				Type:     optString,
				Resolver: field(func(l model.Location) interface{} { return stringValue(l.Desc) }),
			},
			"lat": {
				Type:     optFloat,
				Resolver: field(func(l model.Location) interface{} { return floatValue(l.Lat) }),
			},
			"lng": {
				Type:     optFloat,
				Resolver: field(func(l model.Location) interface{} { return floatValue(l.Lng) }),
			},
		},
	}

	participantType := &graphql.ObjectConfig{
		Name: "Participant",
		Fields: graphql.Fields{
			"id": {
				Type:     nonNullID,
				Resolver: field(func(p model.Participant) interface{} { return p.ID }),
			},
			"user_id": {
				Type:     optInt,
				Resolver: field(func(p model.Participant) interface{} { return refValue(p.UserID) }),
			},
			"event_id": {
				Type:     optInt,
				Resolver: field(func(p model.Participant) interface{} { return refValue(p.EventID) }),
			},
		},
	}

	eventType := &graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id": {
				Type:     nonNullID,
				Resolver: field(func(e model.Event) interface{} { return e.ID }),
			},
			"title": {
				Type:     optString,
				Resolver: field(func(e model.Event) interface{} { return stringValue(e.Title) }),
			},
			"desc": {
				Type:     optString,
				Resolver: field(func(e model.Event) interface{} { return stringValue(e.Desc) }),
			},
			"date": {
				Type:     optString,
				Resolver: field(func(e model.Event) interface{} { return stringValue(e.Date) }),
			},
			"from": {
				Type:     optString,
				Resolver: field(func(e model.Event) interface{} { return stringValue(e.From) }),
			},
			"to": {
				Type:     optString,
				Resolver: field(func(e model.Event) interface{} { return stringValue(e.To) }),
			},
			"location_id": {
				Type:     optInt,
				Resolver: field(func(e model.Event) interface{} { return refValue(e.LocationID) }),
			},
			"user_id": {
				Type:     optInt,
				Resolver: field(func(e model.Event) interface{} { return refValue(e.UserID) }),
			},
			"user": {
				Type:     graphql.NonNullOf(graphql.ListOf(userType)),
				Resolver: graphql.FieldResolverFunc(r.eventUser),
			},
			"participant": {
				Type:     graphql.NonNullOf(graphql.ListOf(participantType)),
				Resolver: graphql.FieldResolverFunc(r.eventParticipant),
			},
			"location": {
				Type:     graphql.NonNullOf(graphql.ListOf(locationType)),
				Resolver: graphql.FieldResolverFunc(r.eventLocation),
			},
		},
	}

	deleteAllOutputType := &graphql.ObjectConfig{
		Name: "deleteAllOutput",
		Fields: graphql.Fields{
			"count": {
				Type:     nonNullInt,
				Resolver: field(func(o deleteAllOutput) interface{} { return o.Count }),
			},
		},
	}

	addEventInput := &graphql.InputObjectConfig{
		Name: "addEventInput",
		Fields: graphql.InputFields{
			"title":       {Type: nonNullString},
			"desc":        {Type: nonNullString},
			"date":        {Type: nonNullString},
			"from":        {Type: optString},
			"to":          {Type: optString},
			"location_id": {Type: optInt},
			"user_id":     {Type: optInt},
		},
	}

	updateEventInput := &graphql.InputObjectConfig{
		Name: "updateEventInput",
		Fields: graphql.InputFields{
			"title":       {Type: nonNullString},
			"desc":        {Type: nonNullString},
			"date":        {Type: nonNullString},
			"from":        {Type: optString},
			"to":          {Type: optString},
			"location_id": {Type: optInt},
			"user_id":     {Type: optInt},
		},
	}

	addLocationInput := &graphql.InputObjectConfig{
		Name: "addLocationInput",
		Fields: graphql.InputFields{
			"name": {Type: nonNullString},
			"desc": {Type: nonNullString},
			"lat":  {Type: nonNullFloat},
			"lng":  {Type: nonNullFloat},
		},
	}

	updateLocationInput := &graphql.InputObjectConfig{
		Name: "updateLocationInput",
		Fields: graphql.InputFields{
			"name": {Type: nonNullString},
			"desc": {Type: nonNullString},
			"lat":  {Type: nonNullFloat},
			"lng":  {Type: nonNullFloat},
		},
	}

	addUserInput := &graphql.InputObjectConfig{
		Name: "addUserInput",
		Fields: graphql.InputFields{
			"username": {Type: nonNullString},
			"email":    {Type: nonNullString},
		},
	}

	updateUserInput := &graphql.InputObjectConfig{
		Name: "updateUserInput",
		Fields: graphql.InputFields{
			"username": {Type: optString},
			"email":    {Type: optString},
		},
	}

	addParticipantInput := &graphql.InputObjectConfig{
		Name: "addParticipantInput",
		Fields: graphql.InputFields{
			"user_id":  {Type: nonNullID},
			"event_id": {Type: nonNullID},
		},
	}

	updateParticipantInput := &graphql.InputObjectConfig{
		Name: "updateParticipantInput",
		Fields: graphql.InputFields{
			"user_id":  {Type: optInt},
			"event_id": {Type: optInt},
		},
	}

	idArg := graphql.ArgumentConfigMap{
		"id": {Type: nonNullID},
	}
	optionalIDArg := graphql.ArgumentConfigMap{
		"id": {Type: graphql.T(graphql.ID())},
	}
	dataArg := func(input graphql.TypeDefinition) graphql.ArgumentConfigMap {
		return graphql.ArgumentConfigMap{
			"data": {Type: input},
		}
	}
	idAndDataArgs := func(input graphql.TypeDefinition) graphql.ArgumentConfigMap {
		return graphql.ArgumentConfigMap{
			"id":   {Type: nonNullID},
			"data": {Type: input},
		}
	}

	queryType := &graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"events": {
				Type:     graphql.NonNullOf(graphql.ListOf(graphql.NonNullOf(eventType))),
				Resolver: graphql.FieldResolverFunc(r.events),
			},
			"event": {
				Type:     graphql.NonNullOf(eventType),
				Args:     idArg,
				Resolver: graphql.FieldResolverFunc(r.event),
			},
			"locations": {
				Type:     graphql.NonNullOf(graphql.ListOf(locationType)),
				Resolver: graphql.FieldResolverFunc(r.locations),
			},
			"location": {
				Type:     graphql.NonNullOf(locationType),
				Args:     idArg,
				Resolver: graphql.FieldResolverFunc(r.location),
			},
			"users": {
				Type:     graphql.NonNullOf(graphql.ListOf(userType)),
				Resolver: graphql.FieldResolverFunc(r.users),
			},
			"user": {
				Type:     graphql.NonNullOf(userType),
				Args:     idArg,
				Resolver: graphql.FieldResolverFunc(r.user),
			},
			"participants": {
				Type:     graphql.ListOf(participantType),
				Resolver: graphql.FieldResolverFunc(r.participants),
			},
			"participant": {
				Type:     graphql.NonNullOf(participantType),
				Args:     idArg,
				Resolver: graphql.FieldResolverFunc(r.participant),
			},
		},
	}

	mutationType := &graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": {
				Type:     graphql.NonNullOf(userType),
				Args:     dataArg(addUserInput),
				Resolver: graphql.FieldResolverFunc(r.addUser),
			},
			"updateUser": {
				Type:     graphql.NonNullOf(userType),
				Args:     idAndDataArgs(updateUserInput),
				Resolver: graphql.FieldResolverFunc(r.updateUser),
			},
			"deleteUser": {
				Type:     graphql.NonNullOf(userType),
				Args:     optionalIDArg,
				Resolver: graphql.FieldResolverFunc(r.deleteUser),
			},
			"deleteAllUsers": {
				Type:     graphql.NonNullOf(deleteAllOutputType),
				Resolver: graphql.FieldResolverFunc(r.deleteAllUsers),
			},
			"addEvent": {
				Type:     graphql.NonNullOf(eventType),
				Args:     dataArg(addEventInput),
				Resolver: graphql.FieldResolverFunc(r.addEvent),
			},
			"updateEvent": {
				Type:     graphql.NonNullOf(eventType),
				Args:     idAndDataArgs(updateEventInput),
				Resolver: graphql.FieldResolverFunc(r.updateEvent),
			},
			"deleteEvent": {
				Type:     graphql.NonNullOf(eventType),
				Args:     optionalIDArg,
				Resolver: graphql.FieldResolverFunc(r.deleteEvent),
			},
			"deleteAllEvents": {
				Type:     graphql.NonNullOf(deleteAllOutputType),
				Resolver: graphql.FieldResolverFunc(r.deleteAllEvents),
			},
			"addLocation": {
				Type:     graphql.NonNullOf(locationType),
				Args:     dataArg(addLocationInput),
				Resolver: graphql.FieldResolverFunc(r.addLocation),
			},
			"updateLocation": {
				Type:     graphql.NonNullOf(locationType),
				Args:     idAndDataArgs(updateLocationInput),
				Resolver: graphql.FieldResolverFunc(r.updateLocation),
			},
			"deleteLocation": {
				Type:     graphql.NonNullOf(locationType),
				Args:     optionalIDArg,
				Resolver: graphql.FieldResolverFunc(r.deleteLocation),
			},
			"deleteAllLocations": {
				Type:     graphql.NonNullOf(deleteAllOutputType),
				Resolver: graphql.FieldResolverFunc(r.deleteAllLocations),
			},
			"addParticipant": {
				Type:     graphql.NonNullOf(participantType),
				Args:     dataArg(addParticipantInput),
				Resolver: graphql.FieldResolverFunc(r.addParticipant),
			},
			"updateParticipant": {
				Type:     graphql.NonNullOf(participantType),
				Args:     idAndDataArgs(updateParticipantInput),
				Resolver: graphql.FieldResolverFunc(r.updateParticipant),
			},
			"deleteParticipant": {
				Type:     graphql.NonNullOf(participantType),
				Args:     optionalIDArg,
				Resolver: graphql.FieldResolverFunc(r.deleteParticipant),
			},
			"deleteAllParticipants": {
				Type:     graphql.NonNullOf(deleteAllOutputType),
				Resolver: graphql.FieldResolverFunc(r.deleteAllParticipants),
			},
		},
	}

	subscriptionType := &graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"userCreated": {
				Type:     graphql.NonNullOf(userType),
				Resolver: r.topicResolver(pubsub.TopicUserCreated),
			},
			"eventCreated": {
				Type:     graphql.NonNullOf(eventType),
				Resolver: r.topicResolver(pubsub.TopicEventCreated),
			},
			"participantCreated": {
				Type:     graphql.NonNullOf(participantType),
				Resolver: r.topicResolver(pubsub.TopicParticipantCreated),
			},
		},
	}

	query, err := graphql.NewObject(queryType)
	if err != nil {
		return nil, err
	}

	mutation, err := graphql.NewObject(mutationType)
	if err != nil {
		return nil, err
	}

	subscription, err := graphql.NewObject(subscriptionType)
	if err != nil {
		return nil, err
	}

	return &graphql.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
	}, nil
}
