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
	"errors"
	"log/slog"
	"time"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/rendezvous/idgen"
	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/store"
	"github.com/botobag/rendezvous/subscription"
)

// DefaultInterval is the countdown tick used when Config.Interval is not set.
const DefaultInterval = time.Second

// Config specifies the demo schema.
type Config struct {
	// (Required) Bus carrying userAdded notifications. It should not be shared with the main
	// schema.
	Bus *pubsub.Bus

	// (Required) Generator for user ids
	IDs idgen.Generator

	// Time between two countdown values; DefaultInterval if not positive.
	Interval time.Duration

	// (Optional) Logger; slog.Default() if not set.
	Logger *slog.Logger
}

// Service is the demo GraphQL schema.
type Service struct {
	schema   graphql.Schema
	users    *store.Collection[model.User]
	bus      *pubsub.Bus
	ids      idgen.Generator
	interval time.Duration
	logger   *slog.Logger
}

// New builds the demo schema.
func New(config Config) (*Service, error) {
	if config.Bus == nil || config.IDs == nil {
		return nil, errors.New("demo: Bus and IDs are required")
	}

	service := &Service{
		users:    store.NewCollection[model.User](store.KindUser),
		bus:      config.Bus,
		ids:      config.IDs,
		interval: config.Interval,
		logger:   config.Logger,
	}
	if service.interval <= 0 {
		service.interval = DefaultInterval
	}
	if service.logger == nil {
		service.logger = slog.Default()
	}

	schema, err := service.buildSchema()
	if err != nil {
		return nil, err
	}
	service.schema = schema
	return service, nil
}

func (service *Service) buildSchema() (graphql.Schema, error) {
	userType := &graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": {
				Type: graphql.NonNullOfType(graphql.ID()),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return source.(model.User).ID, nil
				}),
			},
			"username": {
				Type: graphql.NonNullOfType(graphql.String()),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return source.(model.User).Username, nil
				}),
			},
		},
	}

	query, err := graphql.NewObject(&graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"user": {
				Type:     graphql.NonNullOf(graphql.ListOf(userType)),
				Resolver: graphql.FieldResolverFunc(service.listUsers),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	mutation, err := graphql.NewObject(&graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": {
				Type: userType,
				Args: graphql.ArgumentConfigMap{
					"username": {Type: graphql.NonNullOfType(graphql.String())},
				},
				Resolver: graphql.FieldResolverFunc(service.addUser),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	subscriptionType, err := graphql.NewObject(&graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"countdown": {
				Type: graphql.NonNullOfType(graphql.Int()),
				Args: graphql.ArgumentConfigMap{
					"from": {Type: graphql.NonNullOfType(graphql.Int())},
				},
				Resolver: subscription.FieldResolver(service.openCountdown),
			},
			"userAdded": {
				Type:     graphql.NonNullOf(userType),
				Resolver: subscription.FieldResolver(service.openUserAdded),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscriptionType,
	})
}

func (service *Service) listUsers(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return service.users.List(), nil
}

func (service *Service) addUser(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	username, _ := info.Args().Get("username").(string)
	user := service.users.Insert(model.User{
		ID:       service.ids.NewID(),
		Username: username,
	})
	service.bus.Publish(pubsub.TopicUserAdded, user)
	return user, nil
}

func (service *Service) openCountdown(ctx context.Context, info graphql.ResolveInfo) (subscription.Stream, error) {
	from, _ := info.Args().Get("from").(int)
	service.logger.Debug("countdown started", "from", from)
	return newCountdown(from, service.interval), nil
}

func (service *Service) openUserAdded(ctx context.Context, info graphql.ResolveInfo) (subscription.Stream, error) {
	s, err := service.bus.Subscribe(pubsub.TopicUserAdded)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Name identifies the schema in logs and metrics.
func (service *Service) Name() string {
	return "demo"
}

// Schema returns the GraphQL schema.
func (service *Service) Schema() graphql.Schema {
	return service.schema
}

// Users returns the users added through the schema.
func (service *Service) Users() *store.Collection[model.User] {
	return service.users
}

// ExecuteOptions returns the options for executing one operation. The demo schema needs none.
func (service *Service) ExecuteOptions(locale string) []executor.ExecuteOption {
	return nil
}
