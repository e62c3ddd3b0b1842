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
	"errors"
	"log/slog"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/rendezvous/idgen"
	"github.com/botobag/rendezvous/messages"
	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/store"
)

// Config specifies the collaborators of the main schema.
type Config struct {
	// (Required) Store holding the records
	Store *store.Store

	// (Required) Bus to publish created records to and to subscribe from
	Bus *pubsub.Bus

	// (Required) Generator for the ids of created records
	IDs idgen.Generator

	// (Required) Catalog rendering error messages
	Messages *messages.Catalog

	// (Optional) Logger; slog.Default() if not set.
	Logger *slog.Logger
}

// Service is the main GraphQL schema bound to its store.
type Service struct {
	schema    graphql.Schema
	resolvers *resolvers
}

// New builds the main schema.
func New(config Config) (*Service, error) {
	if config.Store == nil || config.Bus == nil || config.IDs == nil || config.Messages == nil {
		return nil, errors.New("schema: Store, Bus, IDs and Messages are required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &resolvers{
		store:    config.Store,
		bus:      config.Bus,
		ids:      config.IDs,
		messages: config.Messages,
		logger:   logger,
	}

	schemaConfig, err := r.schemaConfig()
	if err != nil {
		return nil, err
	}

	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		return nil, err
	}

	return &Service{
		schema:    schema,
		resolvers: r,
	}, nil
}

// Name identifies the schema in logs and metrics.
func (service *Service) Name() string {
	return "main"
}

// Schema returns the GraphQL schema.
func (service *Service) Schema() graphql.Schema {
	return service.schema
}

// Store returns the store the schema reads and writes.
func (service *Service) Store() *store.Store {
	return service.resolvers.store
}

// ExecuteOptions returns the options for executing one operation on behalf of a request in the
// given locale. Each call creates fresh data loaders.
func (service *Service) ExecuteOptions(locale string) []executor.ExecuteOption {
	opts := []executor.ExecuteOption{
		executor.AppContext(&RequestContext{
			Locale: locale,
		}),
	}

	loaders, err := NewLoaders(service.resolvers.store)
	if err != nil {
		// Resolvers fall back to scanning the collections directly.
		service.resolvers.logger.Error("create data loaders", "error", err)
		return opts
	}

	return append(opts, executor.DataLoaderManager(loaders))
}
