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

// Command rendezvous serves the event-planning GraphQL API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/botobag/rendezvous/config"
	"github.com/botobag/rendezvous/demo"
	"github.com/botobag/rendezvous/idgen"
	"github.com/botobag/rendezvous/messages"
	"github.com/botobag/rendezvous/metrics"
	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/schema"
	"github.com/botobag/rendezvous/seed"
	"github.com/botobag/rendezvous/server"
	"github.com/botobag/rendezvous/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	options := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	catalog, err := messages.New(cfg.Locale, logger)
	if err != nil {
		return err
	}

	ids, err := idgen.New(cfg.IDStrategy)
	if err != nil {
		return err
	}

	s := store.New()
	if cfg.SeedFile != "" {
		observer, _ := ids.(seed.IDObserver)
		n, err := seed.Load(cfg.SeedFile, s, observer)
		if err != nil {
			return err
		}
		logger.Info("seed loaded", "file", cfg.SeedFile, "records", n)
	}

	m := metrics.New()
	m.WatchStore(s)

	bus := pubsub.NewBus(pubsub.WithObserver(m), pubsub.WithLogger(logger))
	defer bus.Close()

	demoBus := pubsub.NewBus(pubsub.WithObserver(m), pubsub.WithLogger(logger.With("schema", "demo")))
	defer demoBus.Close()

	mainService, err := schema.New(schema.Config{
		Store:    s,
		Bus:      bus,
		IDs:      ids,
		Messages: catalog,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	demoIDs, err := idgen.New(cfg.IDStrategy)
	if err != nil {
		return err
	}
	demoService, err := demo.New(demo.Config{
		Bus:      demoBus,
		IDs:      demoIDs,
		Interval: cfg.CountdownInterval,
		Logger:   logger.With("schema", "demo"),
	})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Addr:            cfg.Addr,
		Messages:        catalog,
		Metrics:         m,
		Logger:          logger,
		MaxBodySize:     cfg.MaxBodySize,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, map[string]server.Endpoint{
		"/graphql":      mainService,
		"/demo/graphql": demoService,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", "env", cfg.Env, "id_strategy", cfg.IDStrategy)
	return srv.Run(ctx)
}
