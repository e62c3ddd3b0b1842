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

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/botobag/rendezvous/messages"
	"github.com/botobag/rendezvous/metrics"
)

// Config specifies a Server.
type Config struct {
	// Address to listen on for Run
	Addr string

	// (Required) Catalog for messages sent to clients
	Messages *messages.Catalog

	// (Optional) Metrics to record requests and operations to; /metrics is served only if set.
	Metrics *metrics.Metrics

	// (Optional) Logger; slog.Default() if not set.
	Logger *slog.Logger

	// Maximum size of a request body; 10MB if not positive.
	MaxBodySize int64

	// Number of prepared operations cached per endpoint; 512 if zero.
	OperationCacheSize uint

	// Time given to in-flight requests on shutdown
	ShutdownTimeout time.Duration
}

// Server serves GraphQL endpoints together with /healthz and /metrics.
type Server struct {
	config  Config
	handler http.Handler
}

// New creates a Server serving each endpoint on the path it is mapped to (e.g., "/graphql").
func New(config Config, endpoints map[string]Endpoint) (*Server, error) {
	if config.Messages == nil {
		return nil, errors.New("server: Messages is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = 10 << 20
	}
	if config.OperationCacheSize == 0 {
		config.OperationCacheSize = 512
	}

	mux := http.NewServeMux()
	route := func(path string, h http.Handler) {
		mux.Handle(path, Instrument(config.Metrics, path)(h))
	}

	for path, endpoint := range endpoints {
		h, err := newGraphQLHandler(endpoint, &config)
		if err != nil {
			return nil, fmt.Errorf("server: endpoint %s: %w", path, err)
		}
		route(path, h)
	}

	route("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}))

	if config.Metrics != nil {
		route("/metrics", config.Metrics.Handler())
	}

	return &Server{
		config: config,
		handler: Chain(mux,
			RequestID,
			Logger(config.Logger),
			Recovery(config.Logger),
		),
	}, nil
}

// Handler returns the root handler of s.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on listener until ctx is done, then shuts down gracefully. Streams
// (SSE and WebSocket) are cancelled on shutdown.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
		ErrorLog: slog.NewLogLogger(s.config.Logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.config.Logger.Info("shutting down", "timeout", s.config.ShutdownTimeout)
	cancelStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	s.config.Logger.Info("listening", "addr", listener.Addr().String())
	return s.Serve(ctx, listener)
}
