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
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/ast"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/handler"
	"github.com/botobag/rendezvous/messages"
	"github.com/botobag/rendezvous/metrics"
	"github.com/gorilla/websocket"
)

// graphqlHandler serves an Endpoint on one path.
type graphqlHandler struct {
	*handler.LLHandler

	endpoint        Endpoint
	requestBuilder  handler.RequestBuilder
	resultPresenter handler.ResultPresenter
	errorPresenter  handler.ErrorPresenter
	messages        *messages.Catalog
	metrics         *metrics.Metrics
	logger          *slog.Logger
	upgrader        websocket.Upgrader
	// Maximum size in bytes of a WebSocket message
	maxMessageSize int64
}

func newGraphQLHandler(endpoint Endpoint, config *Config) (*graphqlHandler, error) {
	cache, err := handler.NewLRUOperationCache(config.OperationCacheSize)
	if err != nil {
		return nil, err
	}

	ll, err := handler.NewLLHandler(&handler.LLConfig{
		Schema:         endpoint.Schema(),
		OperationCache: cache,
	})
	if err != nil {
		return nil, err
	}

	resultPresenter := handler.DefaultResultPresenter{}
	return &graphqlHandler{
		LLHandler: ll,
		endpoint:  endpoint,
		requestBuilder: &requestBuilder{
			options: handler.ParseHTTPRequestOptions{
				MaxBodySize: uint(config.MaxBodySize),
			},
		},
		resultPresenter: resultPresenter,
		errorPresenter: errorPresenter{
			DefaultErrorPresenter: handler.DefaultErrorPresenter{
				ResultPresenter: resultPresenter,
			},
		},
		messages: config.Messages,
		metrics:  config.Metrics,
		logger:   config.Logger.With("schema", endpoint.Name()),
		upgrader: websocket.Upgrader{
			Subprotocols: []string{transportWSProtocol},
		},
		maxMessageSize: config.MaxBodySize,
	}, nil
}

// locale returns the language preferences of r.
func locale(r *http.Request) string {
	return r.Header.Get("Accept-Language")
}

// acceptsEventStream returns true if r asks for a text/event-stream response.
func acceptsEventStream(r *http.Request) bool {
	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(accept))
		if err == nil && mediaType == "text/event-stream" {
			return true
		}
	}
	return false
}

func (h *graphqlHandler) observe(operationType ast.OperationType, result *executor.ExecutionResult) {
	if h.metrics != nil {
		h.metrics.ObserveOperation(h.endpoint.Name(), string(operationType), result.Errors.HaveOccurred())
	}
}

// executeOptions returns the options for one execution of request.
func (h *graphqlHandler) executeOptions(request *handler.Request, locale string) []executor.ExecuteOption {
	opts := h.endpoint.ExecuteOptions(locale)
	return append(opts[:len(opts):len(opts)], request.ExecuteOpts...)
}

func (h *graphqlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		h.serveWebSocket(w, r)
		return
	}

	request, err := h.requestBuilder.Build(r, h)
	if err != nil {
		h.errorPresenter.Write(w, err)
		return
	}

	if request.Operation.Type() == ast.OperationTypeSubscription {
		if acceptsEventStream(r) {
			h.serveEventStream(w, r, request)
			return
		}

		result := &executor.ExecutionResult{
			Errors: graphql.ErrorsOf(h.messages.StreamingTransportRequired(locale(r))),
		}
		h.observe(ast.OperationTypeSubscription, result)
		h.resultPresenter.Write(w, r, request, result)
		return
	}

	request.ExecuteOpts = h.executeOptions(request, locale(r))
	result := h.Serve(request)
	h.observe(request.Operation.Type(), result)
	h.resultPresenter.Write(w, r, request, result)
}
