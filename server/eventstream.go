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
	"net/http"

	"github.com/botobag/artemis/graphql/ast"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/handler"
	"github.com/botobag/artemis/iterator"
	"github.com/botobag/rendezvous/subscription"
)

// eventStreamWriter writes Server-Sent Events ("next" and "complete") and flushes each of them.
type eventStreamWriter struct {
	w          http.ResponseWriter
	controller *http.ResponseController
}

func newEventStreamWriter(w http.ResponseWriter) *eventStreamWriter {
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	writer := &eventStreamWriter{
		w:          w,
		controller: http.NewResponseController(w),
	}
	// Send the headers right away; the first event may take a while.
	writer.flush()
	return writer
}

func (writer *eventStreamWriter) flush() error {
	if err := writer.controller.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

func (writer *eventStreamWriter) event(name string, data []byte) error {
	if _, err := fmt.Fprintf(writer.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return writer.flush()
}

func (writer *eventStreamWriter) next(result *executor.ExecutionResult) error {
	data, err := result.MarshalJSON()
	if err != nil {
		return err
	}
	return writer.event("next", data)
}

func (writer *eventStreamWriter) complete() error {
	return writer.event("complete", nil)
}

// serveEventStream runs a subscription and streams its results until the source completes or the
// client goes away.
func (h *graphqlHandler) serveEventStream(w http.ResponseWriter, r *http.Request, request *handler.Request) {
	ctx := r.Context()
	lang := locale(r)

	stream, result := subscription.Subscribe(ctx, request.Operation, func() []executor.ExecuteOption {
		return h.executeOptions(request, lang)
	})

	writer := newEventStreamWriter(w)
	if result != nil {
		h.observe(ast.OperationTypeSubscription, result)
		if err := writer.next(result); err == nil {
			writer.complete()
		}
		return
	}
	defer stream.Close()

	h.logger.Debug("event stream started", "request_id", RequestIDFromContext(ctx))
	defer h.logger.Debug("event stream stopped", "request_id", RequestIDFromContext(ctx))

	for {
		result, err := stream.Next(ctx)
		if err == iterator.Done {
			writer.complete()
			return
		} else if err != nil {
			if !errors.Is(err, context.Canceled) {
				h.logger.Warn("event stream failed", "error", err)
			}
			return
		}

		h.observe(ast.OperationTypeSubscription, result)
		if err := writer.next(result); err != nil {
			h.logger.Debug("write event", "error", err)
			return
		}
	}
}
