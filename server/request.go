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
	"errors"
	"net/http"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/handler"
	"github.com/botobag/artemis/graphql/parser"
	"github.com/botobag/artemis/graphql/token"
)

// cacheKey identifies a prepared operation. Names cannot contain NUL, so operations selected by
// name from the same document never share an entry.
func cacheKey(query string, operationName string) string {
	return operationName + "\x00" + query
}

// prepareOperation returns the operation selected by operationName in query, preparing it on a
// cache miss. Errors are the ones of artemis' default request builder so that they can be
// presented by handler.DefaultErrorPresenter. r and parsedReq are only carried in errors and may
// be nil.
func prepareOperation(
	h handler.HTTPHandler,
	r *http.Request,
	parsedReq *handler.HTTPRequest) (*executor.PreparedOperation, error) {

	if len(parsedReq.Query) == 0 {
		return nil, handler.ErrEmptyQuery{
			Request: r,
		}
	}

	key := cacheKey(parsedReq.Query, parsedReq.OperationName)
	cache := h.OperationCache()
	if cache != nil {
		if operation, ok := cache.Get(key); ok {
			return operation, nil
		}
	}

	document, err := parser.Parse(token.NewSource(parsedReq.Query))
	if err != nil {
		return nil, &handler.ErrParseQuery{
			Request:       r,
			ParsedRequest: parsedReq,
			Err:           err,
		}
	}

	operation, errs := executor.Prepare(
		h.Schema(),
		document,
		executor.OperationName(parsedReq.OperationName),
	)
	if errs.HaveOccurred() {
		return nil, &handler.ErrPrepare{
			Request:       r,
			ParsedRequest: parsedReq,
			Document:      document,
			Errs:          errs,
		}
	}

	if cache != nil {
		cache.Add(key, operation)
	}
	return operation, nil
}

// requestBuilder builds requests with variables normalized for input coercion. Options from the
// endpoint are not included; they are added per execution.
type requestBuilder struct {
	options handler.ParseHTTPRequestOptions
}

var _ handler.RequestBuilder = (*requestBuilder)(nil)

// Build implements handler.RequestBuilder.
func (builder *requestBuilder) Build(r *http.Request, h handler.HTTPHandler) (*handler.Request, error) {
	parsedReq, err := handler.ParseHTTPRequest(r, &builder.options)
	if err != nil {
		return nil, err
	}

	operation, err := prepareOperation(h, r, parsedReq)
	if err != nil {
		return nil, err
	}

	return &handler.Request{
		Ctx:       r.Context(),
		Operation: operation,
		ExecuteOpts: []executor.ExecuteOption{
			executor.VariableValues(normalizeVariables(parsedReq.Variables)),
		},
	}, nil
}

// errorPresenter extends handler.DefaultErrorPresenter to reject malformed HTTP requests.
type errorPresenter struct {
	handler.DefaultErrorPresenter
}

// Write implements handler.ErrorPresenter.
func (presenter errorPresenter) Write(w http.ResponseWriter, err error) {
	var parseErr *handler.HTTPRequestParseError
	if errors.As(err, &parseErr) {
		status := http.StatusBadRequest
		if parseErr.Error() == "request body is too large" {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, parseErr.Error(), status)
		return
	}

	presenter.DefaultErrorPresenter.Write(w, err)
}

// prepareErrors returns the GraphQL errors to report to a streaming client for err returned by
// prepareOperation.
func prepareErrors(err error) graphql.Errors {
	var prepareErr *handler.ErrPrepare
	if errors.As(err, &prepareErr) {
		return prepareErr.Errs
	}
	return graphql.ErrorsOf(err.Error())
}
