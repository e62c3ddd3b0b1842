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

// Package subscription executes GraphQL subscription operations.
//
// A subscription operation selects exactly one root field. The root field's resolver, created with
// FieldResolver, is called once to open a source Stream with the field's arguments. Then every
// event read from the source is used as the root value of one execution of the operation, which
// produces one result in the result stream. The resolver returns the event itself in that phase so
// the event is completed against the field's return type.
package subscription

import (
	"context"
	"errors"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/ast"
	"github.com/botobag/artemis/graphql/executor"
)

// Stream is a source of events. Next returns iterator.Done once the stream is exhausted.
type Stream interface {
	Next(ctx context.Context) (interface{}, error)
	Close()
}

// SourceFunc opens the source stream for a subscription root field. info carries the coerced
// arguments and the application context of the request.
type SourceFunc func(ctx context.Context, info graphql.ResolveInfo) (Stream, error)

// sourceRequest is the root value for the execution that resolves the source stream.
type sourceRequest struct {
	stream Stream
}

// errMultipleSources is reported when more than one root field tries to open a stream.
var errMultipleSources = errors.New("subscription operation must select exactly one top-level field")

// FieldResolver creates the resolver for a subscription root field.
func FieldResolver(open SourceFunc) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		request, ok := source.(*sourceRequest)
		if !ok {
			// Source is the event.
			return source, nil
		}

		if request.stream != nil {
			return nil, graphql.NewError(errMultipleSources.Error(), errMultipleSources)
		}

		stream, err := open(ctx, info)
		if err != nil {
			return nil, err
		}
		request.stream = stream

		// The result of the source execution is discarded.
		return nil, nil
	})
}

// ExecuteOptionsFunc returns the options for one execution of an operation. It is called once to
// resolve the source stream and once per event.
type ExecuteOptionsFunc func() []executor.ExecuteOption

// ResultStream maps the events of a source stream to execution results.
type ResultStream struct {
	operation *executor.PreparedOperation
	source    Stream
	opts      ExecuteOptionsFunc
}

// Subscribe resolves the source stream of a prepared subscription operation. On failure it returns
// an execution result carrying the errors instead of a stream. opts may be nil.
func Subscribe(
	ctx context.Context,
	operation *executor.PreparedOperation,
	opts ExecuteOptionsFunc) (*ResultStream, *executor.ExecutionResult) {

	if operation.Type() != ast.OperationTypeSubscription {
		return nil, &executor.ExecutionResult{
			Errors: graphql.ErrorsOf("Only subscription operations can be subscribed to"),
		}
	}

	if opts == nil {
		opts = func() []executor.ExecuteOption { return nil }
	}

	request := &sourceRequest{}
	result := operation.Execute(ctx, append(opts(), executor.RootValue(request))...)

	if request.stream == nil || selectsMultipleSources(result) {
		if request.stream != nil {
			request.stream.Close()
		}
		if !result.Errors.HaveOccurred() {
			result.Errors = graphql.ErrorsOf("Subscription field did not return an event stream")
		}
		return nil, &executor.ExecutionResult{
			Errors: result.Errors,
		}
	}

	return &ResultStream{
		operation: operation,
		source:    request.stream,
		opts:      opts,
	}, nil
}

// selectsMultipleSources returns true if more than one root field tried to open a stream.
func selectsMultipleSources(result *executor.ExecutionResult) bool {
	for _, err := range result.Errors.Errors {
		if err.Err == errMultipleSources {
			return true
		}
	}
	return false
}

// Next waits for the next source event and returns the result of executing the operation with it.
// It returns iterator.Done when the source is exhausted or closed, or the error of ctx if it is
// cancelled.
func (stream *ResultStream) Next(ctx context.Context) (*executor.ExecutionResult, error) {
	event, err := stream.source.Next(ctx)
	if err != nil {
		return nil, err
	}
	return stream.operation.Execute(ctx, append(stream.opts(), executor.RootValue(event))...), nil
}

// Close closes the source stream.
func (stream *ResultStream) Close() {
	stream.source.Close()
}
