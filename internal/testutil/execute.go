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

// Package testutil provides helpers shared by the test suites.
package testutil

import (
	"bytes"
	"context"
	"fmt"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/parser"
	"github.com/botobag/artemis/graphql/token"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

// Prepare parses and validates query against schema. It fails the running test on syntax or
// validation errors.
func Prepare(schema graphql.Schema, query string, opts ...executor.PrepareOption) *executor.PreparedOperation {
	document, err := parser.Parse(token.NewSource(query))
	gomega.ExpectWithOffset(1, err).ShouldNot(gomega.HaveOccurred())

	operation, errs := executor.Prepare(schema, document, opts...)
	gomega.ExpectWithOffset(1, errs.HaveOccurred()).Should(gomega.BeFalse(), "prepare errors: %v", errs.Errors)
	return operation
}

// Execute is a convenient function wrapping Prepare and PreparedOperation.Execute. Options passed in
// opts must each be either an executor.PrepareOption or an executor.ExecuteOption, or it panics.
func Execute(schema graphql.Schema, query string, opts ...interface{}) *executor.ExecutionResult {
	var (
		prepareOpts []executor.PrepareOption
		executeOpts []executor.ExecuteOption
	)

	for _, opt := range opts {
		switch opt := opt.(type) {
		case executor.PrepareOption:
			prepareOpts = append(prepareOpts, opt)

		case executor.ExecuteOption:
			executeOpts = append(executeOpts, opt)

		default:
			panic(fmt.Sprintf("%+v is not a valid options to execute (should be either "+
				"executor.PrepareOption or executor.ExecuteOption, but got %T", opt, opt))
		}
	}

	return Prepare(schema, query, prepareOpts...).Execute(context.Background(), executeOpts...)
}

// Stringify serializes result into JSON.
func Stringify(result *executor.ExecutionResult) []byte {
	var buf bytes.Buffer
	gomega.ExpectWithOffset(1, result.MarshalJSONTo(&buf)).Should(gomega.Succeed())
	return buf.Bytes()
}

// MatchResultInJSON serializes an *executor.ExecutionResult into JSON and matches it against
// resultJSON.
func MatchResultInJSON(resultJSON string) types.GomegaMatcher {
	return gomega.WithTransform(Stringify, gomega.MatchJSON(resultJSON))
}
