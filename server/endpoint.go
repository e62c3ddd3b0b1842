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
	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
)

// Endpoint is a schema served on one path.
type Endpoint interface {
	// Name identifies the schema in logs and metrics.
	Name() string

	// Schema to execute operations against
	Schema() graphql.Schema

	// ExecuteOptions returns the options for one execution on behalf of a request whose preferred
	// languages are given in locale (a language tag or an Accept-Language value). It is called once
	// per execution, so once per event for subscriptions.
	ExecuteOptions(locale string) []executor.ExecuteOption
}
