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
	"github.com/botobag/artemis/graphql"
)

// RequestContext carries request-scoped data to resolvers through executor.AppContext.
type RequestContext struct {
	// Locale negotiated for user-facing messages; either a language tag or the value of an
	// Accept-Language header.
	Locale string
}

// requestContextOf returns the RequestContext of the executing request, or an empty one.
func requestContextOf(info graphql.ResolveInfo) *RequestContext {
	if ctx, ok := info.AppContext().(*RequestContext); ok && ctx != nil {
		return ctx
	}
	return &RequestContext{}
}
