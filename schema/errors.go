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

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/rendezvous/store"
)

// Error codes reported in the "code" extension of field errors.
const (
	CodeNotFound = "NOT_FOUND"
	CodeInternal = "INTERNAL"
)

// fieldError converts an error from the store into a field error with a localized message.
func (r *resolvers) fieldError(info graphql.ResolveInfo, err error) error {
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		locale := requestContextOf(info).Locale
		return graphql.NewError(
			r.messages.NotFound(locale, string(notFound.Kind)),
			graphql.ErrorExtensions{"code": CodeNotFound},
			err,
		)
	}

	r.logger.Error("resolver failed", "field", info.Field().Name(), "error", err)
	return graphql.NewError(err.Error(), graphql.ErrorExtensions{"code": CodeInternal}, err)
}
