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

// Package schema defines the main GraphQL schema over the entity store.
//
// Queries read the store. Mutations perform exactly one store operation each; creating a User, an
// Event or a Participant also publishes the created record to the bus after the insert succeeded.
// Subscriptions stream the records published on the corresponding topic.
//
// Relations of an Event (its organizer, venue and participants) are resolved by scanning the
// related collection at read time, through per-request data loaders. The executor dispatches each
// load as soon as it is requested, so a load is one scan. Loaders never cache, so a mutation always
// observes the effect of the preceding ones.
package schema
