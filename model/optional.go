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

package model

// Optional carries an input value that may be absent. Set reports whether the input named the
// field at all; a set Optional with nil Value is an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some creates a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null creates a set Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// assign copies o into dst when o is set. Explicit null clears dst.
func (o Optional[T]) assign(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}

// assignNonNull copies o into dst when o is set and holds a value. Explicit null is ignored because
// the target field cannot represent it.
func (o Optional[T]) assignNonNull(dst *T) {
	if o.Set && o.Value != nil {
		*dst = *o.Value
	}
}
