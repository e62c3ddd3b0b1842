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

// Package messages renders user-facing messages in the locale negotiated for a request.
package messages

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message IDs
const (
	IDNotFound                   = "NotFound"
	IDStreamingTransportRequired = "StreamingTransportRequired"
)

// Catalog is a thin wrapper around go-i18n's Bundle.
type Catalog struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	logger          *slog.Logger
}

// New builds a Catalog from the embedded message files. defaultLocale (e.g. "fr") is used when a
// request names no supported language.
func New(defaultLocale string, logger *slog.Logger) (*Catalog, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("messages: invalid default locale %q: %w", defaultLocale, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("messages: load %s: %w", file, err)
		}
	}

	return &Catalog{
		bundle:          bundle,
		defaultLanguage: tag,
		logger:          logger,
	}, nil
}

// DefaultLanguage returns the fallback language of c.
func (c *Catalog) DefaultLanguage() language.Tag {
	return c.defaultLanguage
}

// Languages returns the languages c has messages for.
func (c *Catalog) Languages() []language.Tag {
	return c.bundle.LanguageTags()
}

// Localize renders the message identified by id. locale may be a language tag or the value of an
// Accept-Language header. If the message cannot be rendered, id is returned.
func (c *Catalog) Localize(locale string, id string, data map[string]any) string {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, c.defaultLanguage.String())

	localizer := i18n.NewLocalizer(c.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		c.logger.Warn("localize failed", "id", id, "languages", languages, "error", err)
		return id
	}
	return msg
}

// NotFound renders the message for a missing record of the given kind (e.g., "Event").
func (c *Catalog) NotFound(locale string, kind string) string {
	return c.Localize(locale, IDNotFound, map[string]any{
		"Kind": c.Localize(locale, "Kind"+kind, nil),
	})
}

// StreamingTransportRequired renders the message for a subscription sent as a plain request.
func (c *Catalog) StreamingTransportRequired(locale string) string {
	return c.Localize(locale, IDStreamingTransportRequired, nil)
}
