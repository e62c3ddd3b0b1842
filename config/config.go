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

// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/botobag/rendezvous/idgen"
	"github.com/joho/godotenv"
)

// Environment variables read by Parse.
const (
	EnvAddr              = "RENDEZVOUS_ADDR"
	EnvEnv               = "RENDEZVOUS_ENV"
	EnvLogLevel          = "RENDEZVOUS_LOG_LEVEL"
	EnvIDStrategy        = "RENDEZVOUS_ID_STRATEGY"
	EnvSeedFile          = "RENDEZVOUS_SEED_FILE"
	EnvLocale            = "RENDEZVOUS_LOCALE"
	EnvCountdownInterval = "RENDEZVOUS_COUNTDOWN_INTERVAL"
	EnvMaxBodySize       = "RENDEZVOUS_MAX_BODY_SIZE"
	EnvShutdownTimeout   = "RENDEZVOUS_SHUTDOWN_TIMEOUT"
)

// Deployment environments
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// Config is the server configuration.
type Config struct {
	Addr              string
	Env               string
	LogLevel          slog.Level
	IDStrategy        idgen.Strategy
	SeedFile          string
	Locale            string
	CountdownInterval time.Duration
	MaxBodySize       int64
	ShutdownTimeout   time.Duration
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Addr:              ":4000",
		Env:               Development,
		LogLevel:          slog.LevelInfo,
		IDStrategy:        idgen.StrategySequence,
		Locale:            "en",
		CountdownInterval: time.Second,
		MaxBodySize:       10 << 20,
		ShutdownTimeout:   10 * time.Second,
	}
}

// LookupFunc returns the value of an environment variable and whether it is set. os.LookupEnv is
// one.
type LookupFunc func(key string) (string, bool)

// Load reads the given .env files (".env" if none), then parses and validates the environment.
// Missing .env files are ignored; variables already set in the environment take precedence.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %s: %w", file, err)
		}
	}
	return Parse(os.LookupEnv)
}

// Parse builds a Config from the variables returned by lookup on top of Default. It reports every
// malformed or invalid value at once.
func Parse(lookup LookupFunc) (*Config, error) {
	var (
		config = Default()
		errs   []error
	)

	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get(EnvAddr); ok {
		config.Addr = value
	}
	if value, ok := get(EnvEnv); ok {
		config.Env = strings.ToLower(value)
	}
	if value, ok := get(EnvLogLevel); ok {
		if err := config.LogLevel.UnmarshalText([]byte(value)); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid level %q", EnvLogLevel, value))
		}
	}
	if value, ok := get(EnvIDStrategy); ok {
		config.IDStrategy = idgen.Strategy(strings.ToLower(value))
	}
	if value, ok := get(EnvSeedFile); ok {
		config.SeedFile = value
	}
	if value, ok := get(EnvLocale); ok {
		config.Locale = value
	}
	if value, ok := get(EnvCountdownInterval); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCountdownInterval, err))
		} else {
			config.CountdownInterval = d
		}
	}
	if value, ok := get(EnvMaxBodySize); ok {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid size %q", EnvMaxBodySize, value))
		} else {
			config.MaxBodySize = n
		}
	}
	if value, ok := get(EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvShutdownTimeout, err))
		} else {
			config.ShutdownTimeout = d
		}
	}

	if err := config.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return config, nil
}

// Validate reports every invalid value of config.
func (config *Config) Validate() error {
	var errs []error

	if config.Addr == "" {
		errs = append(errs, fmt.Errorf("%s: must not be empty", EnvAddr))
	}

	switch config.Env {
	case Development, Production, Test:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown environment %q", EnvEnv, config.Env))
	}

	if _, err := idgen.New(config.IDStrategy); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvIDStrategy, err))
	}

	if config.Locale == "" {
		errs = append(errs, fmt.Errorf("%s: must not be empty", EnvLocale))
	}

	if config.CountdownInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive", EnvCountdownInterval))
	}

	if config.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive", EnvMaxBodySize))
	}

	if config.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("%s: must not be negative", EnvShutdownTimeout))
	}

	return errors.Join(errs...)
}

// IsProduction returns true when running in the production environment.
func (config *Config) IsProduction() bool {
	return config.Env == Production
}
