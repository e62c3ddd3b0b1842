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

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/botobag/rendezvous/config"
	"github.com/botobag/rendezvous/idgen"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func lookupIn(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

var _ = Describe("Config", func() {
	Describe("Parse", func() {
		It("returns defaults for an empty environment", func() {
			c, err := config.Parse(lookupIn(nil))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c).Should(Equal(config.Default()))
			Expect(c.Addr).Should(Equal(":4000"))
			Expect(c.IsProduction()).Should(BeFalse())
		})

		It("reads every variable", func() {
			c, err := config.Parse(lookupIn(map[string]string{
				config.EnvAddr:              "127.0.0.1:8080",
				config.EnvEnv:               "Production",
				config.EnvLogLevel:          "debug",
				config.EnvIDStrategy:        "uuid",
				config.EnvSeedFile:          "seed.toml",
				config.EnvLocale:            "fr",
				config.EnvCountdownInterval: "250ms",
				config.EnvMaxBodySize:       "1024",
				config.EnvShutdownTimeout:   "0s",
			}))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c).Should(Equal(&config.Config{
				Addr:              "127.0.0.1:8080",
				Env:               config.Production,
				LogLevel:          slog.LevelDebug,
				IDStrategy:        idgen.StrategyUUID,
				SeedFile:          "seed.toml",
				Locale:            "fr",
				CountdownInterval: 250 * time.Millisecond,
				MaxBodySize:       1024,
				ShutdownTimeout:   0,
			}))
			Expect(c.IsProduction()).Should(BeTrue())
		})

		It("treats blank values as unset", func() {
			c, err := config.Parse(lookupIn(map[string]string{
				config.EnvAddr:   "  ",
				config.EnvLocale: "",
			}))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Addr).Should(Equal(":4000"))
			Expect(c.Locale).Should(Equal("en"))
		})

		It("reports every invalid value", func() {
			_, err := config.Parse(lookupIn(map[string]string{
				config.EnvEnv:               "staging",
				config.EnvLogLevel:          "loud",
				config.EnvIDStrategy:        "random",
				config.EnvCountdownInterval: "soon",
				config.EnvMaxBodySize:       "-1",
				config.EnvShutdownTimeout:   "-5s",
			}))
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(SatisfyAll(
				ContainSubstring(config.EnvEnv),
				ContainSubstring(config.EnvLogLevel),
				ContainSubstring(config.EnvIDStrategy),
				ContainSubstring(config.EnvCountdownInterval),
				ContainSubstring(config.EnvMaxBodySize),
				ContainSubstring(config.EnvShutdownTimeout),
			))
		})
	})

	Describe("Validate", func() {
		It("accepts the defaults", func() {
			Expect(config.Default().Validate()).Should(Succeed())
		})

		It("rejects non-positive intervals", func() {
			c := config.Default()
			c.CountdownInterval = 0
			Expect(c.Validate()).Should(MatchError(ContainSubstring(config.EnvCountdownInterval)))
		})
	})

	Describe("Load", func() {
		var (
			keys = []string{config.EnvAddr, config.EnvLocale}
			dir  string
		)

		BeforeEach(func() {
			for _, key := range keys {
				Expect(os.Unsetenv(key)).Should(Succeed())
			}

			var err error
			dir, err = os.MkdirTemp("", "rendezvous-config")
			Expect(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			for _, key := range keys {
				Expect(os.Unsetenv(key)).Should(Succeed())
			}
			Expect(os.RemoveAll(dir)).Should(Succeed())
		})

		It("reads a .env file", func() {
			path := filepath.Join(dir, "test.env")
			Expect(os.WriteFile(path, []byte("RENDEZVOUS_ADDR=:5000\nRENDEZVOUS_LOCALE=fr\n"), 0o600)).Should(Succeed())

			c, err := config.Load(path)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Addr).Should(Equal(":5000"))
			Expect(c.Locale).Should(Equal("fr"))
		})

		It("keeps variables already set", func() {
			Expect(os.Setenv(config.EnvAddr, ":6000")).Should(Succeed())

			path := filepath.Join(dir, "test.env")
			Expect(os.WriteFile(path, []byte("RENDEZVOUS_ADDR=:5000\n"), 0o600)).Should(Succeed())

			c, err := config.Load(path)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Addr).Should(Equal(":6000"))
		})

		It("ignores a missing .env file", func() {
			c, err := config.Load(filepath.Join(dir, "missing.env"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Addr).Should(Equal(":4000"))
		})
	})
})
