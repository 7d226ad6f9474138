// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vkvia/vkvia/internal/analysis"
	"github.com/vkvia/vkvia/internal/clock"
	"github.com/vkvia/vkvia/internal/config"
	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/internal/smoketest"
)

type (
	// HostFactory builds the inventory the analysis reads from.
	HostFactory func(logger *slog.Logger) inventory.Provider

	// ValidatorFactory builds the external test hook for a configuration.
	ValidatorFactory func(cfg *config.Config, logger *slog.Logger) analysis.Validator

	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and reaches the host, configuration and probe
	// through it.
	App struct {
		Config    config.Provider
		Host      HostFactory
		Probe     analysis.Opener
		Validator ValidatorFactory
		Clock     clock.Clock
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Host      HostFactory
		Probe     analysis.Opener
		Validator ValidatorFactory
		Clock     clock.Clock
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// flagConfigProvider applies command-line flags on top of the loaded
	// configuration.
	flagConfigProvider struct {
		base  config.Provider
		apply func(*config.Config)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Host == nil {
		clk := deps.Clock
		deps.Host = func(logger *slog.Logger) inventory.Provider {
			return inventory.NewHost(inventory.WithClock(clk), inventory.WithLogger(logger))
		}
	}
	if deps.Probe == nil {
		deps.Probe = probe.Open
	}
	if deps.Validator == nil {
		deps.Validator = func(cfg *config.Config, logger *slog.Logger) analysis.Validator {
			return smoketest.New(smoketest.WithFrames(cfg.Tests.Frames), smoketest.WithLogger(logger))
		}
	}

	return &App{
		Config:    deps.Config,
		Host:      deps.Host,
		Probe:     deps.Probe,
		Validator: deps.Validator,
		Clock:     deps.Clock,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

// Load loads the base configuration and applies the flag overrides.
func (p *flagConfigProvider) Load(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error) {
	loaded, err := p.base.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	cfg := *loaded.Config
	p.apply(&cfg)
	return &config.Loaded{Config: &cfg, Path: loaded.Path}, nil
}

// withFlags returns a provider that applies overrides after loading.
func withFlags(base config.Provider, apply func(*config.Config)) config.Provider {
	return &flagConfigProvider{base: base, apply: apply}
}

// elapsed formats the time since start for debug logs.
func (a *App) elapsed(start time.Time) string {
	return a.Clock.Since(start).Round(time.Millisecond).String()
}
