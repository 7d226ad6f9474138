// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/vkvia/vkvia/internal/config"
)

// newLogger returns a slog logger backed by a charmbracelet/log handler.
// Verbose output always logs at debug level.
func newLogger(w io.Writer, level config.LogLevel, verbose bool) *slog.Logger {
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "vkvia",
		Level:  lvl,
	})
	return slog.New(handler)
}
