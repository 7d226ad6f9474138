// SPDX-License-Identifier: MPL-2.0

package smoketest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/vkvia/vkvia/internal/analysis"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/internal/shell"
	"github.com/vkvia/vkvia/pkg/platform"
)

// DefaultFrames is the number of frames the cube renders per run.
const DefaultFrames = 50

const (
	statusSuccess  = "SUCCESSFUL"
	statusFailed   = "FAILED!"
	statusNotFound = "Not Found"
)

// executables are tried in order; older SDKs ship the sample as "cube".
var executables = []string{"vkcube", "cube"}

type (
	// Runner runs script in dir. An empty dir means the current directory.
	Runner func(ctx context.Context, dir, script string) (*shell.Result, error)

	// Option configures a Cube.
	Option func(*Cube)

	// Cube runs the cube sample twice, plain and with validation layers.
	Cube struct {
		frames int
		goos   string
		goarch string
		run    Runner
		logger *slog.Logger
	}
)

var _ analysis.Validator = (*Cube)(nil)

// New returns a Cube for the running platform.
func New(opts ...Option) *Cube {
	c := &Cube{
		frames: DefaultFrames,
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
		run:    runShell,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithFrames sets the frame count passed to --c.
func WithFrames(n int) Option {
	return func(c *Cube) {
		if n > 0 {
			c.frames = n
		}
	}
}

// WithPlatform overrides the platform whose SDK layout is assumed.
func WithPlatform(goos, goarch string) Option {
	return func(c *Cube) { c.goos, c.goarch = goos, goarch }
}

// WithRunner replaces the shell runner.
func WithRunner(r Runner) Option {
	return func(c *Cube) { c.run = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cube) { c.logger = l }
}

func runShell(ctx context.Context, dir, script string) (*shell.Result, error) {
	return shell.Run(ctx, script, shell.WithDir(dir))
}

// Validate runs the first cube executable that exists in the SDK. A first
// run that fails moves on to the next executable; a first run that succeeds
// is followed by a run with --validate and ends the test.
func (c *Cube) Validate(ctx context.Context, sdk analysis.SDK, sink report.Sink) analysis.TestOutcome {
	sink.BeginTable("Cube", nil)
	defer sink.EndTable()

	dir := c.workDir(sdk)
	found := false
	for _, name := range executables {
		line := fmt.Sprintf("%s --c %d --suppress_popups", c.command(name, sdk), c.frames)
		res, err := c.run(ctx, dir, line)
		if ctx.Err() != nil {
			report.Row(sink, line, "CANCELLED")
			return analysis.TestOutcome{Code: result.TestFailed}
		}
		if notFound(res, err) {
			c.logger.Debug("cube sample not found", "command", line, "dir", dir, "error", err)
			report.Row(sink, line, statusNotFound)
			continue
		}

		found = true
		if !res.Success() {
			c.logger.Warn("cube sample failed", "command", line, "exit_code", res.ExitCode, "stderr", strings.TrimSpace(res.ErrOutput))
			report.Row(sink, line, statusFailed)
			continue
		}
		report.Row(sink, line, statusSuccess)

		line += " --validate"
		res, err = c.run(ctx, dir, line)
		if err != nil || !res.Success() {
			c.logger.Warn("cube sample failed with validation", "command", line, "error", err)
			report.Row(sink, line, statusFailed)
			return analysis.TestOutcome{Ran: true, Code: result.TestFailed}
		}
		report.Row(sink, line, statusSuccess)
		return analysis.TestOutcome{Ran: true, Code: result.Successful}
	}

	if !found {
		report.Row(sink, "Failed to find either 'vkcube' or 'cube' executables", "FAILURE")
	}
	return analysis.TestOutcome{Ran: found, Code: result.TestFailed}
}

// workDir is where the sample lives: nowhere for a system SDK (it is on
// PATH), the Bin folder on Windows, examples/build beside the SDK elsewhere.
func (c *Cube) workDir(sdk analysis.SDK) string {
	switch {
	case sdk.SystemInstall || sdk.Path == "":
		return ""
	case c.goos == platform.Windows:
		bin := "Bin"
		if c.goarch == "386" {
			bin = "Bin32"
		}
		return strings.TrimRight(sdk.Path, `\/`) + `\` + bin
	default:
		return strings.TrimRight(sdk.Path, "/") + "/../examples/build"
	}
}

func (c *Cube) command(name string, sdk analysis.SDK) string {
	switch {
	case sdk.SystemInstall || sdk.Path == "":
		return name
	case c.goos == platform.Windows:
		return "./" + name + ".exe"
	default:
		return "./" + name
	}
}

// notFound reports a missing executable or working directory.
func notFound(res *shell.Result, err error) bool {
	return err != nil || res == nil || res.ExitCode == shell.ExitNotFound
}
