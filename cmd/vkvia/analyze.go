// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkvia/vkvia/internal/analysis"
	"github.com/vkvia/vkvia/internal/config"
	"github.com/vkvia/vkvia/internal/issue"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
)

const reportTitle = "vkvia - Vulkan Installation Analysis"

// reportFile is the open report destination.
type reportFile struct {
	file *os.File
	path string
}

// analyze runs the full installation analysis and writes the report. A
// non-successful analysis returns an ExitError carrying the result code.
func (a *App) analyze(ctx context.Context, cmd *cobra.Command, f *rootFlags) error {
	start := a.Clock.Now()

	loaded, err := withFlags(a.Config, f.applyFlags(cmd)).Load(ctx, config.LoadOptions{ConfigFilePath: f.configPath})
	if err != nil {
		return &ExitError{Code: result.UnknownError, Err: err}
	}
	cfg := loaded.Config
	if valid, errs := cfg.IsValid(); !valid {
		return &ExitError{Code: result.UnknownError, Err: issue.NewErrorContext().
			WithOperation("apply command-line flags").
			WithSuggestion("Run 'vkvia --help' to see the accepted flag values").
			Wrap(errors.Join(errs...)).
			BuildError()}
	}
	versionCap, err := cfg.Probe.VersionCap()
	if err != nil {
		return &ExitError{Code: result.UnknownError, Err: err}
	}

	logger := newLogger(a.stderr, cfg.Log.Level, cfg.UI.Verbose)
	if loaded.Path != "" {
		logger.Debug("configuration loaded", "path", loaded.Path)
	}
	inv := a.Host(logger)

	exe, err := os.Executable()
	if err != nil {
		logger.Debug("cannot resolve executable", "error", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		logger.Debug("cannot resolve working directory", "error", err)
	}

	out, err := createReport(cfg.Output, a.Clock.Now(), inv.HomeDir())
	if err != nil {
		return &ExitError{Code: result.UnknownError, Err: err}
	}
	logger.Debug("writing report", "path", out.path, "format", cfg.Output.Format)

	var file report.Sink
	switch cfg.Output.Format {
	case config.FormatMarkdown:
		file = report.NewMarkdown(out.file, reportTitle)
	default:
		file = report.NewHTML(out.file, report.WithPageTitle(reportTitle), report.WithVersion(Version))
	}
	sinks := report.Multi{file}
	var screen *report.MarkdownWriter
	if cfg.UI.Print {
		screen = report.NewMarkdown(io.Discard, reportTitle)
		sinks = append(sinks, screen)
	}

	analyzer := analysis.New(inv,
		analysis.WithOptions(analysis.Options{
			SkipProbe:     !cfg.Probe.Enabled,
			SkipTests:     !cfg.Tests.Enabled,
			StrictLayers:  cfg.Analysis.StrictLayers,
			APIVersionCap: versionCap,
			AppVersion:    Version,
			Executable:    exe,
			WorkDir:       wd,
		}),
		analysis.WithLogger(logger),
		analysis.WithProbe(a.Probe),
		analysis.WithValidator(a.Validator(cfg, logger)),
	)
	rep, runErr := analyzer.Run(ctx, sinks)

	if err := sinks.Close(); err != nil {
		return &ExitError{Code: result.UnknownError, Err: issue.WrapWithContext(err, "write report", out.path)}
	}
	if runErr != nil {
		return &ExitError{Code: result.UnknownError, Err: runErr}
	}

	if screen != nil {
		var stdoutFile *os.File
		if sf, ok := a.stdout.(*os.File); ok {
			stdoutFile = sf
		}
		rendered, err := report.RenderTerminal(screen.String(), report.TerminalWidth(stdoutFile))
		if err != nil {
			logger.Warn("cannot render report", "error", err)
		} else {
			fmt.Fprint(a.stdout, rendered)
		}
	}

	summary := rep.Summary()
	if rep.Code == result.Successful {
		fmt.Fprintln(a.stdout, SuccessStyle.Render(summary))
	} else {
		fmt.Fprintln(a.stdout, ErrorStyle.Render(summary))
	}
	fmt.Fprintf(a.stdout, "Report written to %s\n", out.path)
	logger.Debug("analysis finished", "code", rep.Code, "elapsed", a.elapsed(start))

	if rep.Code != result.Successful {
		return &ExitError{Code: rep.Code}
	}
	return nil
}

// createReport opens the report file. Without a configured directory the
// current directory is tried first and the home directory second.
func createReport(out config.OutputConfig, now time.Time, home string) (*reportFile, error) {
	if out.Directory != "" {
		if err := os.MkdirAll(out.Directory, 0o755); err != nil {
			return nil, reportError(out.Directory, err)
		}
	}

	path := out.FilePath(now)
	f, err := os.Create(path)
	if err != nil && out.Directory == "" && home != "" {
		out.Directory = home
		path = out.FilePath(now)
		f, err = os.Create(path)
	}
	if err != nil {
		return nil, reportError(path, err)
	}

	if abs, absErr := filepath.Abs(path); absErr == nil {
		path = abs
	}
	return &reportFile{file: f, path: path}, nil
}

func reportError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("create report file").
		WithResource(path).
		WithSuggestion("Check that the directory exists and is writable").
		WithSuggestion("Choose another directory with --output-path").
		Wrap(err).
		BuildError()
}
