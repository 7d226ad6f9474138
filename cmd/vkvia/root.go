// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vkvia/vkvia/internal/config"
	"github.com/vkvia/vkvia/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds every flag of the root command. Only flags the user set
// override configuration values.
type rootFlags struct {
	configPath   string
	verbose      bool
	logLevel     string
	unique       bool
	outputPath   string
	format       string
	print        bool
	skipProbe    bool
	skipTests    bool
	strictLayers bool
	apiVersion   string
	frames       int
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "vkvia",
		Short: "Vulkan installation analyzer",
		Long: TitleStyle.Render("vkvia") + SubtitleStyle.Render(" - Vulkan installation analyzer") + `

vkvia finds the Vulkan loader, drivers, layers and SDKs installed on this
machine, checks that every manifest parses and every library loads, calls
the Vulkan API when a binding is compiled in, and writes an HTML or
Markdown report. The exit status is the result code; see 'vkvia explain'.

` + SubtitleStyle.Render("Examples:") + `
  vkvia                          Analyse and write vkvia.html
  vkvia --format markdown --print
  vkvia --unique-output --output-path /tmp
  vkvia explain 21               Explain a result code`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.analyze(cmd.Context(), cmd, f)
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default is the platform config directory's vkvia/config.cue)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug messages to stderr")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")

	fl := root.Flags()
	fl.BoolVar(&f.unique, "unique-output", false, "add a timestamp to the report file name")
	fl.StringVar(&f.outputPath, "output-path", "", "directory for the report file")
	fl.StringVar(&f.format, "format", "", "report format: html or markdown")
	fl.BoolVar(&f.print, "print", false, "also render the report in the terminal")
	fl.BoolVar(&f.skipProbe, "skip-probe", false, "do not call the Vulkan API")
	fl.BoolVar(&f.skipTests, "skip-tests", false, "do not run the SDK cube tests")
	fl.BoolVar(&f.strictLayers, "strict-layers", false, "count layer manifest failures in the exit status")
	fl.StringVar(&f.apiVersion, "api-version", "", "highest Vulkan instance version to request, e.g. 1.2")
	fl.IntVar(&f.frames, "frames", 0, "frames the cube test renders")

	root.AddCommand(newConfigCommand(app, f))
	root.AddCommand(newExplainCommand(app))

	return root
}

// applyFlags copies the flags the user set onto cfg.
func (f *rootFlags) applyFlags(cmd *cobra.Command) func(*config.Config) {
	changed := cmd.Flags().Changed
	return func(cfg *config.Config) {
		if changed("verbose") {
			cfg.UI.Verbose = f.verbose
		}
		if changed("log-level") {
			cfg.Log.Level = config.LogLevel(f.logLevel)
		}
		if changed("unique-output") {
			cfg.Output.Unique = f.unique
		}
		if changed("output-path") {
			cfg.Output.Directory = f.outputPath
		}
		if changed("format") {
			cfg.Output.Format = config.OutputFormat(f.format)
		}
		if changed("print") {
			cfg.UI.Print = f.print
		}
		if changed("skip-probe") {
			cfg.Probe.Enabled = !f.skipProbe
		}
		if changed("skip-tests") {
			cfg.Tests.Enabled = !f.skipTests
		}
		if changed("strict-layers") {
			cfg.Analysis.StrictLayers = f.strictLayers
		}
		if changed("api-version") {
			cfg.Probe.APIVersion = f.apiVersion
		}
		if changed("frames") {
			cfg.Tests.Frames = f.frames
		}
	}
}

// Execute runs the CLI and exits with the analysis result code.
func Execute() {
	app := NewApp(Dependencies{})
	root := NewRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler(root)),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// errorHandler prints actionable errors with their suggestions and stays
// quiet for analysis failures, whose summary line is already on stdout.
func errorHandler(root *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}
}
