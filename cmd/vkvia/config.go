// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/vkvia/vkvia/internal/config"
	"github.com/vkvia/vkvia/internal/issue"
)

// settableKeys lists the keys accepted by `vkvia config set`.
var settableKeys = []string{
	"output.directory",
	"output.unique",
	"output.format",
	"output.file_name",
	"ui.verbose",
	"ui.print",
	"log.level",
	"probe.enabled",
	"probe.api_version",
	"tests.enabled",
	"tests.frames",
	"analysis.strict_layers",
}

// newConfigCommand creates the `vkvia config` command tree.
func newConfigCommand(app *App, f *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vkvia configuration",
		Long: `Manage vkvia configuration.

Configuration is stored in:
  - Linux: ~/.config/vkvia/config.cue
  - macOS: ~/Library/Application Support/vkvia/config.cue
  - Windows: %APPDATA%\vkvia\config.cue

VKVIA_* environment variables override the file, e.g. VKVIA_OUTPUT_FORMAT.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, f.configPath)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app.stdout)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfigPath(app.stdout)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settableKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, f.configPath, args[0], args[1])
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, configPath string) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		return err
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if loaded.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, config.GenerateCUE(loaded.Config))
	return nil
}

func initConfig(w io.Writer) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration").
			WithResource(path).
			WithSuggestion("Check that the configuration directory is writable").
			Wrap(err).
			BuildError()
	}

	if created {
		fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	} else {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
	}
	return nil
}

func showConfigPath(w io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(w, "Config file: %s\n", cfgPath)
	return nil
}

func setConfigValue(ctx context.Context, app *App, configPath, key, value string) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		return err
	}
	cfg := *loaded.Config

	if err := applyConfigValue(&cfg, key, value); err != nil {
		return issue.NewErrorContext().
			WithOperation("set configuration value").
			WithResource(key).
			WithSuggestion("Valid keys: " + strings.Join(settableKeys, ", ")).
			Wrap(err).
			BuildError()
	}
	if valid, errs := cfg.IsValid(); !valid {
		return issue.NewErrorContext().
			WithOperation("set configuration value").
			WithResource(key).
			Wrap(errs[0]).
			BuildError()
	}

	if err := config.Save(&cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// applyConfigValue parses value for key and stores it in cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	if !slices.Contains(settableKeys, key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	switch key {
	case "output.directory":
		cfg.Output.Directory = value
		return nil
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
		return nil
	case "output.file_name":
		cfg.Output.FileName = value
		return nil
	case "log.level":
		cfg.Log.Level = config.LogLevel(value)
		return nil
	case "probe.api_version":
		cfg.Probe.APIVersion = value
		return nil
	case "tests.frames":
		n, err := cast.ToIntE(value)
		if err != nil {
			return fmt.Errorf("%s expects a number: %w", key, err)
		}
		cfg.Tests.Frames = n
		return nil
	}

	b, err := cast.ToBoolE(value)
	if err != nil {
		return fmt.Errorf("%s expects true or false: %w", key, err)
	}
	switch key {
	case "output.unique":
		cfg.Output.Unique = b
	case "ui.verbose":
		cfg.UI.Verbose = b
	case "ui.print":
		cfg.UI.Print = b
	case "probe.enabled":
		cfg.Probe.Enabled = b
	case "tests.enabled":
		cfg.Tests.Enabled = b
	case "analysis.strict_layers":
		cfg.Analysis.StrictLayers = b
	}
	return nil
}
