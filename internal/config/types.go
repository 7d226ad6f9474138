// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vkvia/vkvia/pkg/platform"
	"github.com/vkvia/vkvia/pkg/types"
)

const (
	// FormatHTML writes a standalone HTML report.
	FormatHTML OutputFormat = "html"
	// FormatMarkdown writes a Markdown report.
	FormatMarkdown OutputFormat = "markdown"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// DefaultFileName is the report base name.
	DefaultFileName = "vkvia"
	// DefaultFrames is how many frames the cube demo renders.
	DefaultFrames = 50
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidAPIVersion is returned when probe.api_version is not "major.minor".
	ErrInvalidAPIVersion = errors.New("invalid API version")
	// ErrInvalidFileName is returned when output.file_name cannot name a file.
	ErrInvalidFileName = errors.New("invalid report file name")
	// ErrInvalidFrames is returned when tests.frames is not positive.
	ErrInvalidFrames = errors.New("invalid frame count")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects the report writer.
	OutputFormat string

	// InvalidOutputFormatError wraps ErrInvalidOutputFormat.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError wraps ErrInvalidLogLevel.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidAPIVersionError wraps ErrInvalidAPIVersion.
	InvalidAPIVersionError struct {
		Value string
	}

	// InvalidFileNameError wraps ErrInvalidFileName.
	InvalidFileNameError struct {
		Value string
	}

	// InvalidFramesError wraps ErrInvalidFrames.
	InvalidFramesError struct {
		Value int
	}

	// InvalidConfigError collects field-level validation errors and wraps
	// ErrInvalidConfig.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Output   OutputConfig   `json:"output" mapstructure:"output"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
		Log      LogConfig      `json:"log" mapstructure:"log"`
		Probe    ProbeConfig    `json:"probe" mapstructure:"probe"`
		Tests    TestsConfig    `json:"tests" mapstructure:"tests"`
		Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	}

	// OutputConfig places the report file.
	OutputConfig struct {
		// Directory defaults to the current directory when empty.
		Directory string `json:"directory" mapstructure:"directory"`
		// Unique appends a _YYYY_MM_DD_HH_MM timestamp to the file name.
		Unique   bool         `json:"unique" mapstructure:"unique"`
		Format   OutputFormat `json:"format" mapstructure:"format"`
		FileName string       `json:"file_name" mapstructure:"file_name"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Print renders the report to stdout after writing it.
		Print bool `json:"print" mapstructure:"print"`
	}

	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// ProbeConfig controls the Vulkan API calls.
	ProbeConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// APIVersion caps the instance version requested; empty means the
		// loader's maximum.
		APIVersion string `json:"api_version" mapstructure:"api_version"`
	}

	// TestsConfig controls the external cube tests.
	TestsConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		Frames  int  `json:"frames" mapstructure:"frames"`
	}

	AnalysisConfig struct {
		// StrictLayers folds layer manifest failures into the exit status.
		StrictLayers bool `json:"strict_layers" mapstructure:"strict_layers"`
	}
)

// Extension returns the report file extension including the dot.
func (f OutputFormat) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats,
// and a list of validation errors if it is not.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case FormatHTML, FormatMarkdown:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: html, markdown)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

func (e *InvalidAPIVersionError) Error() string {
	return fmt.Sprintf("invalid API version %q: want major.minor, e.g. 1.3", e.Value)
}

func (e *InvalidAPIVersionError) Unwrap() error { return ErrInvalidAPIVersion }

func (e *InvalidFileNameError) Error() string {
	return fmt.Sprintf("invalid report file name %q: use a plain base name that is not a Windows device name", e.Value)
}

func (e *InvalidFileNameError) Unwrap() error { return ErrInvalidFileName }

// validFileName rejects names holding a path separator and Windows device
// names, which cannot be created on every platform.
func validFileName(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || platform.IsWindowsReservedName(name) {
		return &InvalidFileNameError{Value: name}
	}
	return nil
}

func (e *InvalidFramesError) Error() string {
	return fmt.Sprintf("invalid frame count %d: must be positive", e.Value)
}

func (e *InvalidFramesError) Unwrap() error { return ErrInvalidFrames }

// VersionCap parses APIVersion. It returns nil when no cap is configured.
func (c ProbeConfig) VersionCap() (*types.APIVersion, error) {
	if c.APIVersion == "" {
		return nil, nil
	}
	major, minor, ok := strings.Cut(c.APIVersion, ".")
	if !ok {
		return nil, &InvalidAPIVersionError{Value: c.APIVersion}
	}
	maj, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return nil, &InvalidAPIVersionError{Value: c.APIVersion}
	}
	mnr, err := strconv.ParseUint(minor, 10, 32)
	if err != nil {
		return nil, &InvalidAPIVersionError{Value: c.APIVersion}
	}
	return &types.APIVersion{Major: uint32(maj), Minor: uint32(mnr)}, nil
}

// FilePath returns the report path for a run started at now. A unique
// name carries the local time down to the minute.
func (c OutputConfig) FilePath(now time.Time) string {
	name := c.FileName
	if name == "" {
		name = DefaultFileName
	}
	if c.Unique {
		name += now.Format("_2006_01_02_15_04")
	}
	name += c.Format.Extension()
	if c.Directory == "" {
		return name
	}
	return strings.TrimRight(c.Directory, `/\`) + "/" + name
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if err := validFileName(c.Output.FileName); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Probe.VersionCap(); err != nil {
		errs = append(errs, err)
	}
	if c.Tests.Frames <= 0 {
		errs = append(errs, &InvalidFramesError{Value: c.Tests.Frames})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   FormatHTML,
			FileName: DefaultFileName,
		},
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		Probe: ProbeConfig{
			Enabled: true,
		},
		Tests: TestsConfig{
			Enabled: true,
			Frames:  DefaultFrames,
		},
	}
}
