// SPDX-License-Identifier: MPL-2.0

// Package config loads vkvia settings using Viper with CUE as the file format.
//
// The file is config.cue in the platform config directory
// ($XDG_CONFIG_HOME/vkvia, ~/Library/Application Support/vkvia or
// %APPDATA%\vkvia), or config.cue in the current directory. It is validated
// against the embedded config_schema.cue. VKVIA_* environment variables
// override file values, and command-line flags override both.
package config
