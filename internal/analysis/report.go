// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"context"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/layerpolicy"
	"github.com/vkvia/vkvia/internal/library"
	"github.com/vkvia/vkvia/internal/manifest"
	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/internal/settings"
	"github.com/vkvia/vkvia/pkg/types"
)

type (
	// Entry is one driver or layer read from a manifest source. A manifest
	// holding several layers yields one Entry per layer; a manifest that
	// failed to parse yields one Entry carrying ParseErr.
	Entry struct {
		Source   discovery.ManifestSource
		Driver   *manifest.Driver
		Layer    *manifest.Layer
		ParseErr *manifest.ParseError
		// Library is nil when the manifest declares no library path.
		Library *library.Resolution
		// Policy is set for implicit layers only.
		Policy *layerpolicy.State
	}

	// CategoryReport is the outcome of one manifest category.
	CategoryReport struct {
		Discovery discovery.Result
		Entries   []Entry
		// Code is the worst outcome of the category. Layer codes reach the
		// aggregate only when strict layer checking is on.
		Code result.Code
	}

	// RuntimeFile is one runtime library found in a library directory.
	RuntimeFile struct {
		Path string
		// Target is the symlink target, or "" for a regular file.
		Target string
	}

	// RuntimeReport lists the runtime libraries on the host.
	RuntimeReport struct {
		Discovery discovery.Result
		Files     []RuntimeFile
		// LoaderPath is the runtime the dynamic loader resolves, or "" when
		// none could be determined.
		LoaderPath string
		Code       result.Code
	}

	// SDK describes the SDK installation the external tests run against.
	SDK struct {
		Found bool
		// Path is the SDK root named by VK_SDK_PATH or VULKAN_SDK. Empty for
		// a system-installed SDK.
		Path          string
		SystemInstall bool
		// Version is the installed package version of a system SDK.
		Version string
		// Layers are the explicit layer manifests shipped in the SDK.
		Layers []string
	}

	// SDKReport is the outcome of the SDK stage.
	SDKReport struct {
		Discovery discovery.Result
		SDK       SDK
	}

	// SettingsReport is the layer settings file stage.
	SettingsReport struct {
		Discovery discovery.Result
		Files     []*settings.File
		// Failed lists settings files that were found but could not be read.
		Failed []string
	}

	// TestOutcome is what a Validator reports back.
	TestOutcome struct {
		Ran  bool
		Code result.Code
	}

	// Validator runs external checks once discovery is complete.
	Validator interface {
		Validate(ctx context.Context, sdk SDK, sink report.Sink) TestOutcome
	}

	// InstallationReport is everything one run found.
	InstallationReport struct {
		System         inventory.SystemInfo
		OSName         string
		Drivers        CategoryReport
		Runtimes       RuntimeReport
		SDK            SDKReport
		ImplicitLayers CategoryReport
		ExplicitLayers CategoryReport
		Settings       SettingsReport
		// Probe is nil when the graphics probe did not run.
		Probe *probe.Outcome
		Tests TestOutcome
		Code  result.Code
		// MaxVersion is the newest API version an instance and its devices
		// were created with.
		MaxVersion types.APIVersion
	}
)

// Outcome returns the inputs of the summary line.
func (r *InstallationReport) Outcome() result.Outcome {
	return result.Outcome{
		SDKFound:   r.SDK.SDK.Found,
		TestsRan:   r.Tests.Ran,
		MaxVersion: r.MaxVersion,
	}
}

// Summary returns the line printed when the run ends.
func (r *InstallationReport) Summary() string {
	return result.Summary(r.Code, r.Outcome())
}

// Parsed returns the entries that parsed.
func (c CategoryReport) Parsed() []Entry {
	out := make([]Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		if e.ParseErr == nil && (e.Driver != nil || e.Layer != nil) {
			out = append(out, e)
		}
	}
	return out
}

// Usable reports whether the entry's library was found and loaded.
func (e Entry) Usable() bool {
	return e.Library != nil && e.Library.Found && e.Library.Loadable
}
