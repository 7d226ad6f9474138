// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/library"
	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/types"
)

type (
	// Options are the run settings that come from flags and configuration.
	Options struct {
		SkipProbe bool
		SkipTests bool
		// StrictLayers folds per-manifest layer failures into the aggregate.
		StrictLayers bool
		// APIVersionCap limits the newest instance version the probe requests.
		APIVersionCap *types.APIVersion
		AppVersion    string
		// Executable and WorkDir are shown in the system summary.
		Executable string
		WorkDir    string
	}

	// Opener returns the graphics runtime for the probe.
	Opener func() (probe.Runtime, error)

	// Option configures an Analyzer.
	Option func(*Analyzer)

	// Analyzer runs the installation pipeline against one host.
	Analyzer struct {
		inv       inventory.Provider
		agg       *discovery.Aggregator
		libs      *library.Validator
		open      Opener
		validator Validator
		opts      Options
		logger    *slog.Logger
	}

	// run carries the state of one Run call.
	run struct {
		*Analyzer
		ctx  context.Context
		sink report.Sink
		rep  *InstallationReport
	}
)

// New returns an Analyzer for inv. Without options it uses the platform
// layout, the real Vulkan binding and no external validator.
func New(inv inventory.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		inv:    inv,
		open:   probe.Open,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.agg == nil {
		a.agg = discovery.NewAggregator(inv)
	}
	if a.libs == nil {
		a.libs = library.New(inv, library.WithLogger(a.logger))
	}
	return a
}

// WithOptions sets the run options.
func WithOptions(o Options) Option {
	return func(a *Analyzer) { a.opts = o }
}

// WithAggregator replaces the source aggregator.
func WithAggregator(agg *discovery.Aggregator) Option {
	return func(a *Analyzer) { a.agg = agg }
}

// WithLibraryValidator replaces the library validator.
func WithLibraryValidator(v *library.Validator) Option {
	return func(a *Analyzer) { a.libs = v }
}

// WithProbe replaces the graphics runtime opener.
func WithProbe(open Opener) Option {
	return func(a *Analyzer) { a.open = open }
}

// WithValidator sets the hook that runs external tests.
func WithValidator(v Validator) Option {
	return func(a *Analyzer) { a.validator = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// Run executes the pipeline, writing every stage to sink. Category failures
// do not stop later categories. The returned error is non-nil only when ctx
// is cancelled; the report then holds the stages completed so far.
func (a *Analyzer) Run(ctx context.Context, sink report.Sink) (*InstallationReport, error) {
	r := &run{
		Analyzer: a,
		ctx:      ctx,
		sink:     sink,
		rep: &InstallationReport{
			Code:       result.Successful,
			MaxVersion: types.Version10,
		},
	}

	stages := []struct {
		name string
		fn   func()
	}{
		{"system", r.system},
		{"drivers", r.drivers},
		{"runtimes", r.runtimes},
		{"sdk", r.sdk},
		{"implicit layers", r.implicitLayers},
		{"explicit layers", r.explicitLayers},
		{"settings", r.settings},
		{"probe", r.probe},
		{"tests", r.tests},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return r.rep, fmt.Errorf("analysis interrupted before %s: %w", st.name, err)
		}
		a.logger.Debug("analysis stage", "stage", st.name)
		st.fn()
	}

	a.logger.Debug("analysis complete", "code", r.rep.Code, "max_version", r.rep.MaxVersion)
	return r.rep, nil
}

func (r *run) fold(c result.Code) {
	r.rep.Code = result.Fold(r.rep.Code, c)
}

// beginCategory opens the section and table of one category.
func (r *run) beginCategory(section string, c discovery.Category) {
	r.sink.BeginSection(section)
	r.sink.BeginTable(c.String(), nil)
}

func (r *run) endCategory(res discovery.Result) {
	for _, d := range res.Diagnostics {
		r.logger.Warn("discovery problem", "category", res.Category, "problem", d.String())
		report.Row(r.sink, "", "WARNING", d.String())
	}
	r.sink.EndTable()
	r.sink.EndSection()
}

// walk visits every location of res and, after each one, the sources it
// produced. Enumeration appends sources just before the location that found
// them, so the two lists are consumed in step.
func (r *run) walk(res discovery.Result, visit func(i int, src discovery.ManifestSource)) {
	next := 0
	for _, loc := range res.Locations {
		r.location(res.Category, loc)
		for range loc.Matches {
			if next >= len(res.Sources) {
				break
			}
			visit(next, res.Sources[next])
			next++
		}
	}
	for ; next < len(res.Sources); next++ {
		visit(next, res.Sources[next])
	}
}

// location writes the header row of one probed place.
func (r *run) location(c discovery.Category, loc discovery.Location) {
	status := loc.StatusText(c)
	switch {
	case loc.Path == "" || loc.Path == loc.Label || loc.Origin == discovery.OriginRegistry:
		report.KeyRow(r.sink, loc.Label, status, "")
	default:
		report.KeyRow(r.sink, loc.Label, loc.Path, status)
	}
}

// indexRow writes an indented, right-aligned list index.
func indexRow(s report.Sink, i int, values ...string) {
	s.BeginRow()
	s.Cell("", report.AlignLeft)
	s.Cell(index(i), report.AlignRight)
	for _, v := range values {
		s.Cell(v, report.AlignLeft)
	}
	s.EndRow()
}

func index(i int) string { return fmt.Sprintf("[%d]", i) }

func isUnavailable(err error) bool {
	return errors.Is(err, probe.ErrUnavailable)
}
