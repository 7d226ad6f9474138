// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"strings"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/layerpolicy"
	"github.com/vkvia/vkvia/internal/manifest"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
)

func (r *run) implicitLayers() {
	r.rep.ImplicitLayers = r.layers("Vulkan Implicit Layers", discovery.CategoryImplicitLayer)
}

// explicitLayers searches the override paths of every implicit layer, enabled
// or not, after the usual places.
func (r *run) explicitLayers() {
	var overrides []string
	for _, e := range r.rep.ImplicitLayers.Entries {
		if e.Policy != nil {
			overrides = append(overrides, e.Policy.OverridePaths...)
		}
	}
	if len(overrides) > 0 {
		r.logger.Debug("explicit layer overrides", "paths", overrides)
	}
	r.rep.ExplicitLayers = r.layers("Vulkan Explicit Layers", discovery.CategoryExplicitLayer, overrides...)
}

func (r *run) layers(section string, c discovery.Category, overrides ...string) CategoryReport {
	res := r.agg.Enumerate(c, overrides...)
	cat := CategoryReport{Discovery: res}

	r.beginCategory(section, c)
	r.walk(res, func(i int, src discovery.ManifestSource) {
		report.Row(r.sink, index(i), src.Path, enabledText(src))
		if !src.Enabled {
			cat.Entries = append(cat.Entries, Entry{Source: src})
			return
		}
		cat.Entries = append(cat.Entries, r.layerEntries(c, src)...)
	})
	r.endCategory(res)

	cat.Code = layerCode(cat)
	r.logger.Debug("layers analysed", "category", c, "manifests", len(res.Sources), "layers", len(cat.Parsed()), "code", cat.Code)
	if r.opts.StrictLayers {
		r.fold(cat.Code)
	}
	return cat
}

func (r *run) layerEntries(c discovery.Category, src discovery.ManifestSource) []Entry {
	layers, err := manifest.LoadLayers(r.inv, src.Path)
	if err != nil {
		pe := parseError(err, src.Path)
		parseErrorRow(r.sink, pe)
		return []Entry{{Source: src, ParseErr: pe}}
	}

	entries := make([]Entry, 0, len(layers))
	for _, l := range layers {
		if len(layers) > 1 {
			report.Row(r.sink, "", "Layer "+index(l.Index), "")
		}
		entries = append(entries, r.layer(c, src, l))
	}
	return entries
}

func (r *run) layer(c discovery.Category, src discovery.ManifestSource, l *manifest.Layer) Entry {
	e := Entry{Source: src, Layer: l}
	s := r.sink

	report.Row(s, "", "Name", l.Name.Display())
	report.Row(s, "", "Type", l.Type.Display())
	report.Row(s, "", "Description", l.Description.Display())
	report.Row(s, "", "API Version", l.APIVersion.Display())
	report.Row(s, "", "JSON File Version", l.FileFormatVersion.Display())
	report.Row(s, "", "Implementation Version", l.ImplementationVersion.Display())

	switch l.Binding() {
	case manifest.BindingLibrary:
		report.Row(s, "", "Library Path", l.LibraryPath.Display())
		if l.LibraryPath.Present() {
			lib := r.libs.Validate(r.ctx, src.Path, l.LibraryPath.Value)
			e.Library = &lib
			libraryRows(s, lib)
		}
	case manifest.BindingComponents:
		report.Row(s, "", "Component Layers", l.ComponentLayers.Display())
		for j, name := range l.ComponentLayers.Items {
			indexRow(s, j, name)
		}
	case manifest.BindingBoth:
		report.Row(s, "", "Library Path", manifest.MarkerBothDefined)
		report.Row(s, "", "Component Layers", manifest.MarkerBothDefined)
	default:
		report.Row(s, "", "Library Path", manifest.MarkerMissing)
	}

	extensionRows(s, "Device Extensions", l.DeviceExtensions)
	extensionRows(s, "Instance Extensions", l.InstanceExtensions)

	if c == discovery.CategoryImplicitLayer {
		st := layerpolicy.Evaluate(l, r.inv, r.inv.Now())
		e.Policy = &st
		policyRows(s, l, st)
	}
	return e
}

func policyRows(s report.Sink, l *manifest.Layer, st layerpolicy.State) {
	if l.OverridePaths.State != manifest.FieldMissing {
		report.Row(s, "", "Override Paths", l.OverridePaths.Display(), strings.Join(st.OverridePaths, ":"))
	}
	switch {
	case st.Expiration != nil:
		report.Row(s, "", "Expiration", st.Expiration.String())
	case l.ExpirationRaw.State != manifest.FieldMissing:
		report.Row(s, "", "Expiration", l.ExpirationRaw.Display()+" (unparsable)")
	}
	report.Row(s, "", "Enabled State", st.Display())

	s.BeginRow()
	s.Cell("", report.AlignLeft)
	s.Cell("Enable Env Var", report.AlignRight)
	s.Cell(st.Enable.DisplayName(), report.AlignLeft)
	s.Cell(enableValue(st.Enable), report.AlignLeft)
	s.EndRow()

	s.BeginRow()
	s.Cell("", report.AlignLeft)
	s.Cell("Disable Env Var", report.AlignRight)
	s.Cell(st.Disable.DisplayName(), report.AlignLeft)
	s.Cell(st.Disable.DisplayValue(), report.AlignLeft)
	s.EndRow()
}

// enableValue shows the value of a set enable variable, or Not Defined.
func enableValue(g layerpolicy.Gate) string {
	switch {
	case g.Name == "":
		return ""
	case g.Set:
		return g.Value
	default:
		return layerpolicy.NotDefined
	}
}

// layerCode maps the first per-manifest layer failure to a code. Unreadable
// manifests are MissingLayerJSON, malformed ones LayerJSONParsingError and
// libraries that are missing or do not load MissingLayerLib.
func layerCode(cat CategoryReport) result.Code {
	code := result.Successful
	for _, e := range cat.Entries {
		switch {
		case e.ParseErr != nil && e.ParseErr.Kind == manifest.KindUnreadable:
			code = result.Fold(code, result.MissingLayerJSON)
		case e.ParseErr != nil:
			code = result.Fold(code, result.LayerJSONParsingError)
		case e.Layer != nil && e.Library != nil && !e.Usable():
			code = result.Fold(code, result.MissingLayerLib)
		}
	}
	return code
}
