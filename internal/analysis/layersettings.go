// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/settings"
)

func (r *run) settings() {
	res := r.agg.Enumerate(discovery.CategorySettings)
	rep := SettingsReport{Discovery: res}

	r.beginCategory("Vulkan Layer Settings File", discovery.CategorySettings)
	r.walk(res, func(_ int, src discovery.ManifestSource) {
		f, err := settings.Load(r.inv, src.Path)
		if err != nil {
			r.logger.Debug("cannot load layer settings", "path", src.Path, "error", err)
			rep.Failed = append(rep.Failed, src.Path)
			report.Row(r.sink, "", src.Path, "Failed to open settings file")
			return
		}
		rep.Files = append(rep.Files, f)
		report.Row(r.sink, "", src.Path, "")
		for _, g := range f.Groups {
			r.sink.BeginRow()
			r.sink.Cell("", report.AlignLeft)
			r.sink.Cell(g.Layer, report.AlignRight)
			r.sink.EndRow()
			for _, st := range g.Settings {
				report.Row(r.sink, "", "", st.Name, st.Value)
			}
		}
	})
	r.endCategory(res)

	r.rep.Settings = rep
}
