// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/internal/result"
)

func (r *run) probe() {
	s := r.sink
	s.BeginSection("Vulkan API Calls")
	defer s.EndSection()

	if r.opts.SkipProbe {
		s.Text("Vulkan API calls skipped")
		return
	}

	rt, err := r.open()
	switch {
	case isUnavailable(err):
		r.logger.Warn("graphics probe unavailable", "error", err)
		s.Text("Vulkan API calls unavailable: built without the Vulkan binding")
		return
	case err != nil:
		r.logger.Warn("cannot open Vulkan runtime", "error", err)
		s.Text("Failed to open the Vulkan runtime: " + err.Error())
		r.fold(result.VulkanCantFindRuntime)
		return
	}

	opts := []probe.Option{probe.WithLogger(r.logger)}
	if r.opts.APIVersionCap != nil {
		opts = append(opts, probe.WithVersionCap(*r.opts.APIVersionCap))
	}
	out := probe.Report(rt, s, opts...)
	r.rep.Probe = &out
	r.rep.MaxVersion = out.MaxVersion
	r.fold(out.Code)
}
