// SPDX-License-Identifier: MPL-2.0

package analysis

// noSDKText is written in place of the external tests when no SDK was found.
const noSDKText = "No SDK found by vkvia, skipping test section"

func (r *run) tests() {
	if r.validator == nil {
		return
	}
	s := r.sink
	s.BeginSection("External Tests")
	defer s.EndSection()

	switch {
	case r.opts.SkipTests:
		s.Text("External tests skipped")
		return
	case !r.rep.SDK.SDK.Found:
		s.Text(noSDKText)
		return
	}

	out := r.validator.Validate(r.ctx, r.rep.SDK.SDK, s)
	r.logger.Debug("external tests finished", "ran", out.Ran, "code", out.Code)
	r.rep.Tests = out
	r.fold(out.Code)
}
