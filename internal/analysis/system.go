// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/platform"
)

// notDefined is shown for unset environment variables.
const notDefined = "Not Defined"

// environmentVars are the variables listed in the system summary, per
// platform.
var environmentVars = map[string][]string{
	platform.Linux: {
		"DESKTOP_SESSION", "LD_LIBRARY_PATH", "GDK_BACKEND", "DISPLAY",
		"WAYLAND_DISPLAY", "MIR_SOCKET", "XDG_SESSION_TYPE",
	},
	platform.Darwin:  {"DYLD_LIBRARY_PATH", "DYLD_FALLBACK_LIBRARY_PATH"},
	platform.Windows: {"PATH"},
}

func (r *run) system() {
	info, err := r.inv.SystemInfo(r.ctx)
	if err != nil {
		r.logger.Debug("system information incomplete", "error", err)
		if info == (inventory.SystemInfo{}) {
			r.fold(result.SystemCallFailure)
		}
	}
	r.rep.System = info
	r.rep.OSName = info.OSName

	s := r.sink
	s.BeginSection("System Info")

	s.BeginTable("Environment", nil)
	report.KeyRow(s, "Operating System", orUnknown(info.OSName))
	report.KeyRow(s, "OS Version", orUnknown(info.OSVersion))
	report.KeyRow(s, "Kernel Version", orUnknown(info.KernelVersion))
	report.KeyRow(s, "Kernel Build", orUnknown(info.KernelBuild))
	report.KeyRow(s, "Machine Target", orUnknown(info.Architecture))
	report.KeyRow(s, "Hostname", orUnknown(info.Hostname))
	for _, name := range environmentVars[r.inv.GOOS()] {
		value, ok := r.inv.Getenv(name)
		if !ok {
			value = notDefined
		}
		report.KeyRow(s, name, value)
	}
	s.EndTable()

	s.BeginTable("Hardware", nil)
	report.KeyRow(s, "CPUs", strconv.Itoa(info.CPUCount))
	report.KeyRow(s, "Memory Physical", space(info.MemoryFree, info.MemoryTotal))
	report.KeyRow(s, "System Disk Space", info.SystemDisk.Path, space(info.SystemDisk.Free, info.SystemDisk.Total))
	report.KeyRow(s, "Current Dir Disk Space", info.WorkDirDisk.Path, space(info.WorkDirDisk.Free, info.WorkDirDisk.Total))
	s.EndTable()

	s.BeginTable("Executable", nil)
	exeDir := ""
	if r.opts.Executable != "" {
		exeDir = filepath.Dir(r.opts.Executable)
	}
	report.KeyRow(s, "Exe Directory", orUnknown(exeDir))
	report.KeyRow(s, "Current Directory", orUnknown(r.opts.WorkDir))
	report.KeyRow(s, "App Version", orUnknown(r.opts.AppVersion))
	report.KeyRow(s, "Byte Format", fmt.Sprintf("%d-bit", strconv.IntSize))
	s.EndTable()

	s.EndSection()
}

// space renders free and total byte counts.
func space(free, total uint64) string {
	if total == 0 {
		return "Unknown"
	}
	return humanize.IBytes(free) + " free of " + humanize.IBytes(total)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
