// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	gohost "github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/vkvia/vkvia/pkg/platform"
)

type (
	// osFacts are the raw inputs for naming the operating system.
	osFacts struct {
		GOOS       string
		PrettyName string
		Platform   string
		Version    string
		Build      int
	}

	osLabel struct {
		matches func(osFacts) bool
		label   func(osFacts) string
	}
)

// osLabels is ordered; the first match names the system.
var osLabels = []osLabel{
	{
		matches: func(f osFacts) bool { return f.GOOS == platform.Linux && f.PrettyName != "" },
		label:   func(f osFacts) string { return f.PrettyName },
	},
	{
		matches: func(f osFacts) bool {
			return f.GOOS == platform.Windows && strings.HasPrefix(f.Version, "10.") && f.Build >= 22000
		},
		label: func(osFacts) string { return "Windows 11" },
	},
	{
		matches: func(f osFacts) bool { return f.GOOS == platform.Windows && strings.HasPrefix(f.Version, "10.") },
		label:   func(osFacts) string { return "Windows 10" },
	},
	{
		matches: func(f osFacts) bool { return f.GOOS == platform.Windows && strings.HasPrefix(f.Version, "6.3") },
		label:   func(osFacts) string { return "Windows 8.1" },
	},
	{
		matches: func(f osFacts) bool { return f.GOOS == platform.Windows && strings.HasPrefix(f.Version, "6.2") },
		label:   func(osFacts) string { return "Windows 8" },
	},
	{
		matches: func(f osFacts) bool { return f.GOOS == platform.Windows && strings.HasPrefix(f.Version, "6.1") },
		label:   func(osFacts) string { return "Windows 7" },
	},
	{
		matches: func(f osFacts) bool { return f.GOOS == platform.Darwin },
		label:   func(f osFacts) string { return strings.TrimSpace("macOS " + f.Version) },
	},
}

func labelOS(f osFacts) string {
	for _, l := range osLabels {
		if l.matches(f) {
			return l.label(f)
		}
	}
	if f.Platform == "" {
		return f.GOOS
	}
	return strings.TrimSpace(f.Platform + " " + f.Version)
}

// SystemInfo gathers the host summary. Fields that cannot be read are left
// empty and reported through the joined error.
func (h *Host) SystemInfo(ctx context.Context) (SystemInfo, error) {
	var (
		info SystemInfo
		errs []error
	)

	facts := osFacts{GOOS: h.goos}
	if hi, err := gohost.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.KernelVersion = hi.KernelVersion
		info.Architecture = hi.KernelArch
		info.OSVersion = hi.PlatformVersion
		facts.Platform = hi.Platform
		facts.Version = hi.PlatformVersion
	} else {
		errs = append(errs, fmt.Errorf("host info: %w", err))
	}

	info.KernelBuild = kernelBuild()
	if n, err := strconv.Atoi(lastVersionField(info.KernelBuild)); err == nil {
		facts.Build = n
	}
	if h.goos == platform.Linux {
		facts.PrettyName = h.distribution()
	}
	info.OSName = labelOS(facts)

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.CPUCount = n
	} else {
		errs = append(errs, fmt.Errorf("cpu count: %w", err))
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryFree = vm.Available
	} else {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	}

	info.SystemDisk = h.diskUsage(ctx, h.systemRoot(), &errs)
	if wd, err := os.Getwd(); err == nil {
		info.WorkDirDisk = h.diskUsage(ctx, wd, &errs)
	}

	return info, errors.Join(errs...)
}

func (h *Host) systemRoot() string {
	if h.goos == platform.Windows {
		if drive, ok := os.LookupEnv("SystemDrive"); ok {
			return drive + `\`
		}
		return `C:\`
	}
	return "/"
}

func (h *Host) diskUsage(ctx context.Context, path string, errs *[]error) DiskUsage {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("disk usage %s: %w", path, err))
		return DiskUsage{Path: path}
	}
	return DiskUsage{Path: path, Total: u.Total, Free: u.Free}
}

func lastVersionField(s string) string {
	if i := strings.LastIndexAny(s, ". "); i >= 0 {
		return s[i+1:]
	}
	return s
}
