// Package sysinfo collects read-only host facts: OS, CPU, memory and disks.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

// Section selects which part of Info to collect.
type Section string

const (
	SectionAll    Section = "all"
	SectionCPU    Section = "cpu"
	SectionMemory Section = "memory"
	SectionDisk   Section = "disk"
	SectionOS     Section = "os"
)

// ParseSection maps a name to a Section. Unknown names select everything.
func ParseSection(s string) Section {
	switch sec := Section(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionCPU, SectionMemory, SectionDisk, SectionOS:
		return sec
	default:
		return SectionAll
	}
}

// Info is a snapshot of host facts. Sections that were not requested are nil.
type Info struct {
	OS     *OSInfo     `json:"os,omitempty"`
	CPU    *CPUInfo    `json:"cpu,omitempty"`
	Memory *MemoryInfo `json:"memory,omitempty"`
	Disks  []DiskInfo  `json:"disks,omitempty"`
}

// OSInfo identifies the operating system.
type OSInfo struct {
	Name          string `json:"name"`
	KernelVersion string `json:"kernel_version"`
	OSVersion     string `json:"os_version"`
	HostName      string `json:"host_name"`
	UptimeSeconds uint64 `json:"uptime_seconds"`
}

// CPUInfo describes processors. Usage is per logical CPU in percent and is
// empty where the platform does not expose counters.
type CPUInfo struct {
	Count int       `json:"cpu_count"`
	Brand string    `json:"cpu_brand"`
	Usage []float64 `json:"cpu_usage"`
}

// MemoryInfo reports physical memory and swap.
type MemoryInfo struct {
	TotalBytes     uint64 `json:"total_memory_bytes"`
	UsedBytes      uint64 `json:"used_memory_bytes"`
	AvailableBytes uint64 `json:"available_memory_bytes"`
	TotalSwapBytes uint64 `json:"total_swap_bytes"`
	UsedSwapBytes  uint64 `json:"used_swap_bytes"`
	TotalGB        string `json:"total_memory_gb"`
	UsedGB         string `json:"used_memory_gb"`
	AvailableGB    string `json:"available_memory_gb"`
}

// DiskInfo describes one mounted filesystem.
type DiskInfo struct {
	Name           string `json:"name"`
	MountPoint     string `json:"mount_point"`
	FileSystem     string `json:"file_system"`
	TotalBytes     uint64 `json:"total_space_bytes"`
	AvailableBytes uint64 `json:"available_space_bytes"`
	TotalGB        string `json:"total_space_gb"`
	AvailableGB    string `json:"available_space_gb"`
}

// cpuSampleInterval is how long usage counters are sampled for.
const cpuSampleInterval = 200 * time.Millisecond

// Collect gathers the requested section. Facts the platform cannot supply
// are left at zero values rather than failing the whole call.
func Collect(ctx context.Context, section Section) (*Info, error) {
	info := &Info{}
	all := section == SectionAll

	if all || section == SectionOS {
		o := collectOS()
		info.OS = &o
	}
	if all || section == SectionCPU {
		c, err := collectCPU(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect cpu: %w", err)
		}
		info.CPU = &c
	}
	if all || section == SectionMemory {
		m := collectMemory()
		info.Memory = &m
	}
	if all || section == SectionDisk {
		info.Disks = collectDisks()
	}
	return info, nil
}

// MemoryPercent returns used memory as a percentage of total.
func (m *MemoryInfo) MemoryPercent() float64 {
	if m.TotalBytes == 0 {
		return 0
	}
	return float64(m.UsedBytes) / float64(m.TotalBytes) * 100
}

// AverageUsage returns the mean usage across CPUs.
func (c *CPUInfo) AverageUsage() float64 {
	if len(c.Usage) == 0 {
		return 0
	}
	var sum float64
	for _, u := range c.Usage {
		sum += u
	}
	return sum / float64(len(c.Usage))
}

func gb(bytes uint64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/(1<<30))
}

func newMemoryInfo(total, available, swapTotal, swapFree uint64) MemoryInfo {
	used := total - min(available, total)
	return MemoryInfo{
		TotalBytes:     total,
		UsedBytes:      used,
		AvailableBytes: available,
		TotalSwapBytes: swapTotal,
		UsedSwapBytes:  swapTotal - min(swapFree, swapTotal),
		TotalGB:        gb(total),
		UsedGB:         gb(used),
		AvailableGB:    gb(available),
	}
}

func newDiskInfo(name, mount, fs string, total, available uint64) DiskInfo {
	return DiskInfo{
		Name:           name,
		MountPoint:     mount,
		FileSystem:     fs,
		TotalBytes:     total,
		AvailableBytes: available,
		TotalGB:        gb(total),
		AvailableGB:    gb(available),
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "Unknown"
	}
	return h
}

func osName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	case "darwin":
		return "Darwin"
	default:
		return runtime.GOOS
	}
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
