//go:build !linux && !windows

package sysinfo

import (
	"context"
	"runtime"
)

func collectOS() OSInfo {
	return OSInfo{Name: osName(), HostName: hostname(), KernelVersion: "Unknown", OSVersion: "Unknown"}
}

func collectCPU(context.Context) (CPUInfo, error) {
	return CPUInfo{Count: runtime.NumCPU(), Brand: "Unknown"}, nil
}

func collectMemory() MemoryInfo {
	return newMemoryInfo(0, 0, 0, 0)
}

func collectDisks() []DiskInfo {
	return nil
}
