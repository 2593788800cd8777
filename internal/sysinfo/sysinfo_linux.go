//go:build linux

package sysinfo

import (
	"bytes"
	"context"
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

func collectOS() OSInfo {
	info := OSInfo{Name: osName(), HostName: hostname(), KernelVersion: "Unknown", OSVersion: "Unknown"}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		info.KernelVersion = unix.ByteSliceToString(uts.Release[:])
	}
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		if v := parseOSRelease(bytes.NewReader(data)); v != "" {
			info.OSVersion = v
		}
	}
	if data, err := os.ReadFile("/proc/uptime"); err == nil {
		info.UptimeSeconds = parseUptime(bytes.NewReader(data))
	}
	return info
}

func collectCPU(ctx context.Context) (CPUInfo, error) {
	info := CPUInfo{Count: runtime.NumCPU(), Brand: "Unknown"}
	if data, err := os.ReadFile("/proc/cpuinfo"); err == nil {
		if b := parseCPUBrand(bytes.NewReader(data)); b != "" {
			info.Brand = b
		}
	}

	before, err := readCPUTimes()
	if err != nil {
		return info, nil
	}
	if err := sleepCtx(ctx, cpuSampleInterval); err != nil {
		return info, err
	}
	after, err := readCPUTimes()
	if err != nil {
		return info, nil
	}
	info.Usage = cpuUsage(before, after)
	return info, nil
}

func readCPUTimes() ([]cpuTimes, error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return nil, err
	}
	return parseCPUTimes(bytes.NewReader(data)), nil
}

func collectMemory() MemoryInfo {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return newMemoryInfo(0, 0, 0, 0)
	}
	m := parseMeminfo(bytes.NewReader(data))
	available, ok := m["MemAvailable"]
	if !ok {
		available = m["MemFree"] + m["Buffers"] + m["Cached"]
	}
	return newMemoryInfo(m["MemTotal"], available, m["SwapTotal"], m["SwapFree"])
}

func collectDisks() []DiskInfo {
	data, err := os.ReadFile("/proc/mounts")
	if err != nil {
		return nil
	}
	var out []DiskInfo
	for _, m := range parseMounts(bytes.NewReader(data)) {
		var st unix.Statfs_t
		if err := unix.Statfs(m.point, &st); err != nil {
			continue
		}
		bsize := uint64(st.Bsize)
		out = append(out, newDiskInfo(m.device, m.point, m.fstype, st.Blocks*bsize, st.Bavail*bsize))
	}
	return out
}
