//go:build windows

package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

func collectOS() OSInfo {
	info := OSInfo{Name: osName(), HostName: hostname(), KernelVersion: "Unknown", OSVersion: "Unknown"}
	if v := windows.RtlGetVersion(); v != nil {
		info.KernelVersion = fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
		info.OSVersion = fmt.Sprintf("%d", v.MajorVersion)
	}
	info.UptimeSeconds = uint64(windows.DurationSinceBoot().Seconds())
	return info
}

func collectCPU(context.Context) (CPUInfo, error) {
	brand := os.Getenv("PROCESSOR_IDENTIFIER")
	if brand == "" {
		brand = "Unknown"
	}
	return CPUInfo{Count: runtime.NumCPU(), Brand: brand}, nil
}

func collectMemory() MemoryInfo {
	var st windows.MemoryStatusEx
	st.Length = uint32(unsafe.Sizeof(st))
	if err := windows.GlobalMemoryStatusEx(&st); err != nil {
		return newMemoryInfo(0, 0, 0, 0)
	}
	swapTotal := st.TotalPageFile - min(st.TotalPhys, st.TotalPageFile)
	swapFree := st.AvailPageFile - min(st.AvailPhys, st.AvailPageFile)
	return newMemoryInfo(st.TotalPhys, st.AvailPhys, swapTotal, swapFree)
}

func collectDisks() []DiskInfo {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil
	}
	var out []DiskInfo
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := string(rune('A'+i)) + `:\`
		p, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		if windows.GetDriveType(p) != windows.DRIVE_FIXED {
			continue
		}
		var free, total, totalFree uint64
		if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
			continue
		}
		out = append(out, newDiskInfo(root, root, fsName(p), total, free))
	}
	return out
}

func fsName(root *uint16) string {
	buf := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumeInformation(root, nil, 0, nil, nil, nil, &buf[0], uint32(len(buf))); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf)
}
