package sysinfo

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// cpuTimes holds cumulative jiffies for one CPU from /proc/stat.
type cpuTimes struct {
	idle  uint64
	total uint64
}

// parseCPUTimes reads the per-CPU lines ("cpu0 ...", "cpu1 ...") of
// /proc/stat. The aggregate "cpu" line is skipped.
func parseCPUTimes(r io.Reader) []cpuTimes {
	var out []cpuTimes
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 5 || !strings.HasPrefix(fields[0], "cpu") || fields[0] == "cpu" {
			continue
		}
		var t cpuTimes
		for i, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				break
			}
			t.total += v
			// idle and iowait
			if i == 3 || i == 4 {
				t.idle += v
			}
		}
		out = append(out, t)
	}
	return out
}

// cpuUsage computes per-CPU busy percentages between two samples.
func cpuUsage(before, after []cpuTimes) []float64 {
	n := min(len(before), len(after))
	usage := make([]float64, n)
	for i := range n {
		total := after[i].total - before[i].total
		idle := after[i].idle - before[i].idle
		if total == 0 || after[i].total < before[i].total {
			continue
		}
		usage[i] = (1 - float64(idle)/float64(total)) * 100
	}
	return usage
}

// parseCPUBrand returns the first "model name" from /proc/cpuinfo.
func parseCPUBrand(r io.Reader) string {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if ok && strings.TrimSpace(key) == "model name" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// parseMeminfo returns /proc/meminfo values converted to bytes.
func parseMeminfo(r io.Reader) map[string]uint64 {
	out := make(map[string]uint64)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if len(fields) > 1 && fields[1] == "kB" {
			v *= 1024
		}
		out[key] = v
	}
	return out
}

// mount is one line of /proc/mounts.
type mount struct {
	device string
	point  string
	fstype string
}

// parseMounts returns block-device mounts, first mount per device only.
func parseMounts(r io.Reader) []mount {
	var out []mount
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 || !strings.HasPrefix(fields[0], "/dev/") || seen[fields[0]] {
			continue
		}
		seen[fields[0]] = true
		out = append(out, mount{
			device: fields[0],
			point:  unescapeMount(fields[1]),
			fstype: fields[2],
		})
	}
	return out
}

// unescapeMount decodes the octal escapes /proc/mounts uses for spaces
// and other special characters.
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// parseOSRelease returns PRETTY_NAME from /etc/os-release.
func parseOSRelease(r io.Reader) string {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if v, ok := strings.CutPrefix(sc.Text(), "PRETTY_NAME="); ok {
			return strings.Trim(v, `"'`)
		}
	}
	return ""
}

// parseUptime returns whole seconds from /proc/uptime.
func parseUptime(r io.Reader) uint64 {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return uint64(f)
}
