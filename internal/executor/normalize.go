package executor

import "strings"

// Normalize converts raw into a Result. Output that is not valid UTF-8 has
// each invalid sequence replaced with U+FFFD.
func Normalize(display, method string, raw Raw) Result {
	return Result{
		Command:         display,
		ElevationMethod: method,
		ExitCode:        raw.ExitCode,
		Stdout:          decode(raw.Stdout),
		Stderr:          decode(raw.Stderr),
		Success:         raw.ExitCode == 0,
		Duration:        raw.Duration,
	}
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
