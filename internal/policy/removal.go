package policy

import (
	"path"
	"strings"
)

// removalPrograms are the utilities whose arguments name files to destroy.
var removalPrograms = map[string]bool{
	"rm":     true,
	"rmdir":  true,
	"unlink": true,
	"shred":  true,
}

// findActions are find primaries that delete files, write files or run
// other programs.
var findActions = map[string]bool{
	"-delete":  true,
	"-exec":    true,
	"-execdir": true,
	"-ok":      true,
	"-okdir":   true,
	"-fls":     true,
	"-fprint":  true,
	"-fprint0": true,
	"-fprintf": true,
}

// findAction returns the first refused primary in args, or "".
func findAction(args []string) string {
	for _, arg := range args {
		if findActions[arg] {
			return arg
		}
	}
	return ""
}

// safePrefixes are system directories whose contents may be removed.
var safePrefixes = []string{
	"/tmp/",
	"/var/tmp/",
	"/var/log/",
}

// safeSegments are per-user directories, matched anywhere in the path.
var safeSegments = []string{
	"/.cache/",
	"/.local/share/Trash/",
}

var safeRootNames = []string{"/tmp", "/var/tmp", "/var/log", "~/.cache", "~/.local/share/Trash"}

// checkRemovalTargets reports whether every target in args is safe. Tokens
// starting with "-" are flags, except after a "--" terminator where every
// token is a target. On failure it returns the first unsafe target, or ""
// if there were no targets at all.
func checkRemovalTargets(args []string) (string, bool) {
	targets := 0
	endOfFlags := false
	for _, arg := range args {
		if !endOfFlags {
			if arg == "--" {
				endOfFlags = true
				continue
			}
			if strings.HasPrefix(arg, "-") {
				continue
			}
		}
		targets++
		if !isSafeTarget(arg) {
			return arg, false
		}
	}
	return "", targets > 0
}

// isSafeTarget reports whether target may be removed: it must have no ".."
// segment and must lie strictly below one of the safe roots. The check is
// lexical; symlinks are not resolved. Redundant slashes and "." segments
// are cleaned away before the root comparison, so "/tmp//" and "/tmp/."
// name the root itself and are refused.
func isSafeTarget(target string) bool {
	if hasParentSegment(target) {
		return false
	}
	clean := path.Clean(target)
	for _, p := range safePrefixes {
		if strings.HasPrefix(clean, p) && len(clean) > len(p) {
			return true
		}
	}
	for _, s := range safeSegments {
		if i := strings.Index(clean, s); i >= 0 && len(clean) > i+len(s) {
			return true
		}
	}
	return false
}

func hasParentSegment(target string) bool {
	for _, seg := range strings.FieldsFunc(target, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}
