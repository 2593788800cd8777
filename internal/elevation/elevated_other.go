//go:build !unix && !windows

package elevation

// IsElevated always reports false where privileges cannot be inspected.
func IsElevated() bool {
	return false
}
