package policy

import "slices"

// AllowList is the ordered set of permitted program names. It is built once
// and never modified.
type AllowList struct {
	entries []string
	set     map[string]struct{}
}

// NewAllowList builds an AllowList from entries, dropping duplicates while
// keeping first-seen order.
func NewAllowList(entries []string) *AllowList {
	a := &AllowList{set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if _, dup := a.set[e]; dup || e == "" {
			continue
		}
		a.set[e] = struct{}{}
		a.entries = append(a.entries, e)
	}
	return a
}

// Entries returns a copy of the allow-list in order.
func (a *AllowList) Entries() []string {
	return slices.Clone(a.entries)
}

// Allows reports whether command is permitted. A command matches when it
// equals an entry exactly, or when its final path segment does, so both
// "ls" and "/usr/bin/ls" match an "ls" entry. Matching is case-sensitive.
// A nil AllowList allows nothing.
func (a *AllowList) Allows(command string) bool {
	if a == nil || command == "" {
		return false
	}
	if _, ok := a.set[command]; ok {
		return true
	}
	name := ProgramName(command)
	if name == "" {
		return false
	}
	_, ok := a.set[name]
	return ok
}
