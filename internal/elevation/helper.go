package elevation

// LookPathFunc resolves a program name to an executable path.
type LookPathFunc func(file string) (string, error)

// helper is an external elevation binary that must be present on PATH.
type helper struct {
	name      string
	mechanism string
	hint      string
	lookPath  LookPathFunc
	path      string
}

func (h *helper) probe() error {
	path, err := h.lookPath(h.name)
	if err != nil {
		return &UnavailableError{Mechanism: h.mechanism, Helper: h.name, Hint: h.hint, Err: err}
	}
	h.path = path
	return nil
}

// resolved returns the probed path, or the bare name before probing.
func (h *helper) resolved() string {
	if h.path != "" {
		return h.path
	}
	return h.name
}
