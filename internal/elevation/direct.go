package elevation

// Direct runs the command with the caller's own privileges.
type Direct struct{}

func (Direct) Label() string { return LabelNone }

func (Direct) Probe() error { return nil }

func (Direct) Prepare(program string, args []string) (Invocation, error) {
	return Invocation{
		Path:    program,
		Args:    args,
		Display: displayLine([]string{program}, args),
	}, nil
}
