package elevation

// Sudo runs the command through sudo. With a secret, sudo reads it from
// stdin (-S) with an empty prompt; without one, sudo must not prompt (-n),
// so a host without passwordless sudo fails fast instead of hanging.
type Sudo struct {
	helper helper
	secret []byte
}

// NewSudo returns a sudo mechanism. It takes ownership of secret, which may
// be nil.
func NewSudo(lookPath LookPathFunc, secret []byte) *Sudo {
	return &Sudo{
		helper: helper{
			name:      "sudo",
			mechanism: LabelSudo,
			hint:      "install the 'sudo' package and grant this user sudo rights",
			lookPath:  lookPath,
		},
		secret: secret,
	}
}

func (s *Sudo) Label() string { return LabelSudo }

func (s *Sudo) Probe() error { return s.helper.probe() }

func (s *Sudo) Prepare(program string, args []string) (Invocation, error) {
	inv := Invocation{
		Path:    s.helper.resolved(),
		Display: displayLine([]string{"sudo", program}, args),
	}
	if s.secret == nil {
		inv.Args = append([]string{"-n", "--", program}, args...)
		return inv, nil
	}

	inv.Args = append([]string{"-S", "-p", "", "--", program}, args...)
	inv.Stdin = make([]byte, len(s.secret)+1)
	copy(inv.Stdin, s.secret)
	inv.Stdin[len(s.secret)] = '\n'
	s.Wipe()
	return inv, nil
}

// Wipe zeroes and drops the held secret.
func (s *Sudo) Wipe() {
	clear(s.secret)
	s.secret = nil
}
