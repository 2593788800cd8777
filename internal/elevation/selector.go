package elevation

import (
	"os"
	"os/exec"
)

// Flags are the elevation options of a request.
type Flags struct {
	// Interactive asks for a consent dialog (pkexec or UAC). It wins over
	// Password.
	Interactive bool
	// Password asks for sudo. Secret, if set, is fed to sudo on stdin;
	// otherwise passwordless sudo is assumed.
	Password bool
	Secret   []byte
}

// Selector resolves Flags to a Mechanism for one platform.
type Selector struct {
	Platform        Platform
	AlreadyElevated func() bool
	LookPath        LookPathFunc
	Getenv          func(string) (string, bool)
}

// NewSelector returns a Selector for the running host.
func NewSelector() *Selector {
	return &Selector{
		Platform:        CurrentPlatform(),
		AlreadyElevated: IsElevated,
		LookPath:        exec.LookPath,
		Getenv:          os.LookupEnv,
	}
}

// Select picks the mechanism for flags and probes it. A process that is
// already elevated always gets Direct. Select takes ownership of
// flags.Secret: it is either handed to the sudo mechanism or zeroed.
func (s *Selector) Select(flags Flags) (Mechanism, error) {
	var m Mechanism
	switch {
	case s.AlreadyElevated != nil && s.AlreadyElevated():
		m = Direct{}
	case flags.Interactive && s.Platform == Windows:
		m = NewUAC(s.LookPath, s.AlreadyElevated)
	case flags.Interactive:
		m = NewPolkit(s.LookPath, s.Getenv)
	case flags.Password && s.Platform == Windows:
		clear(flags.Secret)
		return nil, &UnavailableError{
			Mechanism: LabelSudo,
			Helper:    "sudo",
			Hint:      "use interactive elevation (UAC) on Windows",
		}
	case flags.Password:
		sudo := NewSudo(s.LookPath, flags.Secret)
		if err := sudo.Probe(); err != nil {
			sudo.Wipe()
			return nil, err
		}
		return sudo, nil
	default:
		m = Direct{}
	}

	clear(flags.Secret)
	if err := m.Probe(); err != nil {
		return nil, err
	}
	return m, nil
}
