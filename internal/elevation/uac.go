package elevation

import "strings"

// UAC runs the command through PowerShell's Start-Process -Verb RunAs,
// which raises the User Account Control consent dialog and waits for the
// elevated child. Start-Process takes a composed string, so every value is
// single-quoted with embedded quotes doubled.
type UAC struct {
	helper   helper
	elevated func() bool
}

// NewUAC returns a UAC mechanism. If elevated reports true at Prepare time
// the command is run directly.
func NewUAC(lookPath LookPathFunc, elevated func() bool) *UAC {
	return &UAC{
		helper: helper{
			name:      "powershell.exe",
			mechanism: LabelUAC,
			hint:      "Windows PowerShell is required to request UAC elevation",
			lookPath:  lookPath,
		},
		elevated: elevated,
	}
}

func (u *UAC) Label() string { return LabelUAC }

func (u *UAC) Probe() error { return u.helper.probe() }

func (u *UAC) Prepare(program string, args []string) (Invocation, error) {
	if u.elevated != nil && u.elevated() {
		inv, err := Direct{}.Prepare(program, args)
		inv.HideWindow = true
		return inv, err
	}
	return Invocation{
		Path:       u.helper.resolved(),
		Args:       []string{"-NoProfile", "-NonInteractive", "-Command", RunAsScript(program, args)},
		HideWindow: true,
		Display:    displayLine([]string{"powershell.exe", program}, args),
	}, nil
}

// RunAsScript builds the PowerShell command that launches program elevated,
// waits for it and exits with its exit code.
func RunAsScript(program string, args []string) string {
	var b strings.Builder
	b.WriteString("$p = Start-Process -FilePath ")
	b.WriteString(psQuote(program))
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			quoted[i] = psQuote(a)
		}
		b.WriteString(" -ArgumentList ")
		b.WriteString(strings.Join(quoted, ","))
	}
	b.WriteString(" -Verb RunAs -Wait -PassThru -WindowStyle Hidden; exit $p.ExitCode")
	return b.String()
}

// psQuote single-quotes s for PowerShell, doubling embedded single quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
