package elevation

// sessionEnv describes the graphical session the PolicyKit agent needs to
// show its dialog.
var sessionEnv = []string{
	"DISPLAY",
	"XAUTHORITY",
	"WAYLAND_DISPLAY",
	"DBUS_SESSION_BUS_ADDRESS",
	"XDG_RUNTIME_DIR",
}

// Polkit runs the command through pkexec, which asks the desktop's
// authentication agent for consent.
type Polkit struct {
	helper helper
	getenv func(string) (string, bool)
}

// NewPolkit returns a pkexec mechanism. getenv is usually os.LookupEnv.
func NewPolkit(lookPath LookPathFunc, getenv func(string) (string, bool)) *Polkit {
	return &Polkit{
		helper: helper{
			name:      "pkexec",
			mechanism: LabelPolkit,
			hint:      "install the 'polkit' package and run from a graphical session with D-Bus",
			lookPath:  lookPath,
		},
		getenv: getenv,
	}
}

func (p *Polkit) Label() string { return LabelPolkit }

func (p *Polkit) Probe() error { return p.helper.probe() }

func (p *Polkit) Prepare(program string, args []string) (Invocation, error) {
	var env []string
	for _, key := range sessionEnv {
		if v, ok := p.getenv(key); ok {
			env = append(env, key+"="+v)
		}
	}
	return Invocation{
		Path:    p.helper.resolved(),
		Args:    append([]string{program}, args...),
		Env:     env,
		Display: displayLine([]string{"pkexec", program}, args),
	}, nil
}
