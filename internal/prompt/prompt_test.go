package prompt

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "newline", input: "hunter2\n", want: "hunter2"},
		{name: "crlf", input: "hunter2\r\n", want: "hunter2"},
		{name: "no newline", input: "hunter2", want: "hunter2"},
		{name: "only first line", input: "first\nsecond\n", want: "first"},
		{name: "keeps spaces", input: " pass word \n", want: " pass word "},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstLine(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("firstLine() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func pipeWith(t *testing.T, content string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()
	return r
}

func TestTerminalSecretReader_Pipe(t *testing.T) {
	var out bytes.Buffer
	reader := NewTerminalSecretReader(pipeWith(t, "s3cret\n"), &out)

	got, err := reader.ReadSecret("[sudo] password: ")
	if err != nil {
		t.Fatalf("ReadSecret() error = %v", err)
	}
	if string(got) != "s3cret" {
		t.Errorf("got %q, want %q", got, "s3cret")
	}
	if out.Len() != 0 {
		t.Errorf("prompt written for piped input: %q", out.String())
	}
}

func TestTerminalSecretReader_Empty(t *testing.T) {
	reader := NewTerminalSecretReader(pipeWith(t, "\n"), &bytes.Buffer{})

	if _, err := reader.ReadSecret("[sudo] password: "); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("error = %v, want ErrEmptySecret", err)
	}
}

func TestLineConfirmer(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "empty uses default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty uses default no", input: "\n", want: false},
		{name: "whitespace uses default", input: "   \n", defaultYes: true, want: true},
		{name: "eof uses default", input: "", defaultYes: true, want: true},
		{name: "y", input: "y\n", want: true},
		{name: "YES", input: "YES\n", want: true},
		{name: "n", input: "n\n", defaultYes: true, want: false},
		{name: "NO", input: "NO\n", defaultYes: true, want: false},
		{name: "re-asks after junk", input: "maybe\ny\n", want: true},
		{name: "gives up", input: "1\n2\n3\n", wantErr: true},
		{name: "junk at eof", input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLineConfirmer(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := c.Confirm("Continue?", tt.defaultYes)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineConfirmer_Hint(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewLineConfirmer(strings.NewReader("\n\n"), out)

	_, _ = c.Confirm("Overwrite?", false)
	_, _ = c.Confirm("Keep?", true)

	if got, want := out.String(), "Overwrite? [y/N]: Keep? [Y/n]: "; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFakeSecrets(t *testing.T) {
	boom := errors.New("no tty")
	f := &FakeSecrets{Secrets: []string{"first", "second"}, Errors: []error{nil, boom}}

	if got, err := f.ReadSecret("p1"); err != nil || string(got) != "first" {
		t.Errorf("first = %q, %v", got, err)
	}
	if _, err := f.ReadSecret("p2"); !errors.Is(err, boom) {
		t.Errorf("second error = %v, want %v", err, boom)
	}
	if _, err := f.ReadSecret("p3"); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("exhausted error = %v", err)
	}
	if len(f.Prompts) != 3 || f.Prompts[2] != "p3" {
		t.Errorf("Prompts = %q", f.Prompts)
	}
}

func TestFakeConfirmer(t *testing.T) {
	boom := errors.New("boom")
	f := &FakeConfirmer{Answers: []bool{true, false}, Errors: []error{nil, nil, boom}}

	if got, _ := f.Confirm("one", false); !got {
		t.Error("first answer = false, want true")
	}
	if got, _ := f.Confirm("two", true); got {
		t.Error("second answer = true, want false")
	}
	if _, err := f.Confirm("three", true); !errors.Is(err, boom) {
		t.Errorf("third error = %v, want %v", err, boom)
	}
	if got, _ := f.Confirm("four", true); !got {
		t.Error("exhausted fake should return the default")
	}
	if len(f.Asked) != 4 || f.Asked[1].Text != "two" || !f.Asked[1].DefaultYes {
		t.Errorf("Asked = %+v", f.Asked)
	}
}
