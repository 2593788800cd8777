// Package prompt asks the operator for an elevation password or a yes/no
// confirmation. Fakes for both live here so command tests can script them.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptySecret is returned when the operator enters nothing.
var ErrEmptySecret = errors.New("empty password")

// maxAttempts bounds how often Confirm re-asks after unrecognized input.
const maxAttempts = 3

// SecretReader reads an elevation password.
type SecretReader interface {
	// ReadSecret shows prompt and returns what was typed. The caller owns the
	// buffer and must clear it after use.
	ReadSecret(prompt string) ([]byte, error)
}

// TerminalSecretReader reads with echo off when In is a terminal. Otherwise
// it takes the first line of In, so a password can be piped in from a
// secret store.
type TerminalSecretReader struct {
	In  *os.File
	Out io.Writer
}

func NewTerminalSecretReader(in *os.File, out io.Writer) *TerminalSecretReader {
	return &TerminalSecretReader{In: in, Out: out}
}

func (r *TerminalSecretReader) ReadSecret(prompt string) ([]byte, error) {
	var (
		secret []byte
		err    error
	)
	if fd := int(r.In.Fd()); term.IsTerminal(fd) {
		_, _ = fmt.Fprint(r.Out, prompt)
		secret, err = term.ReadPassword(fd)
		_, _ = fmt.Fprintln(r.Out)
	} else {
		secret, err = firstLine(r.In)
	}
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return secret, nil
}

// firstLine returns in up to the first newline, without the line ending.
// A read error clears whatever was read.
func firstLine(in io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(in).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		clear(line)
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// LineConfirmer reads answers line by line from In. Unrecognized answers
// are re-asked a few times before giving up.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints question with a [Y/n] or [y/N] hint. An empty answer, or
// end of input, picks defaultYes.
func (c *LineConfirmer) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	for range maxAttempts {
		_, _ = fmt.Fprintf(c.out, "%s %s: ", question, hint)
		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch answer := strings.ToLower(strings.TrimSpace(line)); answer {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if errors.Is(err, io.EOF) {
				return false, fmt.Errorf("unrecognized answer %q", answer)
			}
			_, _ = fmt.Fprintln(c.out, "Please answer y or n.")
		}
	}
	return false, fmt.Errorf("no valid answer after %d attempts", maxAttempts)
}

// FakeSecrets hands out scripted passwords in order. An entry in Errors
// takes precedence over the secret at the same position.
type FakeSecrets struct {
	Secrets []string
	Errors  []error
	Prompts []string
}

func NewFakeSecrets(secrets ...string) *FakeSecrets {
	return &FakeSecrets{Secrets: secrets}
}

func (f *FakeSecrets) ReadSecret(prompt string) ([]byte, error) {
	i := len(f.Prompts)
	f.Prompts = append(f.Prompts, prompt)
	if i < len(f.Errors) && f.Errors[i] != nil {
		return nil, f.Errors[i]
	}
	if i < len(f.Secrets) {
		return []byte(f.Secrets[i]), nil
	}
	return nil, ErrEmptySecret
}

// FakeConfirmer answers with scripted values, then with the default.
type FakeConfirmer struct {
	Answers []bool
	Errors  []error
	Asked   []Question
}

// Question is one recorded Confirm call.
type Question struct {
	Text       string
	DefaultYes bool
}

func NewFakeConfirmer(answers ...bool) *FakeConfirmer {
	return &FakeConfirmer{Answers: answers}
}

func (f *FakeConfirmer) Confirm(question string, defaultYes bool) (bool, error) {
	i := len(f.Asked)
	f.Asked = append(f.Asked, Question{Text: question, DefaultYes: defaultYes})
	if i < len(f.Errors) && f.Errors[i] != nil {
		return false, f.Errors[i]
	}
	if i < len(f.Answers) {
		return f.Answers[i], nil
	}
	return defaultYes, nil
}
