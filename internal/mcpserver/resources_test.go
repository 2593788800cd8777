package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func readRequest(uri string) mcp.ReadResourceRequest {
	var req mcp.ReadResourceRequest
	req.Params.URI = uri
	return req
}

func contentsText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type = %T, want mcp.TextResourceContents", contents[0])
	}
	if tc.MIMEType != "text/plain" {
		t.Errorf("MIMEType = %q, want text/plain", tc.MIMEType)
	}
	return tc.Text
}

func TestCommandResources(t *testing.T) {
	tests := []struct {
		uri      string
		wantPath string
		wantArgs string
	}{
		{uriSystemLogs, "journalctl", "-n 100 --no-pager"},
		{uriAuthLogs, "journalctl", "-u ssh -n 50 --no-pager"},
		{uriNetworkConfig, "ip", "addr show"},
		{uriTopProcesses, "ps", "aux --sort=-%mem"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			runner := &fakeRunner{stdout: "line\n"}
			s := New(Options{Exec: &fakeExec{}, Runner: runner, Collect: fakeCollect})

			var res commandResource
			for _, r := range commandResources {
				if r.uri == tt.uri {
					res = r
				}
			}
			contents, err := s.commandResourceHandler(res)(context.Background(), readRequest(tt.uri))
			if err != nil {
				t.Fatalf("read %s: %v", tt.uri, err)
			}
			if got := contentsText(t, contents); got != "line\n" {
				t.Errorf("text = %q, want %q", got, "line\n")
			}

			if len(runner.invs) != 1 {
				t.Fatalf("runner called %d times, want 1", len(runner.invs))
			}
			inv := runner.invs[0]
			if inv.Path != tt.wantPath || strings.Join(inv.Args, " ") != tt.wantArgs {
				t.Errorf("invocation = %s %v, want %s %s", inv.Path, inv.Args, tt.wantPath, tt.wantArgs)
			}
			if inv.Stdin != nil || len(inv.Env) != 0 {
				t.Error("resource command should run unprivileged with no stdin or extra env")
			}
		})
	}
}

func TestTopProcessesTruncated(t *testing.T) {
	var lines []string
	lines = append(lines, "USER PID %CPU %MEM")
	for i := range 30 {
		lines = append(lines, fmt.Sprintf("root %d 0.0 0.1", i))
	}
	runner := &fakeRunner{stdout: strings.Join(lines, "\n")}
	s := New(Options{Exec: &fakeExec{}, Runner: runner, Collect: fakeCollect})

	text, err := s.runResource(commandResources[3])
	if err != nil {
		t.Fatalf("runResource() error = %v", err)
	}
	got := strings.Split(text, "\n")
	if len(got) != topProcessesLines {
		t.Fatalf("got %d lines, want %d (header + 10)", len(got), topProcessesLines)
	}
	if got[0] != lines[0] {
		t.Errorf("first line = %q, want header", got[0])
	}
}

func TestCommandResourceSpawnFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exec: \"journalctl\": not found")}
	s := New(Options{Exec: &fakeExec{}, Runner: runner, Collect: fakeCollect})

	_, err := s.commandResourceHandler(commandResources[0])(context.Background(), readRequest(uriSystemLogs))
	if err == nil || !strings.Contains(err.Error(), uriSystemLogs) {
		t.Errorf("error = %v, want one naming %s", err, uriSystemLogs)
	}
}

func TestSystemStatus(t *testing.T) {
	s := New(Options{Exec: &fakeExec{}, Runner: &fakeRunner{}, Collect: fakeCollect})

	contents, err := s.handleSystemStatus(context.Background(), readRequest(uriSystemStatus))
	if err != nil {
		t.Fatalf("handleSystemStatus() error = %v", err)
	}
	text := contentsText(t, contents)
	for _, want := range []string{
		"=== System Status ===",
		"CPU Usage: 20.0%",
		"Memory: 25.0% (1024 MB / 4096 MB)",
		"Uptime: 3600 seconds",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("status missing %q:\n%s", want, text)
		}
	}
}

func TestFirstLines(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"a\nb\nc", 2, "a\nb"},
		{"a\nb", 2, "a\nb"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := firstLines(tt.in, tt.n); got != tt.want {
			t.Errorf("firstLines(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
