package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/sysinfo"
)

const (
	uriSystemLogs     = "linux://logs/system"
	uriAuthLogs       = "linux://logs/auth"
	uriNetworkConfig  = "linux://config/network"
	uriTopProcesses   = "linux://processes/top"
	uriSystemStatus   = "linux://system/status"
	topProcessesLines = 11
)

// commandResource is a resource backed by a fixed read-only command.
type commandResource struct {
	uri         string
	name        string
	description string
	program     string
	args        []string
	// maxLines truncates the output when positive.
	maxLines int
}

var commandResources = []commandResource{
	{
		uri:         uriSystemLogs,
		name:        "System logs",
		description: "Last 100 lines of the system journal",
		program:     "journalctl",
		args:        []string{"-n", "100", "--no-pager"},
	},
	{
		uri:         uriAuthLogs,
		name:        "Authentication logs",
		description: "Last 50 lines of the SSH unit journal",
		program:     "journalctl",
		args:        []string{"-u", "ssh", "-n", "50", "--no-pager"},
	},
	{
		uri:         uriNetworkConfig,
		name:        "Network configuration",
		description: "Network interfaces and addresses (ip addr show)",
		program:     "ip",
		args:        []string{"addr", "show"},
	},
	{
		uri:         uriTopProcesses,
		name:        "Top processes",
		description: "The 10 processes using the most memory",
		program:     "ps",
		args:        []string{"aux", "--sort=-%mem"},
		maxLines:    topProcessesLines,
	},
}

func (s *Server) registerResources() {
	for _, r := range commandResources {
		res := mcp.NewResource(r.uri, r.name,
			mcp.WithResourceDescription(r.description),
			mcp.WithMIMEType("text/plain"),
		)
		s.mcpServer.AddResource(res, s.commandResourceHandler(r))
	}

	status := mcp.NewResource(uriSystemStatus, "System status",
		mcp.WithResourceDescription("CPU usage, memory usage and uptime"),
		mcp.WithMIMEType("text/plain"),
	)
	s.mcpServer.AddResource(status, s.handleSystemStatus)
}

// commandResourceHandler runs r unprivileged. These commands are fixed by
// the server, so they skip the allow-list and the audit log.
func (s *Server) commandResourceHandler(r commandResource) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.runResource(r)
		if err != nil {
			return nil, fmt.Errorf("read resource %s: %w", r.uri, err)
		}
		return textContents(req.Params.URI, text), nil
	}
}

func (s *Server) runResource(r commandResource) (string, error) {
	inv, err := elevation.Direct{}.Prepare(r.program, r.args)
	if err != nil {
		return "", err
	}
	raw, err := s.runner.Run(inv)
	if err != nil {
		return "", err
	}
	text := strings.ToValidUTF8(string(raw.Stdout), "\uFFFD")
	if r.maxLines > 0 {
		text = firstLines(text, r.maxLines)
	}
	return text, nil
}

func (s *Server) handleSystemStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info, err := s.collect(ctx, sysinfo.SectionAll)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", uriSystemStatus, err)
	}
	return textContents(req.Params.URI, formatStatus(info)), nil
}

func formatStatus(info *sysinfo.Info) string {
	var b strings.Builder
	b.WriteString("=== System Status ===\n")
	if info.CPU != nil {
		fmt.Fprintf(&b, "CPU Usage: %.1f%%\n", info.CPU.AverageUsage())
	}
	if info.Memory != nil {
		fmt.Fprintf(&b, "Memory: %.1f%% (%d MB / %d MB)\n",
			info.Memory.MemoryPercent(),
			info.Memory.UsedBytes/1024/1024,
			info.Memory.TotalBytes/1024/1024)
	}
	if info.OS != nil {
		uptime := time.Duration(info.OS.UptimeSeconds) * time.Second
		fmt.Fprintf(&b, "Uptime: %d seconds (%s)\n", info.OS.UptimeSeconds, uptime)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}
}
