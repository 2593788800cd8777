// Package mcpserver exposes host diagnostics and command execution over
// the Model Context Protocol.
package mcpserver

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/hostexec"
	"github.com/xdg/hostmcp/internal/sysinfo"
	"github.com/xdg/hostmcp/internal/version"
)

const instructions = `This server provides tools for inspecting the host and running commands on it.

Tools:
- get_system_info: CPU, memory, disk or operating system information
- execute_command: run an allowed command and return its output; set elevation to "sudo" or "interactive" for privileged commands

Resources:
- linux://logs/system: recent system journal
- linux://logs/auth: recent SSH authentication journal
- linux://config/network: network interface configuration
- linux://processes/top: processes using the most memory
- linux://system/status: CPU, memory and uptime summary

Prompts:
- system_troubleshooting: guided problem diagnosis
- security_audit: basic security audit
- service_management: systemd service actions
- log_analysis: journal analysis
- disk_cleanup: safe disk cleanup`

// Executor runs execute_command requests.
type Executor interface {
	Execute(ctx context.Context, req hostexec.Request) hostexec.Outcome
}

// CollectFunc gathers host facts for get_system_info and system/status.
type CollectFunc func(ctx context.Context, section sysinfo.Section) (*sysinfo.Info, error)

// Options configures a Server. Runner and Collect default to the real
// implementations.
type Options struct {
	Exec    Executor
	Runner  executor.Runner
	Collect CollectFunc
}

// Server is the MCP front end.
type Server struct {
	exec      Executor
	runner    executor.Runner
	collect   CollectFunc
	mcpServer *server.MCPServer
}

// New creates a Server with every tool, resource and prompt registered.
func New(opts Options) *Server {
	s := &Server{
		exec:    opts.Exec,
		runner:  opts.Runner,
		collect: opts.Collect,
	}
	if s.runner == nil {
		s.runner = executor.NewRealRunner()
	}
	if s.collect == nil {
		s.collect = sysinfo.Collect
	}

	s.mcpServer = server.NewMCPServer(
		version.ServerName,
		version.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over in and out until ctx ends or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(clog.StdLogger(clog.LevelError))
	clog.Info("serving MCP on stdio")
	return stdio.Listen(ctx, in, out)
}
