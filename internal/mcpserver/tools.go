package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/hostexec"
	"github.com/xdg/hostmcp/internal/policy"
	"github.com/xdg/hostmcp/internal/sysinfo"
)

// Elevation modes accepted by execute_command.
const (
	elevationNone        = "none"
	elevationSudo        = "sudo"
	elevationInteractive = "interactive"
)

// Error kinds reported in failed execute_command results.
const (
	kindInvalidRequest = "invalid_request"
	kindNotAllowed     = "not_allowed"
	kindUnsafeTarget   = "unsafe_target"
	kindUnavailable    = "mechanism_unavailable"
	kindSpawnFailure   = "spawn_failure"
	kindAbandoned      = "abandoned"
	kindInternal       = "internal"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(executeCommandTool(), s.handleExecuteCommand)
	s.mcpServer.AddTool(systemInfoTool(), s.handleSystemInfo)
}

func executeCommandTool() mcp.Tool {
	return mcp.NewTool("execute_command",
		mcp.WithDescription("Run an allowed command on the host and return its exit code, stdout and stderr. "+
			"Commands run without a shell. Removal commands are restricted to temporary, log and cache directories.\n\n"+
			"Elevation:\n"+
			"- none (default): run as the current user\n"+
			"- sudo: run through sudo; pass password if sudo needs one\n"+
			"- interactive: ask for consent through a native dialog (pkexec or UAC)"),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("Program to run. Without args, the string is split on whitespace (no quoting)."),
		),
		mcp.WithArray("args",
			mcp.Description("Arguments passed to the program verbatim"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("elevation",
			mcp.Description("Elevation mode"),
			mcp.Enum(elevationNone, elevationSudo, elevationInteractive),
		),
		mcp.WithString("password",
			mcp.Description("Password for sudo. Never logged or echoed back."),
		),
		mcp.WithBoolean("use_polkit",
			mcp.Description("Deprecated: same as elevation=interactive"),
		),
	)
}

func systemInfoTool() mcp.Tool {
	return mcp.NewTool("get_system_info",
		mcp.WithDescription("Get CPU, memory, disk or operating system information"),
		mcp.WithString("info_type",
			mcp.Description("Which information to return (default: all)"),
			mcp.Enum(
				string(sysinfo.SectionCPU),
				string(sysinfo.SectionMemory),
				string(sysinfo.SectionDisk),
				string(sysinfo.SectionOS),
				string(sysinfo.SectionAll),
			),
		),
	)
}

// executeResponse is the JSON body of a finished execution.
type executeResponse struct {
	executor.Result
	RequestID    string `json:"request_id"`
	AuditWarning string `json:"audit_warning,omitempty"`
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Success      bool   `json:"success"`
	RequestID    string `json:"request_id,omitempty"`
	Kind         string `json:"error_kind"`
	Error        string `json:"error"`
	AuditWarning string `json:"audit_warning,omitempty"`
}

func (s *Server) handleExecuteCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := req.RequireString("command")
	if err != nil {
		return errorResult(errorResponse{Kind: kindInvalidRequest, Error: err.Error()})
	}

	request := hostexec.Request{Command: command}
	if _, ok := req.GetArguments()["args"]; ok {
		request.Args = req.GetStringSlice("args", []string{})
	}

	flags, err := parseElevation(
		req.GetString("elevation", ""),
		req.GetBool("use_polkit", false),
		req.GetString("password", ""),
	)
	if err != nil {
		return errorResult(errorResponse{Kind: kindInvalidRequest, Error: err.Error()})
	}
	request.Flags = flags

	out := s.exec.Execute(ctx, request)

	var warning string
	if out.AuditErr != nil {
		warning = out.AuditErr.Error()
	}
	if out.Err != nil {
		return errorResult(errorResponse{
			RequestID:    out.RequestID,
			Kind:         errorKind(out.Err),
			Error:        out.Err.Error(),
			AuditWarning: warning,
		})
	}
	return jsonResult(executeResponse{
		Result:       out.Result,
		RequestID:    out.RequestID,
		AuditWarning: warning,
	})
}

// parseElevation maps tool arguments to elevation flags. A password with
// no explicit mode selects sudo.
func parseElevation(mode string, usePolkit bool, password string) (elevation.Flags, error) {
	var flags elevation.Flags
	if mode == "" {
		switch {
		case usePolkit:
			mode = elevationInteractive
		case password != "":
			mode = elevationSudo
		default:
			mode = elevationNone
		}
	}

	switch mode {
	case elevationNone:
	case elevationSudo:
		flags.Password = true
		if password != "" {
			flags.Secret = []byte(password)
		}
	case elevationInteractive:
		flags.Interactive = true
	default:
		return flags, fmt.Errorf("invalid elevation %q: must be one of none, sudo, interactive", mode)
	}
	return flags, nil
}

// errorKind names the failure class of err for callers.
func errorKind(err error) string {
	switch {
	case errors.Is(err, policy.ErrNotAllowed):
		return kindNotAllowed
	case errors.Is(err, policy.ErrUnsafeTarget):
		return kindUnsafeTarget
	case errors.Is(err, elevation.ErrMechanismUnavailable):
		return kindUnavailable
	case errors.Is(err, executor.ErrSpawnFailure):
		return kindSpawnFailure
	case errors.Is(err, hostexec.ErrAbandoned):
		return kindAbandoned
	default:
		return kindInternal
	}
}

func (s *Server) handleSystemInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	section := sysinfo.ParseSection(req.GetString("info_type", string(sysinfo.SectionAll)))
	info, err := s.collect(ctx, section)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

// jsonResult converts a value to a JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(resp errorResponse) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(resp.Error), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}
