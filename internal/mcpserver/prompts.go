package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var serviceActions = map[string]bool{
	"status":  true,
	"start":   true,
	"stop":    true,
	"restart": true,
	"enable":  true,
	"disable": true,
}

func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(mcp.NewPrompt("system_troubleshooting",
		mcp.WithPromptDescription("Guided diagnosis of a problem on the host"),
		mcp.WithArgument("problem_type",
			mcp.ArgumentDescription("Problem area: cpu, memory, disk, network, process"),
			mcp.RequiredArgument(),
		),
	), handleTroubleshooting)

	s.mcpServer.AddPrompt(mcp.NewPrompt("security_audit",
		mcp.WithPromptDescription("Basic security audit of the host"),
		mcp.WithArgument("scope",
			mcp.ArgumentDescription("Audit scope: basic or full"),
		),
	), handleSecurityAudit)

	s.mcpServer.AddPrompt(mcp.NewPrompt("service_management",
		mcp.WithPromptDescription("Manage a systemd service"),
		mcp.WithArgument("service_name",
			mcp.ArgumentDescription("systemd unit name"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("action",
			mcp.ArgumentDescription("Action: status, start, stop, restart, enable, disable"),
			mcp.RequiredArgument(),
		),
	), handleServiceManagement)

	s.mcpServer.AddPrompt(mcp.NewPrompt("log_analysis",
		mcp.WithPromptDescription("Analyze the system journal"),
		mcp.WithArgument("log_type",
			mcp.ArgumentDescription("Log type: system, auth, kernel, app"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("priority",
			mcp.ArgumentDescription("Minimum priority: emerg, alert, crit, err, warning, notice, info, debug"),
		),
		mcp.WithArgument("app_name",
			mcp.ArgumentDescription("Unit name when log_type is app"),
		),
	), handleLogAnalysis)

	s.mcpServer.AddPrompt(mcp.NewPrompt("disk_cleanup",
		mcp.WithPromptDescription("Find and safely reclaim disk space"),
		mcp.WithArgument("aggressive",
			mcp.ArgumentDescription("Include more aggressive cleanup steps: true or false"),
		),
	), handleDiskCleanup)
}

func handleTroubleshooting(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	problem := argOr(req, "problem_type", "general")
	text := fmt.Sprintf("I need to diagnose a %s problem. Please guide me through:\n"+
		"1. Commands to check the current state\n"+
		"2. How to interpret the results\n"+
		"3. Possible fixes\n"+
		"4. How to prevent the problem in the future", problem)
	return userPrompt("Troubleshooting: "+problem, text), nil
}

func handleSecurityAudit(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	scope := argOr(req, "scope", "basic")
	checks := []string{
		"1. Check for pending security updates",
		"2. List users with active logins",
		"3. Check open ports and exposed services",
		"4. Look for failed authentication attempts in the logs",
	}
	if scope == "full" {
		checks = append(checks,
			"5. Check permissions of critical files",
			"6. List processes running with elevated privileges",
			"7. Review the firewall configuration",
			"8. Verify the integrity of system packages",
		)
	}
	text := fmt.Sprintf("Run a security audit (%s scope):\n\n%s", scope, strings.Join(checks, "\n"))
	return userPrompt("Security audit, scope: "+scope, text), nil
}

func handleServiceManagement(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	service := argOr(req, "service_name", "")
	if service == "" {
		return nil, fmt.Errorf("service_name is required")
	}
	action := argOr(req, "action", "")
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	if !serviceActions[action] {
		return nil, fmt.Errorf("invalid action %q: must be one of status, start, stop, restart, enable, disable", action)
	}

	command := fmt.Sprintf("systemctl %s %s", action, service)
	text := fmt.Sprintf("Perform the following action on service '%s':\n"+
		"Action: %s\n"+
		"Command: %s\n\n"+
		"Please:\n"+
		"1. Run the command\n"+
		"2. Check the result\n"+
		"3. Confirm the new service status", service, action, command)
	return userPrompt(fmt.Sprintf("Manage service: %s - %s", service, action), text), nil
}

func handleLogAnalysis(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	logType := argOr(req, "log_type", "")
	if logType == "" {
		return nil, fmt.Errorf("log_type is required")
	}
	priority := argOr(req, "priority", "info")

	var command string
	switch logType {
	case "system":
		command = fmt.Sprintf("journalctl -p %s -n 100 --no-pager", priority)
	case "auth":
		command = fmt.Sprintf("journalctl -u ssh -u sshd -p %s -n 50 --no-pager", priority)
	case "kernel":
		command = fmt.Sprintf("journalctl -k -p %s -n 100 --no-pager", priority)
	case "app":
		app := argOr(req, "app_name", "apache2")
		command = fmt.Sprintf("journalctl -u %s -p %s -n 100 --no-pager", app, priority)
	default:
		return nil, fmt.Errorf("invalid log_type %q: must be one of system, auth, kernel, app", logType)
	}

	text := fmt.Sprintf("Analyze the '%s' logs with minimum priority '%s':\n\n"+
		"Suggested command: %s\n\n"+
		"Please:\n"+
		"1. Run the command\n"+
		"2. Identify patterns or problems\n"+
		"3. Suggest corrective actions if needed", logType, priority, command)
	return userPrompt(fmt.Sprintf("Log analysis: %s (priority: %s)", logType, priority), text), nil
}

func handleDiskCleanup(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	aggressive := argOr(req, "aggressive", "false") == "true"
	steps := []string{
		"1. Clean the apt cache: apt clean",
		"2. Remove orphaned packages: apt autoremove",
		"3. Vacuum old journal entries: journalctl --vacuum-time=7d",
		"4. Find large directories: du -xh -d 2 /",
	}
	mode := "safe"
	if aggressive {
		mode = "aggressive"
		steps = append(steps,
			"5. Purge the pip cache: pip cache purge",
			"6. Remove temporary files: rm -rf /tmp/*",
			"7. Clean the npm cache: npm cache clean --force",
			"8. Remove old rotated logs: rm /var/log/syslog.2.gz (one target per rotated file)",
		)
	}
	text := fmt.Sprintf("Clean up disk space (%s mode):\n\n%s\n\n"+
		"WARNING: review every command before running it!", mode, strings.Join(steps, "\n"))
	return userPrompt("Disk cleanup, mode: "+mode, text), nil
}

func argOr(req mcp.GetPromptRequest, name, def string) string {
	if v := strings.TrimSpace(req.Params.Arguments[name]); v != "" {
		return v
	}
	return def
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}
