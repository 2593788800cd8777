package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/hostexec"
	"github.com/xdg/hostmcp/internal/term"
)

var (
	execSudo        bool
	execAskPassword bool
	execInteractive bool
	execJSON        bool
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- COMMAND [ARGS...]",
	Short: "Run one command through the execution pipeline",
	Long: `Run one command exactly as the execute_command tool would: it is checked
against the allow-list and the removal guard, elevated if requested, and
recorded in the audit log.

Arguments are passed to the program as given; no shell is involved.

The exit code is the command's own. A rejected command exits 1, a missing
elevation helper exits 126 and a command that could not be started exits 127.`,
	Example: `  hostmcp exec -- df -h
  hostmcp exec --sudo --ask-password -- journalctl -u ssh -n 20
  hostmcp exec --interactive -- systemctl restart nginx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().BoolVar(&execSudo, "sudo", false, "run through sudo (passwordless unless --ask-password)")
	execCmd.Flags().BoolVar(&execAskPassword, "ask-password", false, "prompt for the sudo password (implies --sudo)")
	execCmd.Flags().BoolVar(&execInteractive, "interactive", false, "ask for consent through pkexec or UAC")
	execCmd.Flags().BoolVar(&execJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(execCmd)
}

// execOutput is the --json form of a result.
type execOutput struct {
	executor.Result
	RequestID string `json:"request_id"`
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, false); err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = clog.Close() }()

	flags := elevation.Flags{
		Interactive: execInteractive,
		Password:    execSudo || execAskPassword,
	}
	if execAskPassword && !execInteractive {
		secret, err := secretReader.ReadSecret("[sudo] password: ")
		if err != nil {
			return err
		}
		flags.Secret = secret
	}

	svc := buildService(cfg, nil, nil)
	out := svc.Execute(cmd.Context(), hostexec.Request{
		Command: args[0],
		Args:    args[1:],
		Flags:   flags,
	})

	if out.AuditErr != nil {
		term.Warn("%v", out.AuditErr)
	}
	if out.Err != nil {
		term.Error("%v", out.Err)
		return NewExitCodeError(exitCodeFor(out.Err))
	}

	if execJSON {
		if err := term.PrintJSON(execOutput{Result: out.Result, RequestID: out.RequestID}); err != nil {
			return err
		}
	} else {
		term.Passthrough(out.Result.Stdout, out.Result.Stderr)
	}

	switch code := out.Result.ExitCode; {
	case code == 0:
		return nil
	case code < 0:
		return NewExitCodeError(1)
	default:
		return NewExitCodeError(code)
	}
}
