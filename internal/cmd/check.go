package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xdg/hostmcp/internal/hostexec"
	"github.com/xdg/hostmcp/internal/term"
)

var checkCmd = &cobra.Command{
	Use:   "check -- COMMAND [ARGS...]",
	Short: "Check whether a command would be allowed",
	Long: `Check a command against the allow-list and the removal guard without
running it. Nothing is written to the audit log.

Exits 0 if the command would be accepted and 1 with the reason if not.`,
	Example: `  hostmcp check -- rm -rf /tmp/build
  hostmcp check -- python3 script.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc := buildService(cfg, nil, nil)
	line := strings.Join(args, " ")
	if err := svc.Check(hostexec.Request{Command: args[0], Args: args[1:]}); err != nil {
		term.Error("%s: %v", line, err)
		return NewExitCodeError(exitRejected)
	}
	term.Printf("allowed: %s\n", line)
	return nil
}
