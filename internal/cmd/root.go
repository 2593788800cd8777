// Package cmd implements the CLI commands for hostmcp.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/config"
	"github.com/xdg/hostmcp/internal/term"
	"github.com/xdg/hostmcp/internal/version"
)

var (
	configFlag string
	debugFlag  bool
	silentFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hostmcp",
	Short: "Host diagnostics and command execution over MCP",
	Long: `hostmcp lets an AI agent inspect this machine and run allow-listed commands
on it through the Model Context Protocol.

Commands run without a shell. Only programs on the configured allow-list are
accepted, removals are limited to temporary, log and cache directories, and
every attempt is written to an append-only audit log. Privileged commands go
through sudo, pkexec or UAC.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		term.SetSilent(silentFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/hostmcp/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "suppress normal output")
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the configuration named by --config.
func loadConfig() (*config.Config, error) {
	return config.Load(configFlag)
}

// setupLogging configures clog from cfg. In daemon mode nothing is written
// to stderr and a log file is always used.
func setupLogging(cfg *config.Config, daemon bool) error {
	level := clog.ParseLevel(cfg.Log.Level)
	if debugFlag {
		level = clog.LevelDebug
	}
	path := cfg.Log.File
	if path == "" && daemon {
		path = clog.DefaultLogPath()
	}
	return clog.Configure(clog.Options{Path: path, Level: level, Daemon: daemon})
}
