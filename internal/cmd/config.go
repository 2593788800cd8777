package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/hostmcp/internal/config"
	"github.com/xdg/hostmcp/internal/pathutil"
	"github.com/xdg/hostmcp/internal/term"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage hostmcp's configuration.

The configuration file is stored at ~/.config/hostmcp/config.yaml
(or $XDG_CONFIG_HOME/hostmcp/config.yaml if XDG_CONFIG_HOME is set),
unless --config names another file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective config",
	Long: `Print the effective configuration as YAML, with defaults applied and
paths resolved.

If no config file exists, a default one is created first.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	Args:  cobra.NoArgs,
	Run:   runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	Long: `Create the default configuration file, fully commented.

If the file already exists you are asked before it is replaced, unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file without asking")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func configPath() string {
	if configFlag != "" {
		return pathutil.ExpandHome(configFlag)
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	term.Printf("%s", data)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) {
	term.Println(configPath())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()

	err := config.WriteDefault(path, configInitForce)
	if errors.Is(err, config.ErrConfigExists) {
		overwrite, promptErr := confirmer.Confirm(
			fmt.Sprintf("%s already exists. Overwrite?", path), false)
		if promptErr != nil {
			return promptErr
		}
		if !overwrite {
			term.Println("Left existing config unchanged.")
			return nil
		}
		err = config.WriteDefault(path, true)
	}
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	term.Printf("Created default config at: %s\n", path)
	return nil
}
