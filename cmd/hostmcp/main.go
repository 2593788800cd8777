// Package main is the entry point for the hostmcp CLI.
package main

import (
	"errors"
	"os"

	"github.com/xdg/hostmcp/internal/cmd"
	"github.com/xdg/hostmcp/internal/term"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		term.Error("%v", err)
		os.Exit(1)
	}
}
