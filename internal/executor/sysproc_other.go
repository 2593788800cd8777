//go:build !windows

package executor

import "os/exec"

func configureSysProcAttr(*exec.Cmd, bool) {}
