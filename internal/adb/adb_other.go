//go:build !windows

package adb

import "os/exec"

// hideConsoleWindow is a no-op: only Windows spawns a console for child processes.
func hideConsoleWindow(*exec.Cmd) {}
