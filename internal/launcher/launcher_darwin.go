//go:build darwin

package launcher

import (
	"os/exec"
	"syscall"
)

// Terminal.app owns the new window; osascript only delivers the request.
func (l *Launcher) terminalCommand(path string) []string {
	return darwinTerminalArgs(path)
}

func revealCommand(path string) []string {
	return []string{"open", path}
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
