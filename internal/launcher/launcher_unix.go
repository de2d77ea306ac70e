//go:build !windows && !darwin

package launcher

import (
	"os/exec"
	"syscall"
)

func (l *Launcher) terminalCommand(path string) []string {
	return unixTerminalArgs(l.terminal, path)
}

func revealCommand(path string) []string {
	return []string{"xdg-open", path}
}

// detach gives the terminal its own session so closing the launcher does not
// take it down.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
