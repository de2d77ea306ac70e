//go:build windows

package launcher

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

func (l *Launcher) terminalCommand(path string) []string {
	return windowsTerminalArgs(path)
}

func revealCommand(path string) []string {
	return []string{"explorer.exe", path}
}

// detach puts the shell in a console of its own instead of inheriting ours.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
