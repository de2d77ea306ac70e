package launcher

import (
	"path/filepath"
	"strings"
)

// shellQuote wraps s in single quotes for a POSIX shell. Embedded single
// quotes become '\''.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// appleScriptString returns s as a double-quoted AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// powerShellString returns s as a single-quoted PowerShell literal.
func powerShellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// runThenShell is the shell script run inside a new terminal: the target,
// then an interactive bash so the output stays visible.
func runThenShell(path string) string {
	return shellQuote(path) + "; exec bash"
}

func unixTerminalArgs(terminal, path string) []string {
	return []string{terminal, "-e", "bash", "-c", runThenShell(path)}
}

func darwinTerminalArgs(path string) []string {
	script := "bash -c " + shellQuote(runThenShell(path))
	return []string{
		"osascript",
		"-e", "tell application \"Terminal\" to do script " + appleScriptString(script),
		"-e", "tell application \"Terminal\" to activate",
	}
}

// windowsTerminalArgs runs .ps1 files with -File and anything else through
// the call operator, keeping the console open in both cases.
func windowsTerminalArgs(path string) []string {
	if strings.EqualFold(filepath.Ext(path), ".ps1") {
		return []string{"powershell.exe", "-NoExit", "-File", path}
	}
	return []string{"powershell.exe", "-NoExit", "-Command", "& " + powerShellString(path)}
}
