// Package launcher opens executables in a new, visible terminal window that
// stays open after the program exits.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"quick-launch/internal/logger"
)

const component = "Launcher"

// DefaultTerminal is used on unix desktops when neither $TERMINAL nor the
// preferences name an emulator.
const DefaultTerminal = "x-terminal-emulator"

// ErrSpawnFailed matches every error returned when the OS refused to start
// the terminal or shell.
var ErrSpawnFailed = errors.New("terminal spawn failed")

// TerminalLauncher starts a target in a detached terminal and returns as soon
// as the terminal process has been started.
type TerminalLauncher interface {
	Launch(path string) error
}

// LaunchError carries the command that could not be started and the OS error.
type LaunchError struct {
	Path    string
	Command []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: start %s: %v", e.Path, e.Command[0], e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func (e *LaunchError) Is(target error) bool {
	return target == ErrSpawnFailed
}

type Options struct {
	// Terminal is the emulator from the preferences file. $TERMINAL wins over it.
	Terminal string
	Logger   logger.Logger
}

// Launcher is the TerminalLauncher for the platform the binary was built for.
type Launcher struct {
	terminal string
	logger   logger.Logger
	start    func(*exec.Cmd) error
}

var _ TerminalLauncher = (*Launcher)(nil)

func New(opts Options) *Launcher {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Launcher{
		terminal: ResolveTerminal(opts.Terminal),
		logger:   log,
		start:    startDetached,
	}
}

// ResolveTerminal picks the emulator command: $TERMINAL, then configured,
// then DefaultTerminal.
func ResolveTerminal(configured string) string {
	if env := strings.TrimSpace(os.Getenv("TERMINAL")); env != "" {
		return env
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	return DefaultTerminal
}

// Terminal reports the emulator used on unix desktops.
func (l *Launcher) Terminal() string {
	return l.terminal
}

// Launch opens a new terminal running path followed by an interactive shell.
// A program failing inside that terminal is not an error here.
func (l *Launcher) Launch(path string) error {
	path = absolute(path)
	return l.run(path, l.terminalCommand(path))
}

// Reveal opens path in the platform file manager.
func (l *Launcher) Reveal(path string) error {
	path = absolute(path)
	return l.run(path, revealCommand(path))
}

// absolute resolves path against our working directory. The terminal does not
// start there, and bash looks bare names up in $PATH.
func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (l *Launcher) run(path string, argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	detach(cmd)

	if err := l.start(cmd); err != nil {
		launchErr := &LaunchError{Path: path, Command: argv, Err: err}
		l.logger.Error(component, launchErr, map[string]interface{}{
			"path":    path,
			"command": argv[0],
		})
		return launchErr
	}

	l.logger.Info(component, "terminal started", map[string]interface{}{
		"path":    path,
		"command": argv[0],
	})
	return nil
}

// startDetached starts cmd and reaps it in the background. Stdio stays nil so
// the child is attached to the null device rather than our descriptors.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
