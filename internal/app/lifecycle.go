package app

import (
	"quick-launch/internal/logger"
	"quick-launch/internal/shutdown"
)

// Lifecycle stops the application's background components when the window
// closes or the process is signalled.
type Lifecycle struct {
	manager *shutdown.Manager
	logger  logger.Logger
}

func NewLifecycle(log logger.Logger) *Lifecycle {
	return &Lifecycle{
		manager: shutdown.NewManager(log),
		logger:  log,
	}
}

func (l *Lifecycle) Register(name string, component shutdown.Shutdownable) {
	l.manager.Register(name, component)
}

func (l *Lifecycle) Listen(onSignal func()) {
	l.manager.Listen(onSignal)
}

// Shutdown is idempotent.
func (l *Lifecycle) Shutdown() {
	l.manager.Shutdown()
}
