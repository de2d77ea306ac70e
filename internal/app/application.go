package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"quick-launch/internal/config"
	"quick-launch/internal/gui"
	guisync "quick-launch/internal/gui/sync"
	"quick-launch/internal/launcher"
	"quick-launch/internal/logger"
	"quick-launch/internal/scanner"
	"quick-launch/internal/watcher"
)

const (
	WindowWidth  = 370
	WindowHeight = 600
)

type Options struct {
	App    config.AppConfig
	Prefs  *config.Preferences
	Logger logger.Logger
}

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *gui.View
	controller *gui.Controller
	ticker     *guisync.Coordinator
	logger     logger.Logger
	lifecycle  *Lifecycle
}

func NewApplication(opts Options) (*Application, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	fyneApp := fyneapp.NewWithID(opts.App.ID)
	window := fyneApp.NewWindow(opts.App.Name)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.SetMaster()

	term := launcher.New(launcher.Options{Terminal: opts.Prefs.Terminal, Logger: log})

	lifecycle := NewLifecycle(log)

	controller := gui.NewController(gui.Dependencies{
		App:      opts.App,
		Prefs:    opts.Prefs,
		Scanner:  scanner.New(log),
		Launcher: term,
		Revealer: term,
		Logger:   log,
	})

	dirWatcher, err := watcher.New(log, watcher.DefaultDebounce, controller.RequestRescan)
	if err != nil {
		// Without a watcher the grid still refreshes on demand.
		log.Warning("Application", "directory watching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		controller.SetWatcher(dirWatcher)
		lifecycle.Register("watcher", dirWatcher)
	}

	view := gui.NewView(window)
	controller.SetDisplay(view)
	view.SetController(controller)

	ticker := guisync.NewCoordinator(guisync.DefaultInterval, controller.Tick)
	lifecycle.Register("controller", controller)
	lifecycle.Register("ticker", ticker)

	log.Info("Application", "starting application", map[string]interface{}{
		"version":  opts.App.Version,
		"profile":  opts.Prefs.ActiveProfile,
		"dir":      opts.Prefs.Active().ScriptDir,
		"terminal": term.Terminal(),
	})

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		ticker:     ticker,
		logger:     log,
		lifecycle:  lifecycle,
	}, nil
}

// Run shows the window and blocks until it is closed.
func (a *Application) Run() error {
	if a.window == nil {
		return fmt.Errorf("application not initialised")
	}

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.window.SetContent(a.view.GetMainContainer())
	a.controller.Start()
	a.lifecycle.Listen(func() { fyne.Do(a.fyneApp.Quit) })
	go a.ticker.Run()

	a.window.ShowAndRun()
	a.lifecycle.Shutdown()

	a.logger.Info("Application", "stopped", nil)
	return nil
}
