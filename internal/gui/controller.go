package gui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"quick-launch/internal/config"
	"quick-launch/internal/launcher"
	"quick-launch/internal/logger"
	"quick-launch/internal/scanner"
	"quick-launch/internal/task"
)

const component = "Controller"

// Display is what the controller needs from the window. All calls happen on
// the UI goroutine.
type Display interface {
	ShowEntries(entries []scanner.Entry, columns int)
	SetDirectory(dir string)
	SetProfiles(names []string, active string)
	SetStatus(text string)
	ShowError(title string, err error)
}

// FolderPicker blocks until the user picks a directory or dismisses the
// dialog. ok is false when the dialog was dismissed.
type FolderPicker func() (dir string, ok bool, err error)

// DirWatcher follows the current script directory.
type DirWatcher interface {
	Watch(dir string) error
}

type Revealer interface {
	Reveal(path string) error
}

type Dependencies struct {
	App      config.AppConfig
	Prefs    *config.Preferences
	Scanner  *scanner.Scanner
	Launcher launcher.TerminalLauncher
	Revealer Revealer
	Watcher  DirWatcher
	Logger   logger.Logger
}

type scanResult struct {
	dir     string
	entries []scanner.Entry
}

type pickResult struct {
	dir string
	ok  bool
	err error
}

// Controller owns the entry list and the outstanding background tasks. Every
// method except RequestRescan must be called on the UI goroutine; Tick is
// expected once per frame.
type Controller struct {
	app      config.AppConfig
	prefs    *config.Preferences
	scanner  *scanner.Scanner
	launcher launcher.TerminalLauncher
	revealer Revealer
	watcher  DirWatcher
	logger   logger.Logger
	display  Display

	entries []scanner.Entry

	scanTask *task.Task[scanResult]
	pickTask *task.Task[pickResult]

	// rescanAgain is set when a rescan is asked for while one is running.
	rescanAgain  bool
	rescanWanted atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewController(deps Dependencies) *Controller {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	if deps.Scanner == nil {
		deps.Scanner = scanner.New(log)
	}
	if deps.Prefs == nil {
		deps.Prefs = config.Default(deps.App)
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		app:      deps.App,
		prefs:    deps.Prefs,
		scanner:  deps.Scanner,
		launcher: deps.Launcher,
		revealer: deps.Revealer,
		watcher:  deps.Watcher,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (c *Controller) SetDisplay(display Display) {
	c.display = display
}

// SetWatcher is for watchers that need the controller to exist first.
func (c *Controller) SetWatcher(w DirWatcher) {
	c.watcher = w
}

// Start performs the first scan inline so the window opens populated.
func (c *Controller) Start() {
	dir := c.prefs.Active().ScriptDir
	c.display.SetProfiles(c.prefs.ProfileNames(), c.prefs.ActiveProfile)
	c.display.SetDirectory(dir)
	c.follow(dir)
	c.apply(scanResult{dir: dir, entries: c.scanner.Scan(dir)})
}

// Entries returns the entries currently shown.
func (c *Controller) Entries() []scanner.Entry {
	return c.entries
}

// Busy reports whether a scan or folder dialog is still outstanding.
func (c *Controller) Busy() bool {
	return c.scanTask != nil || c.pickTask != nil
}

// Tick polls the outstanding tasks once. It never blocks.
func (c *Controller) Tick() {
	if c.rescanWanted.Swap(false) {
		c.Rescan()
	}

	if c.pickTask != nil {
		if res, ok := c.pickTask.TryTake(); ok {
			c.pickTask = nil
			c.applyPick(res)
		} else if c.pickTask.Exhausted() {
			c.pickTask = nil
			c.display.SetStatus("Folder selection failed")
		}
	}

	if c.scanTask != nil {
		if res, ok := c.scanTask.TryTake(); ok {
			c.scanTask = nil
			c.apply(res)
		} else if c.scanTask.Exhausted() {
			c.scanTask = nil
			c.display.SetStatus("Scan failed")
		}
		if c.scanTask == nil && c.rescanAgain {
			c.rescanAgain = false
			c.Rescan()
		}
	}
}

// RequestRescan asks for a rescan on the next Tick. Safe from any goroutine.
func (c *Controller) RequestRescan() {
	c.rescanWanted.Store(true)
}

// Rescan scans the active directory in the background. At most one scan is
// outstanding; a request made meanwhile is folded into one follow-up scan.
func (c *Controller) Rescan() {
	if c.scanTask != nil {
		c.rescanAgain = true
		return
	}

	dir := c.prefs.Active().ScriptDir
	ctx := c.ctx
	s := c.scanner
	c.display.SetStatus("Scanning " + dir + "...")
	c.scanTask = task.SpawnWithHook(func() scanResult {
		return scanResult{dir: dir, entries: s.ScanContext(ctx, dir)}
	}, c.logPanic("scan"))
}

// PickFolder runs pick off the UI goroutine and switches to the chosen
// directory once a later Tick sees the answer. A second request while a
// dialog is open is ignored.
func (c *Controller) PickFolder(pick FolderPicker) {
	if c.pickTask != nil {
		return
	}
	c.display.SetStatus("Choosing folder...")
	c.pickTask = task.SpawnWithHook(func() pickResult {
		dir, ok, err := pick()
		return pickResult{dir: dir, ok: ok, err: err}
	}, c.logPanic("folder picker"))
}

// Launch opens entry in a new terminal. Repeated clicks each start a terminal.
func (c *Controller) Launch(entry scanner.Entry) {
	if c.launcher == nil {
		c.display.ShowError("Launch failed", fmt.Errorf("no terminal launcher configured"))
		return
	}
	if err := c.launcher.Launch(entry.Path); err != nil {
		c.display.SetStatus("Could not launch " + entry.Name())
		c.display.ShowError("Launch failed", err)
		return
	}
	c.display.SetStatus("Launched " + entry.Name())
}

// RevealFolder opens the active directory in the file manager.
func (c *Controller) RevealFolder() {
	if c.revealer == nil {
		return
	}
	dir := c.prefs.Active().ScriptDir
	if err := c.revealer.Reveal(dir); err != nil {
		c.display.ShowError("Open folder failed", err)
	}
}

func (c *Controller) SetColumns(n int) {
	c.prefs.SetColumns(n)
	c.save()
	c.display.ShowEntries(c.entries, c.prefs.Active().Columns)
}

func (c *Controller) SelectProfile(name string) {
	if name == c.prefs.ActiveProfile {
		return
	}
	if err := c.prefs.Use(name); err != nil {
		c.display.ShowError("Profile", err)
		return
	}
	c.save()

	dir := c.prefs.Active().ScriptDir
	c.display.SetProfiles(c.prefs.ProfileNames(), c.prefs.ActiveProfile)
	c.display.SetDirectory(dir)
	c.follow(dir)
	c.Rescan()
}

// AddProfile creates a profile pointing at the current directory and
// switches to it.
func (c *Controller) AddProfile(name string) {
	active := c.prefs.Active()
	profile := config.Profile{Name: strings.TrimSpace(name), ScriptDir: active.ScriptDir, Columns: active.Columns}
	if err := c.prefs.AddProfile(profile); err != nil {
		c.display.ShowError("Profile", err)
		return
	}
	c.SelectProfile(profile.Name)
}

// Shutdown stops in-flight scans early. Abandoned folder dialogs are left to
// finish on their own.
func (c *Controller) Shutdown() {
	c.cancel()
}

func (c *Controller) applyPick(res pickResult) {
	if res.err != nil {
		c.display.SetStatus("Ready")
		c.display.ShowError("Folder selection failed", res.err)
		return
	}
	if !res.ok {
		c.display.SetStatus("Ready")
		return
	}

	dir := filepath.Clean(res.dir)
	c.prefs.SetScriptDir(dir)
	c.save()
	c.display.SetDirectory(dir)
	c.follow(dir)
	c.Rescan()
}

func (c *Controller) apply(res scanResult) {
	// A profile or folder switch made while this scan ran supersedes it.
	if res.dir != c.prefs.Active().ScriptDir {
		c.logger.Debug(component, "discarding stale scan", map[string]interface{}{
			"dir": res.dir,
		})
		return
	}

	c.entries = res.entries
	c.display.ShowEntries(c.entries, c.prefs.Active().Columns)
	switch len(c.entries) {
	case 0:
		c.display.SetStatus("No launchable items found")
	case 1:
		c.display.SetStatus("1 script")
	default:
		c.display.SetStatus(fmt.Sprintf("%d scripts", len(c.entries)))
	}

	c.logger.Info(component, "entries updated", map[string]interface{}{
		"dir":     res.dir,
		"entries": len(c.entries),
	})
}

func (c *Controller) follow(dir string) {
	if c.watcher == nil {
		return
	}
	if err := c.watcher.Watch(dir); err != nil {
		c.logger.Warning(component, "not watching directory", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
	}
}

func (c *Controller) save() {
	if c.app.PreferencesPath == "" {
		return
	}
	if err := c.prefs.Save(c.app.PreferencesPath); err != nil {
		c.logger.Error(component, err, map[string]interface{}{
			"path": c.app.PreferencesPath,
		})
	}
}

func (c *Controller) logPanic(what string) task.PanicHook {
	return func(recovered interface{}) {
		c.logger.Error(component, fmt.Errorf("%s task panicked: %v", what, recovered), nil)
	}
}
