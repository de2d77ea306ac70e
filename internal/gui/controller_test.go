package gui

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quick-launch/internal/config"
	"quick-launch/internal/launcher"
	"quick-launch/internal/scanner"
)

type fakeDisplay struct {
	entries  []scanner.Entry
	columns  int
	dir      string
	profiles []string
	active   string
	status   string
	errors   []error
}

func (d *fakeDisplay) ShowEntries(entries []scanner.Entry, columns int) {
	d.entries = entries
	d.columns = columns
}

func (d *fakeDisplay) SetDirectory(dir string) {
	d.dir = dir
}

func (d *fakeDisplay) SetProfiles(names []string, active string) {
	d.profiles = names
	d.active = active
}

func (d *fakeDisplay) SetStatus(text string) {
	d.status = text
}

func (d *fakeDisplay) ShowError(title string, err error) {
	d.errors = append(d.errors, err)
}

type fakeLauncher struct {
	mu       sync.Mutex
	launched []string
	err      error
}

func (l *fakeLauncher) Launch(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.launched = append(l.launched, path)
	return nil
}

type fakeWatcher struct {
	dirs []string
}

func (w *fakeWatcher) Watch(dir string) error {
	w.dirs = append(w.dirs, dir)
	return nil
}

type harness struct {
	ctrl     *Controller
	display  *fakeDisplay
	launcher *fakeLauncher
	watcher  *fakeWatcher
	app      config.AppConfig
	dir      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixtures rely on execute permission bits")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "scripts")
	require.NoError(t, os.Mkdir(dir, 0o755))

	app := config.AppConfig{
		ID:               config.AppID,
		DefaultColumns:   config.DefaultColumns,
		DefaultScriptDir: dir,
		PreferencesPath:  filepath.Join(root, "prefs.yaml"),
	}
	h := &harness{
		display:  &fakeDisplay{},
		launcher: &fakeLauncher{},
		watcher:  &fakeWatcher{},
		app:      app,
		dir:      dir,
	}
	h.ctrl = NewController(Dependencies{
		App:      app,
		Prefs:    config.Default(app),
		Launcher: h.launcher,
		Watcher:  h.watcher,
	})
	h.ctrl.SetDisplay(h.display)
	t.Cleanup(h.ctrl.Shutdown)
	return h
}

func addScript(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.Chmod(path, 0o755))
	return path
}

// tickUntilIdle drives Tick the way the UI loop would until no task remains.
func tickUntilIdle(t *testing.T, c *Controller) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for c.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("controller still busy")
		}
		c.Tick()
		time.Sleep(time.Millisecond)
	}
}

func TestStartScansInline(t *testing.T) {
	h := newHarness(t)
	addScript(t, h.dir, "deploy.sh")

	h.ctrl.Start()

	require.Len(t, h.display.entries, 1)
	assert.Equal(t, "deploy", h.display.entries[0].Name())
	assert.Equal(t, config.DefaultColumns, h.display.columns)
	assert.Equal(t, h.dir, h.display.dir)
	assert.Equal(t, []string{config.DefaultProfile}, h.display.profiles)
	assert.Equal(t, []string{h.dir}, h.watcher.dirs)
	assert.False(t, h.ctrl.Busy())
}

func TestStartWithMissingDirectoryShowsNothing(t *testing.T) {
	h := newHarness(t)
	h.ctrl.prefs.SetScriptDir(filepath.Join(h.dir, "gone"))

	h.ctrl.Start()

	assert.Empty(t, h.display.entries)
	assert.Equal(t, "No launchable items found", h.display.status)
}

func TestRequestRescanPicksUpNewFiles(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	require.Empty(t, h.display.entries)

	addScript(t, h.dir, "backup")
	h.ctrl.RequestRescan()
	h.ctrl.Tick()
	tickUntilIdle(t, h.ctrl)

	require.Len(t, h.ctrl.Entries(), 1)
	assert.Equal(t, "1 script", h.display.status)
}

func TestRescanWhileBusyRunsOnceMore(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.Rescan()
	first := h.ctrl.scanTask
	h.ctrl.Rescan()
	h.ctrl.Rescan()
	assert.Same(t, first, h.ctrl.scanTask)
	assert.True(t, h.ctrl.rescanAgain)

	tickUntilIdle(t, h.ctrl)
	assert.False(t, h.ctrl.rescanAgain)
}

func TestPickFolderSwitchesDirectory(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	other := t.TempDir()
	addScript(t, other, "a.sh")
	addScript(t, other, "b.sh")

	release := make(chan struct{})
	h.ctrl.PickFolder(func() (string, bool, error) {
		<-release
		return other, true, nil
	})

	// The dialog is still open: ticking must not block or change anything.
	h.ctrl.Tick()
	assert.Equal(t, h.dir, h.display.dir)
	assert.True(t, h.ctrl.Busy())

	close(release)
	tickUntilIdle(t, h.ctrl)

	assert.Equal(t, other, h.display.dir)
	assert.Len(t, h.display.entries, 2)
	assert.Equal(t, other, h.watcher.dirs[len(h.watcher.dirs)-1])

	saved, err := config.Load(h.app.PreferencesPath, h.app)
	require.NoError(t, err)
	assert.Equal(t, other, saved.Active().ScriptDir)
}

func TestPickFolderDismissedKeepsDirectory(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.PickFolder(func() (string, bool, error) { return "", false, nil })
	tickUntilIdle(t, h.ctrl)

	assert.Equal(t, h.dir, h.display.dir)
	assert.Equal(t, "Ready", h.display.status)
	assert.Empty(t, h.display.errors)
}

func TestPickFolderErrorIsShown(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.PickFolder(func() (string, bool, error) { return "", false, errors.New("portal unavailable") })
	tickUntilIdle(t, h.ctrl)

	require.Len(t, h.display.errors, 1)
	assert.EqualError(t, h.display.errors[0], "portal unavailable")
}

func TestPickFolderPanicIsLostQuietly(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.PickFolder(func() (string, bool, error) { panic("dialog crashed") })
	tickUntilIdle(t, h.ctrl)

	assert.Equal(t, h.dir, h.display.dir)
	assert.Equal(t, "Folder selection failed", h.display.status)
}

func TestLaunch(t *testing.T) {
	h := newHarness(t)
	path := addScript(t, h.dir, "My Script.sh")
	h.ctrl.Start()
	entry := h.ctrl.Entries()[0]

	h.ctrl.Launch(entry)
	h.ctrl.Launch(entry)

	assert.Equal(t, []string{path, path}, h.launcher.launched)
	assert.Equal(t, "Launched My Script", h.display.status)
}

func TestLaunchFailureIsReported(t *testing.T) {
	h := newHarness(t)
	cause := &launcher.LaunchError{Path: "/x", Command: []string{"xterm"}, Err: errors.New("not found")}
	h.launcher.err = cause

	h.ctrl.Launch(scanner.Entry{Path: "/x"})

	require.Len(t, h.display.errors, 1)
	assert.ErrorIs(t, h.display.errors[0], launcher.ErrSpawnFailed)
	assert.Equal(t, "Could not launch x", h.display.status)
}

func TestSetColumnsPersists(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.SetColumns(5)

	assert.Equal(t, 5, h.display.columns)
	saved, err := config.Load(h.app.PreferencesPath, h.app)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Active().Columns)
}

func TestProfiles(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.AddProfile(" tools ")
	tickUntilIdle(t, h.ctrl)

	assert.Equal(t, []string{config.DefaultProfile, "tools"}, h.display.profiles)
	assert.Equal(t, "tools", h.display.active)

	h.ctrl.AddProfile("tools")
	require.Len(t, h.display.errors, 1)
	assert.ErrorIs(t, h.display.errors[0], config.ErrDuplicateProfile)

	h.ctrl.SelectProfile("missing")
	require.Len(t, h.display.errors, 2)
	assert.ErrorIs(t, h.display.errors[1], config.ErrProfileNotFound)
}

func TestStaleScanIsDiscarded(t *testing.T) {
	h := newHarness(t)
	addScript(t, h.dir, "old.sh")
	h.ctrl.Start()
	require.Len(t, h.display.entries, 1)

	h.ctrl.apply(scanResult{dir: "/elsewhere", entries: []scanner.Entry{{Path: "/elsewhere/x"}}})

	require.Len(t, h.display.entries, 1)
	assert.Equal(t, "old", h.display.entries[0].Name())
}
