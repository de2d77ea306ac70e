package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"quick-launch/internal/gui/widgets"
	"quick-launch/internal/scanner"
)

// View handles all UI components and their layout
type View struct {
	window     fyne.Window
	controller *Controller

	toolbar       *widgets.Toolbar
	grid          *widgets.LaunchGrid
	statusBar     *widgets.StatusBar
	mainContainer *fyne.Container
}

func NewView(window fyne.Window) *View {
	view := &View{
		window: window,
	}

	view.setupComponents()
	view.setupLayout()

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupComponents() {
	v.toolbar = widgets.NewToolbar()
	v.grid = widgets.NewLaunchGrid()
	v.statusBar = widgets.NewStatusBar()
}

func (v *View) setupLayout() {
	v.mainContainer = container.NewBorder(
		v.toolbar.GetContainer(),
		v.statusBar.GetContainer(),
		nil, nil,
		v.grid.GetContainer(),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetPickHandler(func() { v.controller.PickFolder(v.PickFolder) })
	v.toolbar.SetRevealHandler(v.controller.RevealFolder)
	v.toolbar.SetRefreshHandler(v.controller.Rescan)
	v.toolbar.SetAddProfileHandler(v.askProfileName)
	v.toolbar.SetProfileHandler(v.controller.SelectProfile)
	v.toolbar.SetColumnsHandler(v.controller.SetColumns)

	v.grid.SetLaunchHandler(v.controller.Launch)
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func (v *View) ShowEntries(entries []scanner.Entry, columns int) {
	v.toolbar.SetColumns(columns)
	v.grid.SetEntries(entries, columns)
}

func (v *View) SetDirectory(dir string) {
	v.toolbar.SetDirectory(dir)
}

func (v *View) SetProfiles(names []string, active string) {
	v.toolbar.SetProfiles(names, active)
}

func (v *View) SetStatus(text string) {
	v.statusBar.SetStatus(text)
}

func (v *View) ShowError(title string, err error) {
	dialog.ShowInformation(title, err.Error(), v.window)
}

// PickFolder blocks the calling goroutine until the folder dialog is closed.
// It must not be called on the UI goroutine; the controller runs it as a
// background task.
func (v *View) PickFolder() (string, bool, error) {
	type choice struct {
		dir string
		ok  bool
		err error
	}
	result := make(chan choice, 1)

	fyne.Do(func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			switch {
			case err != nil:
				result <- choice{err: err}
			case uri == nil:
				result <- choice{}
			default:
				result <- choice{dir: uri.Path(), ok: true}
			}
		}, v.window)
	})

	c := <-result
	return c.dir, c.ok, c.err
}

func (v *View) askProfileName() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Profile name")

	dialog.ShowForm("New profile", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(confirmed bool) {
			if confirmed && v.controller != nil {
				v.controller.AddProfile(entry.Text)
			}
		}, v.window)
}
