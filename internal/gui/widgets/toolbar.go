package widgets

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"quick-launch/internal/config"
)

const MaxColumns = config.MaxColumns

type Toolbar struct {
	container     *fyne.Container
	pickButton    *widget.Button
	revealButton  *widget.Button
	refreshButton *widget.Button
	addButton     *widget.Button
	profileSelect *widget.Select
	columnsSelect *widget.Select
	dirLabel      *widget.Label

	// updating suppresses change handlers while the controller sets values.
	updating bool

	pickHandler    func()
	revealHandler  func()
	refreshHandler func()
	addHandler     func()
	profileHandler func(string)
	columnsHandler func(int)
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.pickButton = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), t.onPickClicked)
	t.pickButton.Importance = widget.HighImportance

	t.revealButton = widget.NewButtonWithIcon("", theme.FolderIcon(), t.onRevealClicked)
	t.refreshButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), t.onRefreshClicked)
	t.addButton = widget.NewButtonWithIcon("", theme.ContentAddIcon(), t.onAddClicked)

	t.profileSelect = widget.NewSelect(nil, t.onProfileChanged)
	t.profileSelect.PlaceHolder = "Profile"

	columns := make([]string, 0, MaxColumns)
	for i := 1; i <= MaxColumns; i++ {
		columns = append(columns, strconv.Itoa(i))
	}
	t.columnsSelect = widget.NewSelect(columns, t.onColumnsChanged)

	t.dirLabel = widget.NewLabel("")
	t.dirLabel.Truncation = fyne.TextTruncateEllipsis
}

func (t *Toolbar) buildLayout() {
	left := container.NewHBox(t.pickButton, t.revealButton, t.refreshButton)
	right := container.NewHBox(
		t.profileSelect,
		t.addButton,
		widget.NewSeparator(),
		widget.NewLabel("Columns"),
		t.columnsSelect,
	)

	t.container = container.NewVBox(
		container.NewBorder(nil, nil, left, right),
		t.dirLabel,
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetDirectory(dir string) {
	t.dirLabel.SetText(dir)
}

func (t *Toolbar) SetProfiles(names []string, active string) {
	t.updating = true
	defer func() { t.updating = false }()

	t.profileSelect.SetOptions(names)
	t.profileSelect.SetSelected(active)
}

func (t *Toolbar) SetColumns(n int) {
	t.updating = true
	defer func() { t.updating = false }()

	t.columnsSelect.SetSelected(strconv.Itoa(n))
}

func (t *Toolbar) SetPickHandler(handler func()) {
	t.pickHandler = handler
}

func (t *Toolbar) SetRevealHandler(handler func()) {
	t.revealHandler = handler
}

func (t *Toolbar) SetRefreshHandler(handler func()) {
	t.refreshHandler = handler
}

func (t *Toolbar) SetAddProfileHandler(handler func()) {
	t.addHandler = handler
}

func (t *Toolbar) SetProfileHandler(handler func(string)) {
	t.profileHandler = handler
}

func (t *Toolbar) SetColumnsHandler(handler func(int)) {
	t.columnsHandler = handler
}

func (t *Toolbar) onPickClicked() {
	if t.pickHandler != nil {
		t.pickHandler()
	}
}

func (t *Toolbar) onRevealClicked() {
	if t.revealHandler != nil {
		t.revealHandler()
	}
}

func (t *Toolbar) onRefreshClicked() {
	if t.refreshHandler != nil {
		t.refreshHandler()
	}
}

func (t *Toolbar) onAddClicked() {
	if t.addHandler != nil {
		t.addHandler()
	}
}

func (t *Toolbar) onProfileChanged(name string) {
	if t.updating || t.profileHandler == nil {
		return
	}
	t.profileHandler(name)
}

func (t *Toolbar) onColumnsChanged(value string) {
	if t.updating || t.columnsHandler == nil {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	t.columnsHandler(n)
}
