package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"quick-launch/internal/scanner"
)

// LaunchGrid shows one button per entry, laid out in a fixed number of
// columns inside a vertical scroller.
type LaunchGrid struct {
	scroll  *container.Scroll
	grid    *fyne.Container
	buttons []*widget.Button
	empty   *widget.Label

	launchHandler func(scanner.Entry)
}

func NewLaunchGrid() *LaunchGrid {
	g := &LaunchGrid{
		grid:  container.NewGridWithColumns(1),
		empty: widget.NewLabel("No launchable items found"),
	}
	g.empty.Alignment = fyne.TextAlignCenter
	g.scroll = container.NewVScroll(g.grid)
	return g
}

func (g *LaunchGrid) GetContainer() fyne.CanvasObject {
	return g.scroll
}

func (g *LaunchGrid) SetLaunchHandler(handler func(scanner.Entry)) {
	g.launchHandler = handler
}

// SetEntries rebuilds the grid. The whole grid is replaced; nothing is
// diffed against the previous entries.
func (g *LaunchGrid) SetEntries(entries []scanner.Entry, columns int) {
	if columns < 1 {
		columns = 1
	}

	buttons := make([]*widget.Button, 0, len(entries))
	objects := make([]fyne.CanvasObject, 0, len(entries))
	for _, entry := range entries {
		entry := entry
		button := widget.NewButton(entry.Name(), func() {
			if g.launchHandler != nil {
				g.launchHandler(entry)
			}
		})
		buttons = append(buttons, button)
		objects = append(objects, button)
	}
	g.buttons = buttons
	if len(objects) == 0 {
		objects = append(objects, g.empty)
		columns = 1
	}

	g.grid.Layout = layout.NewGridLayoutWithColumns(columns)
	g.grid.Objects = objects
	g.grid.Refresh()
	g.scroll.ScrollToTop()
}

// Buttons returns the buttons currently shown, in entry order.
func (g *LaunchGrid) Buttons() []*widget.Button {
	return g.buttons
}
