package controller

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/shearluck21/todo-wo-tracker/pkg/board"
	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

// Controller mediates between the board and the view. All date, bucket, and
// ordering decisions live in the board and duedate packages; this package
// only renders them and routes input.
type Controller struct {
	ctx    context.Context
	board  *board.Board
	clock  duedate.Clock
	domain string

	app     *tview.Application
	pages   *tview.Pages
	table   *tview.Table
	content *GroupContent

	form       *tview.Form
	titleField *tview.InputField
	dueField   *tview.InputField
	dueDrop    *tview.DropDown
	tierDrop   *tview.DropDown
	notesField *tview.InputField
	dueOptions []duedate.Option
	editing    *db.Record

	selected *db.Record
	events   map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, domain string, b *board.Board, clock duedate.Clock) (*Controller, error) {
	c := Controller{
		ctx:    ctx,
		board:  b,
		clock:  clock,
		domain: domain,
		app:    tview.NewApplication(),
	}

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go builds the pages and starts the app; it blocks until the app stops.
func (c *Controller) Go() {
	c.pages = tview.NewPages()

	c.content = &GroupContent{}
	c.table = c.getTable()

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.getHeader(), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.table, 1, 0, 1, 1, 0, 0, true)

	c.pages.AddPage("list", grid, true, true)
	c.pages.AddPage("form", c.getFormGrid(), true, false)

	c.refresh()

	c.app.SetInputCapture(c.handleKeys)

	if err := c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run(); err != nil {
		panic(err)
	}
}

// Redraw re-renders from outside the UI event loop; the rollover scheduler
// calls this after a timer-driven collection update.
func (c *Controller) Redraw() {
	c.app.QueueUpdateDraw(c.refresh)
}

func (c *Controller) refresh() {
	if c.content == nil {
		return
	}

	c.content.Update(c.board.Groups(), c.clock.Now(), c.board.Pinned())

	if c.selected != nil && c.content.rowOf(c.selected.ID) == -1 {
		c.selected = nil
	}
}

func (c *Controller) getTable() *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(c.content)
	table.SetSelectable(true, false)
	table.SetSelectionChangedFunc(c.setCurrentRow)
	table.Select(1, 0).SetFixed(1, 0)

	return table
}

// when the row selection changes, update the selected record.
func (c *Controller) setCurrentRow(row, col int) {
	c.selected = c.content.Record(row)
}

func (c *Controller) getHeader() *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	title := "todo tracker"
	if c.domain == db.DomainWorkOrder {
		title = "work orders"
	}

	table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))

	shortcuts := make([]string, 0, len(c.events))
	for key, event := range c.events {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description))
	}

	sort.Strings(shortcuts)

	for i, text := range shortcuts {
		table.SetCell(1+i/3, i%3, tview.NewTableCell(text).SetExpansion(1))
	}

	return table
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.events[key]; ok {
		return k.Action(evt)
	}

	return evt
}
