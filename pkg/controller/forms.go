package controller

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

const (
	titleMax = 50
	dueMax   = 20
	notesMax = 500
)

func (c *Controller) getFormGrid() *tview.Grid {
	c.initForm()

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.form, 0, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) initForm() {
	c.form = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddInputField("Due", "", dueMax, nil, nil).
		AddDropDown("Due Option", []string{}, -1, nil).
		AddInputField("Notes", "", notesMax, nil, nil)

	c.titleField, _ = c.form.GetFormItemByLabel("Title").(*tview.InputField)
	c.dueField, _ = c.form.GetFormItemByLabel("Due").(*tview.InputField)
	c.dueDrop, _ = c.form.GetFormItemByLabel("Due Option").(*tview.DropDown)
	c.notesField, _ = c.form.GetFormItemByLabel("Notes").(*tview.InputField)

	// work-order urgency is derived, so only tasks get a priority field
	if c.domain == db.DomainTask {
		c.form.AddDropDown("Priority", []string{"high", "medium", "low"}, 0, nil)
		c.tierDrop, _ = c.form.GetFormItemByLabel("Priority").(*tview.DropDown)
	}

	c.form.AddButton("Save", c.saveForm)
}

// switchToForm opens the edit surface for a record, creating one first when
// record is nil. Opening pins the record on the board, so it holds its place
// in the list until the form closes and the edit commits.
func (c *Controller) switchToForm(record *db.Record) {
	if record == nil {
		record = c.board.Add(c.ctx, "")
	} else {
		c.board.BeginEdit(c.ctx, record.ID)
	}

	c.editing = record

	c.titleField.SetText(record.Title)
	c.notesField.SetText(record.Notes)

	switch {
	case !record.Due.IsZero():
		c.dueField.SetText(record.Due.String())
	case record.DueRaw != "":
		c.dueField.SetText(record.DueRaw)
	default:
		c.dueField.SetText("")
	}

	// the selectable relative dates depend on now, so rebuild on every open
	c.dueOptions = duedate.Options(c.clock.Now())
	labels := make([]string, 0, len(c.dueOptions))

	for _, option := range c.dueOptions {
		labels = append(labels, option.Label)
	}

	c.dueDrop.SetOptions(labels, c.dueOptionSelected)
	c.dueDrop.SetCurrentOption(-1)

	if c.tierDrop != nil {
		c.tierDrop.SetCurrentOption(record.Tier.Rank())
	}

	c.form.SetFocus(0)
	c.pages.SwitchToPage("form")
	c.app.SetInputCapture(c.handleFormKeys)
}

// dueOptionSelected stages the picked relative date. Staging leaves the
// committed date alone, so the record will not jump buckets until Save.
func (c *Controller) dueOptionSelected(text string, index int) {
	if index < 0 || c.editing == nil {
		return
	}

	date := c.dueOptions[index].Date
	c.board.StageDue(c.editing.ID, date)
	c.dueField.SetText(date.String())
}

func (c *Controller) saveForm() {
	record := c.editing
	if record == nil {
		return
	}

	c.board.SetTitle(c.ctx, record.ID, c.titleField.GetText())
	c.board.SetNotes(c.ctx, record.ID, c.notesField.GetText())

	if c.tierDrop != nil {
		if _, tier := c.tierDrop.GetCurrentOption(); tier != "" {
			c.board.SetTier(c.ctx, record.ID, duedate.ParseTier(tier, record.Tier))
		}
	}

	if raw := strings.TrimSpace(c.dueField.GetText()); raw != "" && raw != record.Due.String() {
		if !c.board.StageDueInput(record.ID, raw) {
			log.Debug().Msgf("rejected due input '%s'; keeping previous value", raw)
		}
	}

	// closing the edit surface always commits; there is no discard path
	c.board.EndEdit(c.ctx)
	c.editing = nil

	c.refresh()
	c.pages.SwitchToPage("list")
	c.app.SetInputCapture(c.handleKeys)
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEscape {
		c.saveForm()

		return nil
	}

	return evt
}
