package controller

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/shearluck21/todo-wo-tracker/pkg/board"
	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

const notesTitleRatio = 2

type rowRef struct {
	header bool
	label  string
	record *db.Record
}

// GroupContent implements tview.TableContent over the flattened bucket
// groups: one unselectable header row per bucket (bare label, per the display
// rules) followed by its ordered records.
type GroupContent struct {
	tview.TableContentReadOnly
	rows   []rowRef
	now    time.Time
	pinned uuid.UUID
}

// Update replaces the rendered rows from a fresh grouping pass.
func (g *GroupContent) Update(groups []board.Group, now time.Time, pinned uuid.UUID) {
	rows := []rowRef{}

	for _, group := range groups {
		rows = append(rows, rowRef{header: true, label: group.Label})

		for _, record := range group.Records {
			rows = append(rows, rowRef{record: record})
		}
	}

	g.rows = rows
	g.now = now
	g.pinned = pinned
}

// Record returns the record at the given table row, or nil for the column
// header, group headers, and out-of-range rows.
func (g *GroupContent) Record(row int) *db.Record {
	if idx := row - 1; idx >= 0 && idx < len(g.rows) && !g.rows[idx].header {
		return g.rows[idx].record
	}

	return nil
}

// rowOf returns the table row of the record with the given id, or -1.
func (g *GroupContent) rowOf(id uuid.UUID) int {
	for i, ref := range g.rows {
		if ref.record != nil && ref.record.ID == id {
			return i + 1
		}
	}

	return -1
}

// dueText renders the due field. The pinned record substitutes its staged
// date for display only; the work-order raw fallback shows verbatim.
func (g *GroupContent) dueText(record *db.Record) string {
	due := record.Due
	if record.ID == g.pinned && record.HasPending() {
		due = record.Pending
	}

	if due.IsZero() && record.DueRaw != "" {
		return record.DueRaw
	}

	return duedate.DisplayLabel(due, g.now)
}

func tierColor(tier duedate.Tier) tcell.Color {
	switch tier {
	case duedate.TierHigh:
		return tcell.ColorRed
	case duedate.TierMedium:
		return tcell.ColorYellow
	}

	return tcell.ColorGreen
}

// GetCell returns the cell at the given position or nil if no cell.
func (g *GroupContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("title").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("due").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("priority").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 3:
			return tview.NewTableCell("notes").SetExpansion(notesTitleRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	idx := row - 1
	if idx >= len(g.rows) {
		return nil
	}

	ref := g.rows[idx]

	if ref.header {
		if col == 0 {
			return tview.NewTableCell("[green::b]" + ref.label).SetExpansion(1).SetSelectable(false)
		}

		return tview.NewTableCell("").SetSelectable(false)
	}

	record := ref.record

	switch col {
	case 0:
		title := record.Title
		if record.Done {
			title = "[gray]" + title
		}

		return tview.NewTableCell(title).SetExpansion(1).SetReference(record)
	case 1:
		return tview.NewTableCell(g.dueText(record)).SetExpansion(1)
	case 2:
		return tview.NewTableCell(record.Tier.String()).SetTextColor(tierColor(record.Tier)).SetExpansion(1)
	case 3:
		return tview.NewTableCell(record.Notes).SetExpansion(notesTitleRatio)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (g *GroupContent) GetRowCount() int {
	return len(g.rows) + 1
}

// GetColumnCount returns the number of columns in the table.
func (g *GroupContent) GetColumnCount() int {
	return 4
}
