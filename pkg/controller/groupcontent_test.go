package controller

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shearluck21/todo-wo-tracker/pkg/board"
	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

func contentNow() time.Time {
	return time.Date(2025, 3, 5, 10, 30, 0, 0, time.Local) // Wednesday
}

func TestGroupContentRows(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	first := &db.Record{ID: uuid.New(), Title: "water the plants", Tier: duedate.TierHigh}
	second := &db.Record{ID: uuid.New(), Title: "call the plumber", Tier: duedate.TierLow}

	content := &GroupContent{}
	content.Update([]board.Group{
		{Key: duedate.KeyToday, Label: "Today", Records: []*db.Record{first}},
		{Key: duedate.KeyNoDate, Label: "No Date", Records: []*db.Record{second}},
	}, contentNow(), uuid.Nil)

	// column header + 2 group headers + 2 records
	assert.Equal(5, content.GetRowCount())
	assert.Equal(4, content.GetColumnCount())

	assert.Nil(content.Record(0))
	assert.Nil(content.Record(1)) // group header
	assert.Equal(first, content.Record(2))
	assert.Nil(content.Record(3))
	assert.Equal(second, content.Record(4))
	assert.Nil(content.Record(99))

	assert.Equal(2, content.rowOf(first.ID))
	assert.Equal(4, content.rowOf(second.ID))
	assert.Equal(-1, content.rowOf(uuid.New()))

	// group headers carry the bare bucket label
	assert.Contains(content.GetCell(1, 0).Text, "Today")
	assert.Equal("water the plants", content.GetCell(2, 0).Text)
}

func TestGroupContentDueText(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	committed := duedate.Date{Year: 2025, Month: 3, Day: 6}
	staged := duedate.Date{Year: 2025, Month: 3, Day: 10}

	record := &db.Record{ID: uuid.New(), Title: "draft the report", Due: committed}

	content := &GroupContent{}
	content.Update([]board.Group{
		{Key: duedate.KeyTomorrow, Label: "Tomorrow", Records: []*db.Record{record}},
	}, contentNow(), uuid.Nil)

	assert.Equal("Tomorrow (03/06/25)", content.dueText(record))

	// while pinned, the staged date substitutes for display only
	record.Pending = staged
	content.Update([]board.Group{
		{Key: duedate.KeyTomorrow, Label: "Tomorrow", Records: []*db.Record{record}},
	}, contentNow(), record.ID)

	assert.Equal("Next Monday (03/10/25)", content.dueText(record))
}

func TestGroupContentRawFallback(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	record := &db.Record{ID: uuid.New(), Title: "descale the boiler", DueRaw: "after the thaw"}

	content := &GroupContent{}
	content.Update([]board.Group{
		{Key: duedate.KeyNoDate, Label: "No Date", Records: []*db.Record{record}},
	}, contentNow(), uuid.Nil)

	assert.Equal("after the thaw", content.dueText(record))
}
