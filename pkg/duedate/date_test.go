package duedate_test

import (
	"testing"
	"time"

	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  duedate.Date
		valid bool
	}{
		{"iso form", "2025-03-04", duedate.Date{Year: 2025, Month: 3, Day: 4}, true},
		{"short form two digit year", "3/4/25", duedate.Date{Year: 2025, Month: 3, Day: 4}, true},
		{"short form four digit year", "3/4/2025", duedate.Date{Year: 2025, Month: 3, Day: 4}, true},
		{"short form zero padded", "03/04/25", duedate.Date{Year: 2025, Month: 3, Day: 4}, true},
		{"surrounding whitespace", " 3/4/25 ", duedate.Date{Year: 2025, Month: 3, Day: 4}, true},
		// Over-range day for a short month is accepted as-is; month length is
		// deliberately not validated.
		{"over-range day accepted", "2/31/25", duedate.Date{Year: 2025, Month: 2, Day: 31}, true},
		{"month out of range", "13/4/25", duedate.Date{}, false},
		{"month zero", "0/4/25", duedate.Date{}, false},
		{"day out of range", "3/32/25", duedate.Date{}, false},
		{"day zero", "3/0/25", duedate.Date{}, false},
		{"iso needs two digit fields", "2025-3-4", duedate.Date{}, false},
		// the zero value means "no date", so the all-zero form cannot parse
		{"all-zero iso rejected", "0000-00-00", duedate.Date{}, false},
		{"three digit year", "3/4/202", duedate.Date{}, false},
		{"not a date", "not a date", duedate.Date{}, false},
		{"empty", "", duedate.Date{}, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert := assert.New(t)

			got, valid := duedate.Normalize(tc.input)
			assert.Equal(tc.valid, valid)
			assert.Equal(tc.want, got)
		})
	}
}

func TestDateFormats(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	d := duedate.Date{Year: 2025, Month: 3, Day: 4}
	assert.Equal("2025-03-04", d.String())
	assert.Equal("03/04/25", d.Short())
}

func TestFromTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// late evening still belongs to the same wall-clock day
	now := time.Date(2025, 3, 4, 23, 59, 0, 0, time.Local)
	assert.Equal(duedate.Date{Year: 2025, Month: 3, Day: 4}, duedate.FromTime(now))
}

func TestAddDaysCrossesMonth(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	d := duedate.Date{Year: 2025, Month: 2, Day: 27}
	assert.Equal(duedate.Date{Year: 2025, Month: 3, Day: 1}, d.AddDays(2))
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	from := duedate.Date{Year: 2025, Month: 3, Day: 4}
	assert.Equal(0, duedate.DaysBetween(from, from))
	assert.Equal(10, duedate.DaysBetween(from, from.AddDays(10)))
	assert.Equal(-3, duedate.DaysBetween(from, from.AddDays(-3)))
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.True(duedate.Date{}.IsZero())
	assert.False(duedate.Date{Year: 2025, Month: 3, Day: 4}.IsZero())
}
