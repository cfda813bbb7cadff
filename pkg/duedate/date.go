package duedate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day or timezone component. The zero
// value means "no date". All due-date comparisons in the system go through
// this type.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromTime returns the calendar date of t in its own location (local
// wall-clock day for time.Now()).
func FromTime(t time.Time) Date {
	y, m, d := t.Date()

	return Date{Year: y, Month: int(m), Day: d}
}

// IsZero reports whether no date is set.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Short returns the zero-padded MM/DD/YY display form.
func (d Date) Short() string {
	return fmt.Sprintf("%02d/%02d/%02d", d.Month, d.Day, d.Year%100)
}

// utc anchors the date at midnight UTC. Only used for arithmetic; UTC avoids
// DST making a day 23 or 25 hours long.
func (d Date) utc() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.utc().AddDate(0, 0, n))
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.utc().Before(other.utc())
}

// DaysBetween returns the signed day count from one date to another, negative
// when to is in the past relative to from.
func DaysBetween(from, to Date) int {
	return int(to.utc().Sub(from.utc()).Hours() / 24)
}

var (
	isoPattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	shortPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
)

// Normalize parses free-form date input into a canonical Date. It accepts the
// canonical YYYY-MM-DD form and the short M/D/YYYY or M/D/YY form (two-digit
// years read as 2000+YY). Short-form month must be 1-12 and day 1-31; there is
// deliberately no month-length or leap-year check, so an over-range day for a
// short month passes through as entered. The all-zero ISO form is rejected:
// it would otherwise collapse into the zero Date, which means "no date". Any
// other shape is rejected and the caller keeps its previous value.
func Normalize(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)

	if m := isoPattern.FindStringSubmatch(raw); m != nil {
		date := Date{
			Year:  atoi(m[1]),
			Month: atoi(m[2]),
			Day:   atoi(m[3]),
		}

		if date.IsZero() {
			return Date{}, false
		}

		return date, true
	}

	if m := shortPattern.FindStringSubmatch(raw); m != nil {
		month := atoi(m[1])
		day := atoi(m[2])
		year := atoi(m[3])

		if len(m[3]) == 2 {
			year += 2000
		}

		if month < 1 || month > 12 || day < 1 || day > 31 {
			return Date{}, false
		}

		return Date{Year: year, Month: month, Day: day}, true
	}

	return Date{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)

	return n
}
