package duedate

import (
	"time"
)

// Bucket keys for the relative groups. Dates that are not today, tomorrow, or
// the next Monday get a key derived from the literal date ("weekday-<date>"),
// which keeps the key stable as now advances; only the label and group
// membership change when now crosses the date.
const (
	KeyToday      = "today"
	KeyTomorrow   = "tomorrow"
	KeyNextMonday = "next-monday"
	KeyNoDate     = "no-date"

	weekdayKeyPrefix = "weekday-"
)

// NextMonday returns the next Monday strictly after today; when today is
// itself a Monday that is today+7.
func NextMonday(today Date) Date {
	days := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	return today.AddDays(days)
}

// BucketKey maps a due date onto its relative bucket key for the given now.
func BucketKey(due Date, now time.Time) string {
	if due.IsZero() {
		return KeyNoDate
	}

	today := FromTime(now)

	switch due {
	case today:
		return KeyToday
	case today.AddDays(1):
		return KeyTomorrow
	case NextMonday(today):
		return KeyNextMonday
	}

	return weekdayKeyPrefix + due.String()
}

// BucketLabel returns the bare label for the bucket the due date falls in.
// Grouping headers use this form.
func BucketLabel(due Date, now time.Time) string {
	switch BucketKey(due, now) {
	case KeyNoDate:
		return "No Date"
	case KeyToday:
		return "Today"
	case KeyTomorrow:
		return "Tomorrow"
	case KeyNextMonday:
		return "Next Monday"
	}

	return due.Weekday().String()
}

// DisplayLabel returns the label with the short-form date appended in
// parentheses, e.g. "Tomorrow (03/05/25)". Used everywhere except grouping
// headers.
func DisplayLabel(due Date, now time.Time) string {
	if due.IsZero() {
		return "No Date"
	}

	return BucketLabel(due, now) + " (" + due.Short() + ")"
}

// Option is one selectable due date.
type Option struct {
	Key   string
	Label string
	Date  Date
}

// Options enumerates the selectable relative due dates for the given now. The
// sequence is a function of now and is rebuilt on every call.
//
// "Today" is always offered. From Friday through Sunday the only other option
// is "Next Monday" (new work is not nominally due over the weekend). Monday
// through Thursday the list continues with "Tomorrow", each remaining weekday
// through Friday, and finally "Next Monday".
func Options(now time.Time) []Option {
	today := FromTime(now)

	opts := []Option{{Key: KeyToday, Label: DisplayLabel(today, now), Date: today}}

	switch today.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		monday := NextMonday(today)

		return append(opts, Option{Key: KeyNextMonday, Label: DisplayLabel(monday, now), Date: monday})
	}

	tomorrow := today.AddDays(1)
	opts = append(opts, Option{Key: KeyTomorrow, Label: DisplayLabel(tomorrow, now), Date: tomorrow})

	for d := tomorrow.AddDays(1); d.Weekday() != time.Saturday; d = d.AddDays(1) {
		opts = append(opts, Option{Key: BucketKey(d, now), Label: DisplayLabel(d, now), Date: d})
	}

	monday := NextMonday(today)

	return append(opts, Option{Key: KeyNextMonday, Label: DisplayLabel(monday, now), Date: monday})
}
