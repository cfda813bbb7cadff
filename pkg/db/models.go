package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

// The two record domains supported by the app. Tasks carry a user-set
// priority; work orders derive their urgency tier from the due date.
const (
	DomainTask      = "task"
	DomainWorkOrder = "workorder"
)

// DefaultTier returns the tier a record falls back to in the given domain,
// both at creation and when a stored value doesn't parse.
func DefaultTier(domain string) duedate.Tier {
	if domain == DomainWorkOrder {
		return duedate.TierMedium
	}

	return duedate.TierHigh
}

// Record is a single task or work-order line.
type Record struct {
	// ID is assigned at creation and never changes or gets reused.
	ID    uuid.UUID
	Title string
	Done  bool
	// Tier is the priority (task domain) or the derived urgency (work-order
	// domain). Always one of the three enumerated tiers.
	Tier duedate.Tier
	// Due is the committed due date; zero means no date is set.
	Due duedate.Date
	// DueRaw holds unparseable due input verbatim in the work-order domain,
	// where the due field doubles as free text. Empty for tasks.
	DueRaw string
	// Pending is a staged due-date change, set only while this record is the
	// one under active edit. It never reaches bucketing until committed.
	Pending duedate.Date
	Notes   string
	// CreatedAt is immutable; ordering ties fall back to Seq, not this.
	CreatedAt time.Time
	// Seq is the insertion index in the whole collection. It is assigned once
	// and never re-derived from list position, which keeps sorts idempotent.
	Seq int
}

// HasPending reports whether a staged due-date change is waiting to commit.
func (r *Record) HasPending() bool {
	return !r.Pending.IsZero()
}
