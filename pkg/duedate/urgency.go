package duedate

import (
	"strings"
	"time"
)

// Tier is a priority or urgency classification. The declaration order doubles
// as the sort rank: high sorts before medium sorts before low.
type Tier int

// The three tiers. In the task domain the tier is set directly by the user;
// in the work-order domain it is derived from the due date's distance.
const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	}

	return "medium"
}

// Rank returns the sort rank: high=0, medium=1, low=2.
func (t Tier) Rank() int {
	return int(t)
}

// ParseTier reads a stored tier value, coercing anything unrecognized to the
// given fallback so bad persisted data never produces an out-of-range tier.
func ParseTier(value string, fallback Tier) Tier {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return TierHigh
	case "medium":
		return TierMedium
	case "low":
		return TierLow
	}

	return fallback
}

// Urgency horizon in days: due under 5 weeks out (or overdue) is high, under
// 15 weeks is medium, anything further is low.
const (
	highHorizonDays   = 35
	mediumHorizonDays = 105
)

// Classify derives the urgency tier for a due date at the given now. No date
// classifies as low. The day distance may be negative (overdue), which still
// classifies as high.
func Classify(due Date, now time.Time) Tier {
	if due.IsZero() {
		return TierLow
	}

	switch d := DaysBetween(FromTime(now), due); {
	case d < highHorizonDays:
		return TierHigh
	case d < mediumHorizonDays:
		return TierMedium
	}

	return TierLow
}
