package board

import (
	"sort"

	"github.com/google/uuid"

	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

// Order sorts one bucket's records for display: tier rank first, insertion
// index as the tie-break. The today bucket is split into not-done before done
// with each half sorted independently. A pinned record is pulled out and
// placed first, ahead of priority order, while its edit is active. Both sort
// keys are position-independent, so ordering is idempotent.
func Order(records []*db.Record, bucketKey string, pinned uuid.UUID) []*db.Record {
	rest := make([]*db.Record, 0, len(records))

	var pin *db.Record

	for _, record := range records {
		if record.ID == pinned {
			pin = record

			continue
		}

		rest = append(rest, record)
	}

	var out []*db.Record

	if bucketKey == duedate.KeyToday {
		undone := make([]*db.Record, 0, len(rest))
		done := make([]*db.Record, 0, len(rest))

		for _, record := range rest {
			if record.Done {
				done = append(done, record)
			} else {
				undone = append(undone, record)
			}
		}

		sortByTier(undone)
		sortByTier(done)

		out = append(undone, done...)
	} else {
		sortByTier(rest)
		out = rest
	}

	if pin != nil {
		out = append([]*db.Record{pin}, out...)
	}

	return out
}

func sortByTier(records []*db.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Tier.Rank() != records[j].Tier.Rank() {
			return records[i].Tier.Rank() < records[j].Tier.Rank()
		}

		return records[i].Seq < records[j].Seq
	})
}
