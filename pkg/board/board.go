package board

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

// Store is the persistence provider the board depends on: the record
// collection plus the last-cleanup stamp. Saves are best-effort.
type Store interface {
	LoadRecords(ctx context.Context, fallback duedate.Tier) ([]*db.Record, error)
	SaveRecords(ctx context.Context, records []*db.Record) error
	LastCleanup(ctx context.Context) (duedate.Date, error)
	SetLastCleanup(ctx context.Context, day duedate.Date) error
}

// Board owns the record collection and the single pinned id. Every mutation
// goes through it, holds its lock for the duration, and persists on the way
// out, so there is exactly one writer and no partial updates.
type Board struct {
	mu      sync.Mutex
	domain  string
	store   Store
	clock   duedate.Clock
	records []*db.Record
	pinned  uuid.UUID
	nextSeq int
}

// New loads the stored collection into a Board. Malformed persisted data is
// treated as an empty collection rather than an error.
func New(ctx context.Context, domain string, store Store, clock duedate.Clock) *Board {
	records, err := store.LoadRecords(ctx, db.DefaultTier(domain))
	if err != nil {
		log.Warn().Err(err).Msg("could not load records; starting with an empty collection")

		records = []*db.Record{}
	}

	// insertion indices are reassigned from load order once and then only
	// ever handed out, never re-derived
	for i, record := range records {
		record.Seq = i
	}

	return &Board{
		domain:  domain,
		store:   store,
		clock:   clock,
		records: records,
		nextSeq: len(records),
	}
}

// Records returns a snapshot of the collection in insertion order. The
// records are value copies: the timer goroutines keep mutating the live
// collection under the lock, so callers must never share memory with it.
func (b *Board) Records() []*db.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*db.Record, len(b.records))
	for i, record := range b.records {
		clone := *record
		out[i] = &clone
	}

	return out
}

// Pinned returns the id of the record under active edit, or uuid.Nil.
func (b *Board) Pinned() uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pinned
}

func (b *Board) find(id uuid.UUID) *db.Record {
	for _, record := range b.records {
		if record.ID == id {
			return record
		}
	}

	return nil
}

// Add creates a record with the domain defaults: tasks start at tier high and
// due today, work orders at tier medium with no date. The new record begins
// in the editing state, which commits and unpins any previous edit. The
// returned record is a copy; further changes go through board methods by id.
func (b *Board) Add(ctx context.Context, title string) *db.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	record := &db.Record{
		ID:        uuid.New(),
		Title:     title,
		Tier:      db.DefaultTier(b.domain),
		CreatedAt: b.clock.Now(),
		Seq:       b.nextSeq,
	}
	b.nextSeq++

	if b.domain == db.DomainTask {
		record.Due = duedate.FromTime(b.clock.Now())
	}

	b.records = append(b.records, record)

	b.commitLocked()
	b.pinned = record.ID

	b.persistLocked(ctx)

	clone := *record

	return &clone
}

// Delete removes a record from the collection.
func (b *Board) Delete(ctx context.Context, id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, record := range b.records {
		if record.ID == id {
			b.records = append(b.records[:i], b.records[i+1:]...)

			break
		}
	}

	if b.pinned == id {
		b.pinned = uuid.Nil
	}

	b.persistLocked(ctx)
}

// Toggle flips a record's done flag.
func (b *Board) Toggle(ctx context.Context, id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if record := b.find(id); record != nil {
		record.Done = !record.Done
		b.persistLocked(ctx)
	}
}

// SetTitle updates a record's title.
func (b *Board) SetTitle(ctx context.Context, id uuid.UUID, title string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if record := b.find(id); record != nil {
		record.Title = title
		b.persistLocked(ctx)
	}
}

// SetNotes updates a record's notes.
func (b *Board) SetNotes(ctx context.Context, id uuid.UUID, notes string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if record := b.find(id); record != nil {
		record.Notes = notes
		b.persistLocked(ctx)
	}
}

// SetTier sets the priority directly. Only meaningful in the task domain; the
// work-order tier is derived and ignores direct writes. Changing priority
// counts as beginning an edit, so the record pins in place.
func (b *Board) SetTier(ctx context.Context, id uuid.UUID, tier duedate.Tier) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.domain == db.DomainWorkOrder {
		return
	}

	record := b.find(id)
	if record == nil {
		return
	}

	b.beginEditLocked(id)
	record.Tier = tier
	b.persistLocked(ctx)
}

// BeginEdit pins the record for editing. Starting an edit on a new record
// implicitly commits and unpins any previously pinned one; at most one record
// is ever pinned.
func (b *Board) BeginEdit(ctx context.Context, id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.beginEditLocked(id)
	b.persistLocked(ctx)
}

func (b *Board) beginEditLocked(id uuid.UUID) {
	if b.pinned == id {
		return
	}

	b.commitLocked()
	b.pinned = id
}

// StageDue stages a due-date change on the pinned record. The committed due
// date, and with it bucket membership, stays untouched until EndEdit.
func (b *Board) StageDue(id uuid.UUID, due duedate.Date) {
	b.mu.Lock()
	defer b.mu.Unlock()

	record := b.find(id)
	if record == nil {
		return
	}

	b.beginEditLocked(id)
	record.Pending = due
}

// StageDueInput normalizes raw due-date input and stages it, reporting
// whether the input parsed. Invalid input never corrupts the committed date:
// tasks reject it outright, work orders retain the text verbatim in DueRaw
// (the field doubles as free text there) until it becomes parseable.
func (b *Board) StageDueInput(id uuid.UUID, raw string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	record := b.find(id)
	if record == nil {
		return false
	}

	b.beginEditLocked(id)

	due, ok := duedate.Normalize(raw)
	if !ok {
		if b.domain == db.DomainWorkOrder {
			record.DueRaw = raw
		}

		return false
	}

	record.Pending = due

	return true
}

// EndEdit commits the pinned record's staged due date and unpins it. There is
// no discard path; ending an edit always commits.
func (b *Board) EndEdit(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.commitLocked()
	b.persistLocked(ctx)
}

// commitLocked copies the staged due date into the committed one, re-derives
// the work-order tier, and clears the pin.
func (b *Board) commitLocked() {
	record := b.find(b.pinned)
	b.pinned = uuid.Nil

	if record == nil {
		return
	}

	if record.HasPending() {
		record.Due = record.Pending
		record.Pending = duedate.Date{}
		record.DueRaw = ""
	}

	if b.domain == db.DomainWorkOrder {
		record.Tier = duedate.Classify(record.Due, b.clock.Now())
	}
}

// RecomputeTiers re-derives every work-order tier from the current time, so
// urgency transitions as due dates drift closer without user action. No-op in
// the task domain, where the tier is user-owned.
func (b *Board) RecomputeTiers(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.domain != db.DomainWorkOrder {
		return
	}

	now := b.clock.Now()
	changed := false

	for _, record := range b.records {
		if tier := duedate.Classify(record.Due, now); tier != record.Tier {
			record.Tier = tier
			changed = true
		}
	}

	if changed {
		b.persistLocked(ctx)
	}
}

// Rollover re-evaluates the collection for the current day: work-order tiers
// are recomputed, and completed records whose due date has fallen before
// today are pruned. The persisted cleanup stamp limits the prune to once per
// calendar day; records with no due date are never pruned.
func (b *Board) Rollover(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	today := duedate.FromTime(now)

	if b.domain == db.DomainWorkOrder {
		for _, record := range b.records {
			record.Tier = duedate.Classify(record.Due, now)
		}
	}

	stamp, err := b.store.LastCleanup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not read cleanup stamp")
	}

	if stamp != today {
		kept := b.records[:0]

		for _, record := range b.records {
			if record.Done && !record.Due.IsZero() && record.Due.Before(today) {
				if b.pinned == record.ID {
					b.pinned = uuid.Nil
				}

				continue
			}

			kept = append(kept, record)
		}

		b.records = kept

		if err := b.store.SetLastCleanup(ctx, today); err != nil {
			log.Warn().Err(err).Msg("could not save cleanup stamp")
		}
	}

	b.persistLocked(ctx)
}

// persistLocked writes the collection through to the store. The store is a
// convenience cache, so a failed write is logged and swallowed.
func (b *Board) persistLocked(ctx context.Context) {
	if err := b.store.SaveRecords(ctx, b.records); err != nil {
		log.Warn().Err(err).Msg("best-effort save failed")
	}
}

// Group is one rendered bucket: a stable key, the bare header label, and the
// records ordered for display.
type Group struct {
	Key     string
	Label   string
	Date    duedate.Date
	Records []*db.Record
}

// Groups buckets the collection by committed due date and orders each bucket.
// Staged edits do not move records here: bucketing always reads the committed
// date, and the pinned record leads its current group. Dated groups come out
// in calendar order with the no-date group last.
//
// Like Records, the result is a value snapshot. The draw loop reads it on the
// UI goroutine while the rollover timers mutate the live collection, so the
// two must not share memory.
func (b *Board) Groups() []Group {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()

	byKey := map[string]*Group{}
	groups := []*Group{}

	for _, record := range b.records {
		key := duedate.BucketKey(record.Due, now)

		group, ok := byKey[key]
		if !ok {
			group = &Group{
				Key:   key,
				Label: duedate.BucketLabel(record.Due, now),
				Date:  record.Due,
			}
			byKey[key] = group
			groups = append(groups, group)
		}

		clone := *record
		group.Records = append(group.Records, &clone)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Date.IsZero() != groups[j].Date.IsZero() {
			return groups[j].Date.IsZero()
		}

		return groups[i].Date.Before(groups[j].Date)
	})

	out := make([]Group, 0, len(groups))

	for _, group := range groups {
		group.Records = Order(group.Records, group.Key, b.pinned)
		out = append(out, *group)
	}

	return out
}
