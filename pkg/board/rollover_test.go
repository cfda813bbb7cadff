package board_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shearluck21/todo-wo-tracker/pkg/board"
	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

func TestNextMidnight(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2025, 3, 5, 10, 30, 12, 0, time.Local)
	next := board.NextMidnight(now)

	assert.Equal(time.Date(2025, 3, 6, 0, 0, 0, 0, time.Local), next)
	assert.True(next.After(now))
	assert.True(next.Sub(now) <= 24*time.Hour)

	// just before midnight still arms for the following day
	late := time.Date(2025, 3, 5, 23, 59, 59, 0, time.Local)
	assert.Equal(time.Date(2025, 3, 6, 0, 0, 0, 0, time.Local), board.NextMidnight(late))
}

func TestSchedulerStartRunsRollover(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	today := duedate.FromTime(wednesday())
	store := &fakeStore{records: []*db.Record{
		{ID: uuid.New(), Title: "stale", Done: true, Due: today.AddDays(-1)},
	}}

	ctx := context.Background()
	b := board.New(ctx, db.DomainTask, store, fixedClock(wednesday()))

	s := board.NewScheduler(b, fixedClock(wednesday()), nil)
	s.Start(ctx)
	defer s.Stop()

	assert.Equal(0, len(b.Records()))
	assert.Equal(today, store.stamp)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := board.NewScheduler(
		board.New(context.Background(), db.DomainTask, &fakeStore{}, fixedClock(wednesday())),
		fixedClock(wednesday()),
		nil,
	)

	s.Stop()
	s.Stop()
}
