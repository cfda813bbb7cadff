package db_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

func getDB(assert *assert.Assertions) (*db.Database, string) {
	tempFile, err := os.CreateTemp("", "test_database*.sqlite")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	return database, tempFile.Name()
}

func someRecord(seq int) *db.Record {
	return &db.Record{
		ID:        uuid.New(),
		Title:     "replace the hallway light",
		Tier:      duedate.TierHigh,
		Due:       duedate.Date{Year: 2025, Month: 3, Day: 5},
		Notes:     "ladder is in the garage",
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Seq:       seq,
	}
}

func TestNewDatabaseBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.NewDatabase(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(database)
	assert.NotNil(err)
}

func TestNewDatabaseEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	defer database.Close()

	records, err := database.LoadRecords(context.Background(), duedate.TierHigh)
	assert.Nil(err)
	assert.Equal(0, len(records))

	stamp, err := database.LastCleanup(context.Background())
	assert.Nil(err)
	assert.True(stamp.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	defer database.Close()

	ctx := context.Background()

	first := someRecord(0)
	second := &db.Record{
		ID:        uuid.New(),
		Title:     "sort the mail",
		Done:      true,
		Tier:      duedate.TierLow,
		Notes:     "",
		CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		Seq:       1,
	}

	assert.Nil(database.SaveRecords(ctx, []*db.Record{first, second}))

	records, err := database.LoadRecords(ctx, duedate.TierHigh)
	assert.Nil(err)
	assert.Equal(2, len(records))

	assert.Equal(first.ID, records[0].ID)
	assert.Equal(first.Title, records[0].Title)
	assert.Equal(first.Due, records[0].Due)
	assert.Equal(first.Notes, records[0].Notes)
	assert.Equal(first.CreatedAt, records[0].CreatedAt)
	assert.Equal(0, records[0].Seq)
	assert.False(records[0].Done)

	assert.Equal(second.ID, records[1].ID)
	assert.True(records[1].Done)
	assert.True(records[1].Due.IsZero())
	assert.Equal(duedate.TierLow, records[1].Tier)
}

func TestSaveReplacesCollection(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	defer database.Close()

	ctx := context.Background()

	assert.Nil(database.SaveRecords(ctx, []*db.Record{someRecord(0), someRecord(1), someRecord(2)}))

	keeper := someRecord(3)
	assert.Nil(database.SaveRecords(ctx, []*db.Record{keeper}))

	records, err := database.LoadRecords(ctx, duedate.TierHigh)
	assert.Nil(err)
	assert.Equal(1, len(records))
	assert.Equal(keeper.ID, records[0].ID)
}

// corrupt rows coerce field by field instead of failing the load.
func TestLoadCoercesBadData(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(assert)
	defer database.Close()

	conn, err := sql.Open("sqlite3", filename)
	assert.Nil(err)

	defer conn.Close()

	_, err = conn.Exec(
		`INSERT INTO record (id, title, done, tier, due, due_raw, notes, created_at, seq)
		 VALUES ('not-a-uuid', 'inspect the roof', 0, 'urgent', 'next thursday', '', '', 'whenever', 0)`,
	)
	assert.Nil(err)

	records, err := database.LoadRecords(context.Background(), duedate.TierMedium)
	assert.Nil(err)
	assert.Equal(1, len(records))

	record := records[0]
	assert.Equal("inspect the roof", record.Title)
	assert.Equal(duedate.TierMedium, record.Tier)
	assert.True(record.Due.IsZero())
	assert.Equal("next thursday", record.DueRaw)
	assert.NotEqual(uuid.Nil, record.ID)
	assert.True(record.CreatedAt.IsZero())
}

func TestCleanupStamp(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	defer database.Close()

	ctx := context.Background()

	day := duedate.Date{Year: 2025, Month: 3, Day: 5}
	assert.Nil(database.SetLastCleanup(ctx, day))

	stamp, err := database.LastCleanup(ctx)
	assert.Nil(err)
	assert.Equal(day, stamp)

	// overwriting moves the stamp forward
	assert.Nil(database.SetLastCleanup(ctx, day.AddDays(1)))

	stamp, err = database.LastCleanup(ctx)
	assert.Nil(err)
	assert.Equal(day.AddDays(1), stamp)
}
