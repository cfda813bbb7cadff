package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

//go:embed base.sql
var baseSQL string

const lastCleanupKey = "last_cleanup"

// Database is the persistence provider: it loads and saves the record
// collection and the last-cleanup date stamp. It is a best-effort cache, not
// the system of record, so callers may treat save failures as non-fatal.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and
// initializes the structure if not present.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := conn.ExecContext(ctx, baseSQL); err != nil {
		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &Database{conn: conn}, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// LoadRecords reads the stored collection in insertion order. Malformed data
// degrades rather than failing: unreadable rows are skipped, unknown tier
// values coerce to the fallback, and unparseable due text lands in DueRaw
// instead of corrupting Due.
func (d *Database) LoadRecords(ctx context.Context, fallback duedate.Tier) ([]*Record, error) {
	recordSQL := `SELECT id, title, done, tier, due, due_raw, notes, created_at, seq
				  FROM record
				  ORDER BY seq`

	rows, err := d.conn.QueryContext(ctx, recordSQL)
	if err != nil {
		return nil, fmt.Errorf("error loading records: %w", err)
	}
	defer rows.Close()

	records := []*Record{}

	for rows.Next() {
		var (
			id, title, tier, dueRaw, notes, created string
			due                                     sql.NullString
			done, seq                               int
		)

		if err := rows.Scan(&id, &title, &done, &tier, &due, &dueRaw, &notes, &created, &seq); err != nil {
			log.Warn().Err(err).Msg("skipping unreadable record row")

			continue
		}

		record := &Record{
			Title:  title,
			Done:   done != 0,
			Tier:   duedate.ParseTier(tier, fallback),
			DueRaw: dueRaw,
			Notes:  notes,
			Seq:    seq,
		}

		record.ID, err = uuid.Parse(id)
		if err != nil {
			record.ID = uuid.New()
		}

		if due.Valid {
			if date, ok := duedate.Normalize(due.String); ok {
				record.Due = date
			} else if record.DueRaw == "" {
				record.DueRaw = due.String
			}
		}

		if createdAt, err := time.Parse(time.RFC3339, created); err == nil {
			record.CreatedAt = createdAt
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning records: %w", err)
	}

	return records, nil
}

// SaveRecords replaces the whole stored collection in one transaction,
// mirroring the copy-on-write replacement the in-memory collection uses.
// Pending edits are transient and are not persisted.
func (d *Database) SaveRecords(ctx context.Context, records []*Record) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting save transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM record`); err != nil {
		tx.Rollback()

		return fmt.Errorf("error clearing records: %w", err)
	}

	insertSQL := `INSERT INTO record (id, title, done, tier, due, due_raw, notes, created_at, seq)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, record := range records {
		done := 0
		if record.Done {
			done = 1
		}

		due := sql.NullString{}
		if !record.Due.IsZero() {
			due = sql.NullString{String: record.Due.String(), Valid: true}
		}

		_, err := tx.ExecContext(ctx, insertSQL,
			record.ID.String(), record.Title, done, record.Tier.String(),
			due, record.DueRaw, record.Notes,
			record.CreatedAt.Format(time.RFC3339), record.Seq,
		)
		if err != nil {
			tx.Rollback()

			return fmt.Errorf("error saving record '%s': %w", record.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing records: %w", err)
	}

	return nil
}

// LastCleanup returns the date of the most recent rollover prune, or the zero
// date if none is stored or the stamp doesn't parse.
func (d *Database) LastCleanup(ctx context.Context) (duedate.Date, error) {
	var value string

	err := d.conn.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = $1`, lastCleanupKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return duedate.Date{}, nil
	}

	if err != nil {
		return duedate.Date{}, fmt.Errorf("error loading cleanup stamp: %w", err)
	}

	stamp, ok := duedate.Normalize(value)
	if !ok {
		return duedate.Date{}, nil
	}

	return stamp, nil
}

// SetLastCleanup stores the cleanup stamp, overwriting any previous value.
func (d *Database) SetLastCleanup(ctx context.Context, day duedate.Date) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		lastCleanupKey, day.String(),
	)
	if err != nil {
		return fmt.Errorf("error saving cleanup stamp: %w", err)
	}

	return nil
}
