// Package journal stores the history of executed rename runs in SQLite.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bulkrename/internal/journal/migrations"
	"bulkrename/internal/rename"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements rename.Journal using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens the journal at path (a file path or ":memory:"),
// applies pending migrations and verifies the schema version.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	if err := migrations.CheckVersion(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema out of date: %w", err)
	}

	return &SQLiteJournal{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection.
// A single connection is used: the journal has one writer per process, and
// an in-memory database exists only on the connection that created it.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Path returns the database location the journal was opened with.
func (j *SQLiteJournal) Path() string {
	return j.path
}

// RecordRun inserts the run and its pairs in one transaction.
func (j *SQLiteJournal) RecordRun(run *rename.Run) error {
	ctx := context.Background()

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, directory, pattern, replacement, started_at, finished_at, status, renamed, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.Directory, run.Pattern, run.Replacement,
		run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Status, run.Renamed, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_pairs (run_id, position, original, target, error) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing pair insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range run.Pairs {
		if _, err := stmt.ExecContext(ctx, run.ID, i, p.From, p.To, p.Error); err != nil {
			return fmt.Errorf("inserting pair %s -> %s: %w", p.From, p.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const runColumns = `id, mode, directory, pattern, replacement, started_at, finished_at, status, renamed, failed`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*rename.Run, error) {
	var r rename.Run
	err := row.Scan(&r.ID, &r.Mode, &r.Directory, &r.Pattern, &r.Replacement,
		&r.StartedAt, &r.FinishedAt, &r.Status, &r.Renamed, &r.Failed)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns at most limit runs, newest first.
func (j *SQLiteJournal) ListRuns(limit int) ([]*rename.Run, error) {
	rows, err := j.db.QueryContext(context.Background(),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*rename.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// FindRun returns the newest run whose ID starts with idPrefix, with its pairs.
func (j *SQLiteJournal) FindRun(idPrefix string) (*rename.Run, error) {
	ctx := context.Background()

	// Escape LIKE wildcards so the prefix is matched literally.
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(idPrefix)
	row := j.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY started_at DESC LIMIT 1`,
		escaped+"%")

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding run: %w", err)
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT original, target, error FROM run_pairs WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("loading pairs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p rename.PairRecord
		if err := rows.Scan(&p.From, &p.To, &p.Error); err != nil {
			return nil, fmt.Errorf("scanning pair: %w", err)
		}
		run.Pairs = append(run.Pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading pairs: %w", err)
	}
	return run, nil
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Compile-time check that SQLiteJournal implements rename.Journal
var _ rename.Journal = (*SQLiteJournal)(nil)
