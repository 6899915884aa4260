// Package jobtrack keeps a local ledger of backfill runs in sqlite so
// operators can see what has already been swept without digging
// through logs.
package jobtrack

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS backfill_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dispensary TEXT NOT NULL,
	prefix TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	finished_at INTEGER,
	blobs_processed INTEGER NOT NULL DEFAULT 0,
	blobs_failed INTEGER NOT NULL DEFAULT 0,
	strains_found INTEGER NOT NULL DEFAULT 0,
	saved INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_backfill_runs_dispensary
	ON backfill_runs (dispensary, started_at);
`

type DB struct {
	db *sql.DB
}

func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type Run struct {
	ID             int64
	Dispensary     string
	Prefix         string
	StartedAt      time.Time
	FinishedAt     time.Time
	BlobsProcessed int
	BlobsFailed    int
	StrainsFound   int
	Saved          bool
	Error          string
}

type RunResult struct {
	BlobsProcessed int
	BlobsFailed    int
	StrainsFound   int
	Saved          bool
	Error          string
}

func (d *DB) StartRun(ctx context.Context, dispensary, prefix string) (int64, error) {
	res, err := d.db.ExecContext(
		ctx,
		`INSERT INTO backfill_runs (dispensary, prefix, started_at) VALUES (?, ?, ?)`,
		dispensary, prefix, time.Now().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *DB) FinishRun(ctx context.Context, id int64, result RunResult) error {
	_, err := d.db.ExecContext(
		ctx,
		`UPDATE backfill_runs
		 SET finished_at = ?, blobs_processed = ?, blobs_failed = ?,
		     strains_found = ?, saved = ?, error = ?
		 WHERE id = ?`,
		time.Now().Unix(),
		result.BlobsProcessed, result.BlobsFailed, result.StrainsFound,
		boolToInt(result.Saved), result.Error, id,
	)
	return err
}

// RecentRuns returns the latest runs, newest first. dispensary filters
// when non-empty.
func (d *DB) RecentRuns(ctx context.Context, dispensary string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, dispensary, prefix, started_at, COALESCE(finished_at, 0),
			blobs_processed, blobs_failed, strains_found, saved, error
		FROM backfill_runs`
	args := []any{}
	if dispensary != "" {
		query += ` WHERE dispensary = ?`
		args = append(args, dispensary)
	}
	query += ` ORDER BY started_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		var saved int
		err := rows.Scan(
			&r.ID, &r.Dispensary, &r.Prefix, &started, &finished,
			&r.BlobsProcessed, &r.BlobsFailed, &r.StrainsFound, &saved, &r.Error,
		)
		if err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		if finished != 0 {
			r.FinishedAt = time.Unix(finished, 0).UTC()
		}
		r.Saved = saved != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
