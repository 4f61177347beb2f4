package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"posekit/internal/merge"
	"posekit/internal/pose"
)

// Store manages merge-run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the catalog database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// RecordRun persists one merge result and returns the stored run. Writers
// serialize through the catalog file lock.
func (s *Store) RecordRun(ctx context.Context, dataset *pose.Dataset, entries []merge.Entry) (*Run, error) {
	if err := dataset.Validate(); err != nil {
		return nil, err
	}

	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	blocks := merge.Blocks(dataset.IDs)
	blocksJSON, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("marshal blocks: %w", err)
	}

	run := &Run{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Frames:       dataset.Pose.Frames,
		Keypoints:    dataset.Pose.Keypoints,
		SessionCount: len(entries),
		Blocks:       blocks,
	}

	framesByID := make(map[uint32]int, len(blocks))
	for _, block := range blocks {
		framesByID[block.ID] += block.Frames
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO merge_runs (id, created_at, frames, keypoints, session_count, blocks_json)
         VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Frames,
		run.Keypoints,
		run.SessionCount,
		string(blocksJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for i, entry := range entries {
		rs := RunSession{
			Position:   i,
			SessionID:  entry.ID,
			SourcePath: entry.Path,
			Format:     string(entry.Format),
			Frames:     framesByID[entry.ID],
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO merge_run_sessions (run_id, position, session_id, source_path, format, frames)
             VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, rs.Position, rs.SessionID, rs.SourcePath, rs.Format, rs.Frames,
		)
		if err != nil {
			return nil, fmt.Errorf("insert run session %d: %w", entry.ID, err)
		}
		run.Sessions = append(run.Sessions, rs)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first, without per-session
// detail. A limit of zero returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, frames, keypoints, session_count, blocks_json
              FROM merge_runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its per-session rows.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, frames, keypoints, session_count, blocks_json
         FROM merge_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, session_id, source_path, format, frames
         FROM merge_run_sessions WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list run sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rs RunSession
		if err := rows.Scan(&rs.Position, &rs.SessionID, &rs.SourcePath, &rs.Format, &rs.Frames); err != nil {
			return nil, fmt.Errorf("scan run session: %w", err)
		}
		run.Sessions = append(run.Sessions, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt, blocksJSON string
	if err := row.Scan(&run.ID, &createdAt, &run.Frames, &run.Keypoints, &run.SessionCount, &blocksJSON); err != nil {
		return Run{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse run timestamp: %w", err)
	}
	run.CreatedAt = ts
	if err := json.Unmarshal([]byte(blocksJSON), &run.Blocks); err != nil {
		return Run{}, fmt.Errorf("parse run blocks: %w", err)
	}
	return run, nil
}
