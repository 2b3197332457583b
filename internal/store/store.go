// Package store keeps the log of sessions finished during this run in an
// in-process SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typesprint/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN opens a private in-memory database that is discarded on Close.
const MemoryDSN = ":memory:"

// Store wraps SQLite access for run records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// OpenMemory opens a fresh in-memory run log.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			finished_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			target INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_mode_target ON results(mode, target);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores a finished session result and returns its record.
func (s *Store) Record(ctx context.Context, mode model.Mode, target int, res model.Result) (model.RunRecord, error) {
	rec := model.RunRecord{
		ID:         uuid.NewString(),
		FinishedAt: s.now(),
		Mode:       mode,
		Target:     target,
		Result:     res,
	}
	inserted, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, finished_at, mode, target, correct_words, elapsed_seconds, wpm, accuracy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.FinishedAt.Format(time.RFC3339Nano),
		rec.Mode.String(),
		rec.Target,
		res.CorrectWords,
		res.ElapsedSeconds,
		res.WPM,
		res.Accuracy,
	)
	if err != nil {
		return model.RunRecord{}, fmt.Errorf("insert result: %w", err)
	}
	seq, err := inserted.LastInsertId()
	if err != nil {
		return model.RunRecord{}, fmt.Errorf("read result seq: %w", err)
	}
	rec.Seq = int(seq)
	return rec, nil
}

// Filter narrows ListResults. Zero values match everything.
type Filter struct {
	Mode   *model.Mode
	Target int
	Last   int
}

// ListResults returns records in the order they finished.
func (s *Store) ListResults(ctx context.Context, f Filter) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if f.Mode != nil {
		clauses = append(clauses, "mode = ?")
		args = append(args, f.Mode.String())
	}
	if f.Target > 0 {
		clauses = append(clauses, "target = ?")
		args = append(args, f.Target)
	}
	query := fmt.Sprintf(`SELECT seq, id, finished_at, mode, target, correct_words, elapsed_seconds, wpm, accuracy
		FROM results
		WHERE %s
		ORDER BY seq ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.RunRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.Last > 0 && len(records) > f.Last {
		records = records[len(records)-f.Last:]
	}
	return records, nil
}

// Best returns the highest-WPM record for a mode and target.
func (s *Store) Best(ctx context.Context, mode model.Mode, target int) (model.RunRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, id, finished_at, mode, target, correct_words, elapsed_seconds, wpm, accuracy
		 FROM results
		 WHERE mode = ? AND target = ?
		 ORDER BY wpm DESC, seq ASC
		 LIMIT 1`, mode.String(), target)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RunRecord{}, false, nil
	}
	if err != nil {
		return model.RunRecord{}, false, err
	}
	return rec, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (model.RunRecord, error) {
	var rec model.RunRecord
	var finishedAt, mode string
	if err := row.Scan(&rec.Seq, &rec.ID, &finishedAt, &mode, &rec.Target,
		&rec.Result.CorrectWords, &rec.Result.ElapsedSeconds, &rec.Result.WPM, &rec.Result.Accuracy); err != nil {
		return model.RunRecord{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
	if err != nil {
		return model.RunRecord{}, err
	}
	rec.FinishedAt = parsed
	rec.Mode, err = model.ParseMode(mode)
	if err != nil {
		return model.RunRecord{}, err
	}
	return rec, nil
}
