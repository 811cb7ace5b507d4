// Package indexdb keeps a queryable sqlite index over the replay record:
// per-step digests and save files. The JSONL logs and save files remain the
// source of truth; the index can always be rebuilt from them.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"guildhall.quest/internal/persistence/log"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqStep reqKind = iota + 1
	reqSave
)

type req struct {
	kind reqKind

	step log.StepEntry
	save SaveRow
}

// SaveRow indexes one written save file.
type SaveRow struct {
	Revision   uint64
	Day        int
	Seed       int64
	Path       string
	Digest     string
	RecordedAt string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS steps (
			step INTEGER PRIMARY KEY,
			day INTEGER NOT NULL,
			digest TEXT NOT NULL,
			command_json TEXT NOT NULL,
			events_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_steps_day ON steps(day);`,
		`CREATE TABLE IF NOT EXISTS saves (
			revision INTEGER PRIMARY KEY,
			day INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			path TEXT NOT NULL,
			digest TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_day ON saves(day);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) WriteStep(entry log.StepEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqStep, step: entry}:
	default:
		// Drop if the indexer falls behind; the JSONL log is authoritative.
	}
	return nil
}

func (s *SQLiteIndex) RecordSave(path, digest string, revision uint64, day int, seed int64) {
	if s == nil || s.closed.Load() {
		return
	}
	r := SaveRow{
		Revision:   revision,
		Day:        day,
		Seed:       seed,
		Path:       path,
		Digest:     digest,
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case s.ch <- req{kind: reqSave, save: r}:
	default:
	}
}

func (s *SQLiteIndex) loop() {
	for r := range s.ch {
		switch r.kind {
		case reqStep:
			_, _ = s.db.Exec(
				`INSERT OR REPLACE INTO steps (step, day, digest, command_json, events_json)
				 VALUES (?, ?, ?, ?, ?)`,
				r.step.Step, r.step.Day, r.step.Digest,
				string(r.step.Command), string(r.step.Events),
			)
		case reqSave:
			_, _ = s.db.Exec(
				`INSERT OR REPLACE INTO saves (revision, day, seed, path, digest, recorded_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				r.save.Revision, r.save.Day, r.save.Seed, r.save.Path,
				r.save.Digest, r.save.RecordedAt,
			)
		}
	}
}

// StepDigest reads back the recorded digest for a step, "" when absent.
func (s *SQLiteIndex) StepDigest(step uint64) (string, error) {
	var d string
	err := s.db.QueryRow(`SELECT digest FROM steps WHERE step = ?`, step).Scan(&d)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return d, err
}

// LatestSave returns the most recent save row, nil when none is recorded.
func (s *SQLiteIndex) LatestSave() (*SaveRow, error) {
	var r SaveRow
	err := s.db.QueryRow(
		`SELECT revision, day, seed, path, digest, recorded_at
		 FROM saves ORDER BY revision DESC LIMIT 1`,
	).Scan(&r.Revision, &r.Day, &r.Seed, &r.Path, &r.Digest, &r.RecordedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
