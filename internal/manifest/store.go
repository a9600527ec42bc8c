package manifest

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// Store is the data access layer for manifest rows. Writes are serialized
// under a mutex because SQLite tolerates exactly one writer; workers from
// the whole pool funnel through here.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a Store backed by db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordBatch inserts one row per created item in a single transaction.
func (s *Store) RecordBatch(entries []models.ManifestEntry) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin manifest tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO manifest_entries (run_id, path, size_kb, tag, kind, owner, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare manifest insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.Exec(e.RunID, e.Path, e.SizeKB, e.Tag, e.Kind, e.Owner, createdAt); err != nil {
			return fmt.Errorf("insert manifest entry %s: %w", e.Path, err)
		}
	}
	return tx.Commit()
}

// CountByRun returns how many entries a run recorded.
func (s *Store) CountByRun(runID string) (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM manifest_entries WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count manifest entries: %w", err)
	}
	return count, nil
}

// SizeByTag sums allocated kilobytes per tag for a run, for the post-run
// report.
func (s *Store) SizeByTag(runID string) (map[string]int64, error) {
	rows, err := s.db.Query(`
		SELECT tag, COALESCE(SUM(size_kb), 0)
		FROM manifest_entries
		WHERE run_id = ?
		GROUP BY tag
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query sizes by tag: %w", err)
	}
	defer rows.Close()

	sizes := make(map[string]int64)
	for rows.Next() {
		var tag string
		var kb int64
		if err := rows.Scan(&tag, &kb); err != nil {
			return nil, fmt.Errorf("scan size row: %w", err)
		}
		sizes[tag] = kb
	}
	return sizes, rows.Err()
}

// EntriesByRun pages through a run's entries in insertion order.
func (s *Store) EntriesByRun(runID string, limit, offset int) ([]models.ManifestEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, path, size_kb, tag, kind, owner, created_at
		FROM manifest_entries
		WHERE run_id = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`, runID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query manifest entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ManifestEntry
	for rows.Next() {
		var e models.ManifestEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.Path, &e.SizeKB, &e.Tag, &e.Kind, &e.Owner, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan manifest entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
