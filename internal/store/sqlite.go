// Package store persists document reports in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/ppiankov/pensionfacts/internal/model"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when no report is stored for a NAID
var ErrNotFound = errors.New("report not found")

// Store saves and loads reports
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection so ":memory:" keeps a single database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a report under a fresh ID and returns the ID
func (s *Store) Save(ctx context.Context, report *model.DocumentReport) (string, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	categories, err := json.Marshal(report.Categories)
	if err != nil {
		return "", fmt.Errorf("marshal categories: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, run_id, naid, title, file_type_category, categories, report_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.RunID, report.NAID, report.Title.RawTitle, string(report.Title.Category),
		string(categories), string(raw), s.now(),
	)
	if err != nil {
		return "", fmt.Errorf("insert document %s: %w", report.NAID, err)
	}

	for _, c := range report.Categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO document_categories (document_id, category) VALUES (?, ?)",
			id, c,
		); err != nil {
			return "", fmt.Errorf("insert category %s: %w", c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Get returns the most recently saved report for naid
func (s *Store) Get(ctx context.Context, naid string) (*model.DocumentReport, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT report_json FROM documents WHERE naid = ? ORDER BY created_at DESC, rowid DESC LIMIT 1",
		naid,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("naid %s: %w", naid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	var report model.DocumentReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", naid, err)
	}
	return &report, nil
}

// CountByCategory counts stored documents per category tag
func (s *Store) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM document_categories GROUP BY category",
	)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// ListRun returns every report saved under runID in insertion order
func (s *Store) ListRun(ctx context.Context, runID string) ([]*model.DocumentReport, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT report_json FROM documents WHERE run_id = ? ORDER BY rowid",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []*model.DocumentReport
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var r model.DocumentReport
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}
