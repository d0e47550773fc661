package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the sqlite handle holding visitor metrics and contact submissions.
type Store struct {
	*sql.DB
}

// OpenStore opens (creating if needed) the sqlite file at path and applies migrations.
func OpenStore(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", abs)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	// Single writer avoids SQLITE_BUSY under concurrent visitor inserts.
	db.SetMaxOpenConns(1)

	if err := runMigrations(abs); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db}, nil
}

func runMigrations(absPath string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+filepath.ToSlash(absPath))
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

// sqliteTime formats t the way SQLite's CURRENT_TIMESTAMP does.
func sqliteTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path, lang string, at time.Time) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, lang, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, hashedIP, userAgent, path, lang, sqliteTime(at))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// PruneVisitors deletes visitor rows older than retention and returns how many went.
func (s *Store) PruneVisitors(ctx context.Context, retention time.Duration) (int64, error) {
	res, err := s.ExecContext(ctx, "DELETE FROM visitors WHERE timestamp < ?", sqliteTime(time.Now().Add(-retention)))
	if err != nil {
		return 0, fmt.Errorf("prune visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *Store) SaveSubmission(ctx context.Context, sub *Submission) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, first_name, last_name, email, phone, message, lang, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.FirstName, sub.LastName, sub.Email, sub.Phone, sub.Message, sub.Lang, sqliteTime(sub.CreatedAt))
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, COALESCE(phone, ''), message, COALESCE(lang, ''), created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.FirstName, &sub.LastName, &sub.Email, &sub.Phone, &sub.Message, &sub.Lang, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Store) ListVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), COALESCE(lang, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Lang, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}
