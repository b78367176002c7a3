package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore provides SQLite-backed storage.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db at %s: %w", path, err)
	}
	// a single writer avoids SQLITE_BUSY between the scheduler and handlers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db at %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore creates a new SQLite store.
// The db connection should already have migrations applied.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// MarkGreeted records a user as greeted.
func (s *SQLiteStore) MarkGreeted(ctx context.Context, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO greeted_users (user_id, greeted_at) VALUES (?, ?)
	`, userID, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("mark greeted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark greeted: %w", err)
	}
	return n == 1, nil
}

// IsGreeted reports whether the user was already greeted.
func (s *SQLiteStore) IsGreeted(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM greeted_users WHERE user_id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is greeted: %w", err)
	}
	return true, nil
}

// SetLang stores a language preference.
func (s *SQLiteStore) SetLang(ctx context.Context, userID int64, lang string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_prefs (user_id, lang) VALUES (?, ?)
	`, userID, lang)
	if err != nil {
		return fmt.Errorf("set lang: %w", err)
	}
	return nil
}

// GetLang returns the stored language preference.
func (s *SQLiteStore) GetLang(ctx context.Context, userID int64) (string, error) {
	var lang string
	err := s.db.QueryRowContext(ctx, `SELECT lang FROM user_prefs WHERE user_id = ?`, userID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get lang: %w", err)
	}
	return lang, nil
}

// SaveFollowUp stores a pending follow-up.
func (s *SQLiteStore) SaveFollowUp(ctx context.Context, f FollowUp) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO followups (user_id, chat_id, lang, due_at)
		VALUES (?, ?, ?, ?)
	`, f.UserID, f.ChatID, f.Lang, f.DueAt.Unix())
	if err != nil {
		return fmt.Errorf("save follow-up: %w", err)
	}
	return nil
}

// DeleteFollowUp removes a pending follow-up.
func (s *SQLiteStore) DeleteFollowUp(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM followups WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete follow-up: %w", err)
	}
	return nil
}

// PendingFollowUps lists pending follow-ups by due time.
func (s *SQLiteStore) PendingFollowUps(ctx context.Context) ([]FollowUp, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, chat_id, lang, due_at FROM followups ORDER BY due_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list follow-ups: %w", err)
	}
	defer rows.Close()

	var out []FollowUp
	for rows.Next() {
		var f FollowUp
		var due int64
		if err := rows.Scan(&f.UserID, &f.ChatID, &f.Lang, &due); err != nil {
			return nil, fmt.Errorf("scan follow-up: %w", err)
		}
		f.DueAt = time.Unix(due, 0)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list follow-ups: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
