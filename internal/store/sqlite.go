// apps/go-solver/internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Schema bootstrap for the score_tables table.
//   - Transactional save/load of whole tables.
//
// Note: This file assumes SQLite but can be adapted for other backends.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

/**
 * OpenSQLite opens (and creates if missing) a SQLite database file and
 * bootstraps the score table schema.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/scores.db).
 * - Configures busy timeout and WAL journaling mode.
 *
 * @param dsn Database path or DSN string.
 * @returns *SQLite ready for use.
 */
func OpenSQLite(dsn string) (*SQLite, error) {
	// Ensure directory exists for ./data/scores.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// Open DB with busy timeout and WAL journaling.
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS score_tables (
            name  TEXT NOT NULL,
            word  TEXT NOT NULL,
            score REAL NOT NULL,
            PRIMARY KEY (name, word)
        );`); err != nil {
		return nil, fmt.Errorf("create score_tables: %w", err)
	}
	return &SQLite{db: db}, nil
}

/**
 * SaveScores replaces the named table in a single transaction, so a
 * concurrent load sees either the old table or the new one.
 */
func (s *SQLite) SaveScores(ctx context.Context, name string, scores map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM score_tables WHERE name=?`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear %s: %w", name, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO score_tables (name, word, score) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for word, score := range scores {
		if _, err := stmt.ExecContext(ctx, name, word, score); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s/%s: %w", name, word, err)
		}
	}
	return tx.Commit()
}

/**
 * LoadScores fetches the named table, or ErrNotFound if no rows exist.
 */
func (s *SQLite) LoadScores(ctx context.Context, name string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, score FROM score_tables WHERE name=?`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]float64)
	for rows.Next() {
		var word string
		var score float64
		if err := rows.Scan(&word, &score); err != nil {
			return nil, err
		}
		scores[word] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ErrNotFound
	}
	return scores, nil
}

func (s *SQLite) Close() error { return s.db.Close() }
