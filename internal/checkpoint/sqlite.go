// internal/checkpoint/sqlite.go
package checkpoint

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the checkpoint in a single-row SQLite table, so a
// reader can never observe a partial write.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the checkpoint database, creating parent
// directories as needed.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Create schema
	schema := `
	CREATE TABLE IF NOT EXISTS checkpoint (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		boot_id TEXT NOT NULL,
		last_log_offset REAL NOT NULL,
		updated_at TEXT
	);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored checkpoint, or the zero value when nothing
// has been saved yet.
func (s *SQLiteStore) Load() (Checkpoint, error) {
	var cp Checkpoint
	err := s.db.QueryRow(`
		SELECT boot_id, last_log_offset FROM checkpoint WHERE id = 1
	`).Scan(&cp.BootID, &cp.LastLogOffset)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, nil
	}
	if err != nil {
		return Checkpoint{}, err
	}

	return cp, nil
}

// Save upserts the single checkpoint row.
func (s *SQLiteStore) Save(cp Checkpoint) error {
	_, err := s.db.Exec(`
		INSERT INTO checkpoint (id, boot_id, last_log_offset, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			boot_id = excluded.boot_id,
			last_log_offset = excluded.last_log_offset,
			updated_at = excluded.updated_at
	`, cp.BootID, cp.LastLogOffset, time.Now().UTC().Format(time.RFC3339))

	return err
}
