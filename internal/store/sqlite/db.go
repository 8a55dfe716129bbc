package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/afeldman/gmark/internal/store"
)

// Store implements store.Store on SQLite via sqlx.
type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

// Open creates (if needed) and opens the bookmark database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "gmark.db")
	db, err := sqlx.Connect("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory database, used by tests. The connection
// pool is limited to one so every query sees the same database.
func OpenMemory() (*Store, error) {
	db, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS bookmark_folders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		parent_id INTEGER REFERENCES bookmark_folders(id) ON DELETE CASCADE,
		full_path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		modified_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, full_path)
	);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		folder_id INTEGER REFERENCES bookmark_folders(id) ON DELETE SET NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL DEFAULT 'user',
		access_time TIMESTAMP NOT NULL,
		modified_time TIMESTAMP NOT NULL,
		changed_time TIMESTAMP NOT NULL,
		UNIQUE (user_id, url)
	);

	CREATE TABLE IF NOT EXISTS keywords (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bookmark_keywords (
		bookmark_id INTEGER NOT NULL REFERENCES bookmarks(id) ON DELETE CASCADE,
		keyword_id INTEGER NOT NULL REFERENCES keywords(id) ON DELETE CASCADE,
		ranking INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (bookmark_id, keyword_id)
	);

	CREATE INDEX IF NOT EXISTS idx_bookmarks_user ON bookmarks(user_id);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_folder ON bookmarks(folder_id);
	CREATE INDEX IF NOT EXISTS idx_folders_user ON bookmark_folders(user_id);
	`)
	if err != nil {
		return err
	}
	return nil
}

// isConstraintErr reports whether err indicates a unique/constraint violation.
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}
