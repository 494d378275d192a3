// Package registry is the client for the shared knowledge registry, a
// remote libsql database holding versioned entries, relationships and
// collections. The registry is optional: an unconfigured client answers
// reads with empty results and refuses mutations with ErrUnavailable.
package registry

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/josephgoksu/zettelwing/types"
)

// Sentinel errors for registry operations.
var (
	ErrUnavailable = fmt.Errorf("registry not configured: set registry.url and registry.authToken")
	ErrNotFound    = fmt.Errorf("entry not found in registry")
)

// ConflictError reports a delete blocked by existing relationships.
type ConflictError struct {
	Relationships int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete entry: %d relationship(s) exist. Set cascade_relationships: true to delete relationships first", e.Relationships)
}

// Client talks to the registry database. A nil db means unconfigured.
type Client struct {
	db *sql.DB
}

// New opens a registry connection from config. Missing URL or auth token
// yields a disabled client rather than an error, so local-only workflows
// keep working.
func New(cfg types.RegistryConfig) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	token := strings.TrimSpace(cfg.AuthToken)
	if url == "" || token == "" {
		return &Client{}, nil
	}

	driver := cfg.Driver
	if driver == "" {
		driver = "libsql"
	}

	dsn := url
	if driver == "libsql" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		dsn = url + sep + "authToken=" + token
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}

	client := &Client{db: db}
	if err := client.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init registry schema: %w", err)
	}
	return client, nil
}

// NewWithDB wraps an existing database handle. Used by tests and by tools
// that bring their own connection.
func NewWithDB(db *sql.DB) (*Client, error) {
	client := &Client{db: db}
	if err := client.initSchema(); err != nil {
		return nil, fmt.Errorf("init registry schema: %w", err)
	}
	return client, nil
}

// Configured reports whether the client has a live connection.
func (c *Client) Configured() bool {
	return c != nil && c.db != nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// initSchema creates the registry tables if they don't exist.
func (c *Client) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		zettel_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		category TEXT,
		tags TEXT NOT NULL DEFAULT '[]',
		source_type TEXT,
		source_url TEXT,
		version TEXT NOT NULL DEFAULT '1.0.0',
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_zettel_id TEXT NOT NULL,
		to_zettel_id TEXT NOT NULL,
		relationship_type TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships(from_zettel_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships(to_zettel_id);

	CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		collection_type TEXT NOT NULL,
		zettel_ids TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
		zettel_id UNINDEXED,
		title,
		content,
		content='entries',
		content_rowid='rowid'
	);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	// SQLite has no IF NOT EXISTS for triggers, so check sqlite_master first.
	triggers := []struct {
		name string
		sql  string
	}{
		{
			name: "entries_fts_ai",
			sql: `CREATE TRIGGER entries_fts_ai AFTER INSERT ON entries BEGIN
				INSERT INTO entries_fts(rowid, zettel_id, title, content)
				VALUES (NEW.rowid, NEW.zettel_id, NEW.title, NEW.content);
			END`,
		},
		{
			name: "entries_fts_ad",
			sql: `CREATE TRIGGER entries_fts_ad AFTER DELETE ON entries BEGIN
				INSERT INTO entries_fts(entries_fts, rowid, zettel_id, title, content)
				VALUES ('delete', OLD.rowid, OLD.zettel_id, OLD.title, OLD.content);
			END`,
		},
		{
			name: "entries_fts_au",
			sql: `CREATE TRIGGER entries_fts_au AFTER UPDATE ON entries BEGIN
				INSERT INTO entries_fts(entries_fts, rowid, zettel_id, title, content)
				VALUES ('delete', OLD.rowid, OLD.zettel_id, OLD.title, OLD.content);
				INSERT INTO entries_fts(rowid, zettel_id, title, content)
				VALUES (NEW.rowid, NEW.zettel_id, NEW.title, NEW.content);
			END`,
		},
	}

	for _, trigger := range triggers {
		var count int
		err := c.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger' AND name = ?",
			trigger.name,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check trigger %s: %w", trigger.name, err)
		}
		if count == 0 {
			if _, err := c.db.Exec(trigger.sql); err != nil {
				return fmt.Errorf("create trigger %s: %w", trigger.name, err)
			}
		}
	}

	return nil
}
