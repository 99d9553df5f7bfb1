// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

const catalogFile = "catalog.db"

// Catalog is a SQLite table of persisted patents, kept alongside the
// file outputs as a queryable fourth representation. Unlike the JSONL
// corpus it is keyed, so reruns update rows instead of appending.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens or creates the catalog database in dir.
func OpenCatalog(dir string) (*Catalog, error) {
	dbPath := filepath.Join(dir, catalogFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS patents (
		number TEXT PRIMARY KEY,
		normalized_id TEXT NOT NULL,
		title TEXT,
		source TEXT,
		downloaded TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Upsert records a persisted patent, replacing any row from a prior run.
func (c *Catalog) Upsert(rec types.PatentRecord) error {
	_, err := c.db.Exec(
		`INSERT INTO patents (number, normalized_id, title, source, downloaded)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(number) DO UPDATE SET
			normalized_id=excluded.normalized_id, title=excluded.title,
			source=excluded.source, downloaded=excluded.downloaded`,
		rec.Number, types.NormalizeID(rec.Number), rec.Title,
		string(rec.Source), rec.DownloadTimestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting patent %s: %w", rec.Number, err)
	}
	return nil
}

// Count returns the number of cataloged patents.
func (c *Catalog) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT count(*) FROM patents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting patents: %w", err)
	}
	return n, nil
}
