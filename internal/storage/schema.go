package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
	file_id        TEXT PRIMARY KEY,
	absolute_path  TEXT NOT NULL,
	relative_path  TEXT NOT NULL UNIQUE,
	classification TEXT NOT NULL,
	indexed_at     TEXT NOT NULL
)`

const createChunksTable = `
CREATE TABLE IF NOT EXISTS chunks (
	chunk_id   TEXT PRIMARY KEY,
	file_path  TEXT NOT NULL,
	chunk_type TEXT NOT NULL,
	name       TEXT,
	content    TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	end_line   INTEGER NOT NULL,
	created_at TEXT NOT NULL
)`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_chunks_file_path ON chunks(file_path)`,
	`CREATE INDEX IF NOT EXISTS idx_chunks_type ON chunks(chunk_type)`,
	`CREATE INDEX IF NOT EXISTS idx_files_classification ON files(classification)`,
}

// openDatabase opens the SQLite database at dbPath and ensures the
// schema exists. All operations succeed or fail together.
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// createSchema creates tables and indexes inside one transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"files", createFilesTable},
		{"chunks", createChunksTable},
	}
	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}
