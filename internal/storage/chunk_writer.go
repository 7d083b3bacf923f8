package storage

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/aurelia-dev/aurelia/internal/ingest"
)

// ChunkWriter persists walk inventories and extracted chunks to SQLite.
// Uses transactions for atomic updates.
type ChunkWriter struct {
	db *sql.DB
}

// NewChunkWriter opens or creates the SQLite database at dbPath.
func NewChunkWriter(dbPath string) (*ChunkWriter, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &ChunkWriter{db: db}, nil
}

// Close releases the database handle.
func (w *ChunkWriter) Close() error {
	return w.db.Close()
}

// ReplaceInventory performs a full replace of the files table with the
// given walk result. Either every row is written or none.
func (w *ChunkWriter) ReplaceInventory(files []ingest.FileInfo) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := sq.Delete("files").RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, f := range files {
		_, err := sq.Insert("files").
			Columns("file_id", "absolute_path", "relative_path", "classification", "indexed_at").
			Values(uuid.NewString(), f.AbsolutePath, f.RelativePath, string(f.Classification), now).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to insert file %s: %w", f.RelativePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit inventory: %w", err)
	}
	return nil
}

// WriteFileChunks replaces all chunks stored for one source file.
// Chunks keep their extractor order via insertion order.
func (w *ChunkWriter) WriteFileChunks(relPath string, chunks []ingest.Chunk) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := sq.Delete("chunks").Where(sq.Eq{"file_path": relPath}).RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear chunks for %s: %w", relPath, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range chunks {
		_, err := sq.Insert("chunks").
			Columns("chunk_id", "file_path", "chunk_type", "name", "content", "start_line", "end_line", "created_at").
			Values(uuid.NewString(), relPath, string(c.Type), c.Name, c.Content, c.StartLine, c.EndLine, now).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s in %s: %w", c.Name, relPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks for %s: %w", relPath, err)
	}
	return nil
}
