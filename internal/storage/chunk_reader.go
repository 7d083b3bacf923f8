package storage

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// ChunkReader queries persisted inventories and chunks.
type ChunkReader struct {
	db *sql.DB
}

// NewChunkReader opens the SQLite database at dbPath for reading.
func NewChunkReader(dbPath string) (*ChunkReader, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &ChunkReader{db: db}, nil
}

// Close releases the database handle.
func (r *ChunkReader) Close() error {
	return r.db.Close()
}

// ListFiles returns the stored inventory ordered by relative path.
func (r *ChunkReader) ListFiles() ([]FileRecord, error) {
	rows, err := sq.Select("file_id", "absolute_path", "relative_path", "classification", "indexed_at").
		From("files").
		OrderBy("relative_path").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		var indexedAt string
		if err := rows.Scan(&f.ID, &f.AbsolutePath, &f.RelativePath, &f.Classification, &indexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		f.IndexedAt, _ = time.Parse(time.RFC3339, indexedAt)
		files = append(files, f)
	}
	return files, rows.Err()
}

// ChunksForFile returns a file's chunks ordered by rowid, preserving the
// extractor's output order (module chunk first when present).
func (r *ChunkReader) ChunksForFile(relPath string) ([]ChunkRecord, error) {
	rows, err := sq.Select("chunk_id", "file_path", "chunk_type", "name", "content", "start_line", "end_line", "created_at").
		From("chunks").
		Where(sq.Eq{"file_path": relPath}).
		OrderBy("rowid").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks for %s: %w", relPath, err)
	}
	defer rows.Close()

	var chunks []ChunkRecord
	for rows.Next() {
		var c ChunkRecord
		var createdAt string
		if err := rows.Scan(&c.ID, &c.FilePath, &c.ChunkType, &c.Name, &c.Content, &c.StartLine, &c.EndLine, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk row: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// CountChunks returns the total number of stored chunks.
func (r *ChunkReader) CountChunks() (int, error) {
	var count int
	err := sq.Select("COUNT(*)").From("chunks").RunWith(r.db).QueryRow().Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}
