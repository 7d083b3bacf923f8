package storage

import "time"

// Domain models that mirror the SQL tables in schema.go. These are
// lightweight data transfer structs, NOT ORM models.

// FileRecord maps to the files table: one row per file discovered and
// classified by a repository walk.
type FileRecord struct {
	ID             string    // file_id: UUID
	AbsolutePath   string    // absolute_path
	RelativePath   string    // relative_path: root-relative, forward-slash
	Classification string    // classification: parse, markdown, config, skip
	IndexedAt      time.Time // indexed_at
}

// ChunkRecord maps to the chunks table: one row per extracted chunk.
type ChunkRecord struct {
	ID        string    // chunk_id: UUID
	FilePath  string    // file_path: relative path of the source file
	ChunkType string    // chunk_type: module, class, function, method, block
	Name      string    // name: definition name or module sentinel
	Content   string    // content: exact source substring
	StartLine int       // start_line: 1-indexed, inclusive
	EndLine   int       // end_line: 1-indexed, inclusive
	CreatedAt time.Time // created_at
}
