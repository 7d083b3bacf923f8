package ingest

// Domain models shared by the walker and the extractor.
// These are lightweight data transfer structs consumed by the CLI and
// the storage layer, NOT ORM models.

// FileClassification describes how a discovered file should be processed
// downstream.
type FileClassification string

const (
	// ClassParse marks source files that go through the chunk extractor.
	ClassParse FileClassification = "parse"
	// ClassMarkdown marks documentation files.
	ClassMarkdown FileClassification = "markdown"
	// ClassConfig marks structured configuration files.
	ClassConfig FileClassification = "config"
	// ClassSkip marks files excluded from processing.
	ClassSkip FileClassification = "skip"
)

// FileInfo describes one file discovered during a repository walk.
// RelativePath is repository-root-relative with forward-slash separators.
type FileInfo struct {
	AbsolutePath   string
	RelativePath   string
	Classification FileClassification
}

// ChunkType identifies the structural kind of an extracted chunk.
// Method and Block are reserved for a future nested-decomposition pass;
// the top-level extractor only produces Module, Class, and Function.
type ChunkType string

const (
	ChunkModule   ChunkType = "module"
	ChunkClass    ChunkType = "class"
	ChunkFunction ChunkType = "function"
	ChunkMethod   ChunkType = "method"
	ChunkBlock    ChunkType = "block"
)

// Chunk is a contiguous, typed unit of source text extracted for
// downstream indexing. Content is the exact source substring; line
// numbers are 1-indexed and inclusive.
type Chunk struct {
	Type      ChunkType
	Name      string // empty only for synthetic module chunks without a name
	Content   string
	StartLine int
	EndLine   int
}

// ChunkMetadata is the enrichment record the indexing stage wraps around
// a Chunk. The extractor declares it but does not populate it; git
// attribution and import/link resolution happen downstream.
type ChunkMetadata struct {
	FilePath        string
	Language        string
	LineStart       int
	LineEnd         int
	GitAuthor       string
	GitLastModified string
	Imports         []string
	LinkedChunks    []string
}
