package ingest

import (
	"path/filepath"
	"strings"
)

// Tables holds the name and extension sets that drive classification and
// directory pruning. They are injected through constructors rather than
// read from package-level globals so tests can substitute alternatives.
type Tables struct {
	// AlwaysIgnoreDirs are directory names never descended into,
	// regardless of ignore-file contents.
	AlwaysIgnoreDirs map[string]struct{}
	// BinaryExtensions are file extensions classified as Skip outright.
	BinaryExtensions map[string]struct{}
	// LockFiles are exact file names classified as Skip outright.
	LockFiles map[string]struct{}
	// ParseExtensions are source extensions routed to the extractor.
	ParseExtensions map[string]struct{}
	// MarkdownExtensions are documentation extensions.
	MarkdownExtensions map[string]struct{}
	// ConfigExtensions are structured-config extensions.
	ConfigExtensions map[string]struct{}
}

// DefaultTables returns the stock classification tables. Parsing is
// restricted to Python sources for now.
func DefaultTables() Tables {
	return Tables{
		AlwaysIgnoreDirs: set(
			".git", "__pycache__", "node_modules", ".venv", "venv", "env",
			"build", "dist", ".idea", ".vscode",
		),
		BinaryExtensions: set(
			".png", ".jpg", ".jpeg", ".gif", ".ico", ".pdf", ".exe", ".dll",
			".so", ".dylib", ".zip", ".tar", ".gz", ".pyc", ".pyo", ".pyd",
			".mp3", ".mp4", ".wmv",
		),
		LockFiles: set(
			"package-lock.json", "yarn.lock", "poetry.lock", "pipfile.lock",
			"cargo.lock",
		),
		ParseExtensions:    set(".py"),
		MarkdownExtensions: set(".md"),
		ConfigExtensions:   set(".yaml", ".yml", ".toml", ".json", ".cfg", ".ini"),
	}
}

func set(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// Classifier maps file names to a FileClassification using the injected
// tables. Classification is pure, total, and case-insensitive; it looks
// only at the name and extension, never at file contents.
type Classifier struct {
	tables Tables
}

// NewClassifier creates a classifier over the given tables.
func NewClassifier(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Classify returns the classification for a file name. Decision order,
// first match wins:
//  1. lock-file name or binary extension -> Skip
//  2. parse-target source extension -> Parse
//  3. markdown extension -> Markdown
//  4. structured-config extension -> Config
//  5. anything else -> Skip
func (c *Classifier) Classify(fileName string) FileClassification {
	name := strings.ToLower(fileName)
	ext := strings.ToLower(filepath.Ext(fileName))

	if _, ok := c.tables.LockFiles[name]; ok {
		return ClassSkip
	}
	if _, ok := c.tables.BinaryExtensions[ext]; ok {
		return ClassSkip
	}
	if _, ok := c.tables.ParseExtensions[ext]; ok {
		return ClassParse
	}
	if _, ok := c.tables.MarkdownExtensions[ext]; ok {
		return ClassMarkdown
	}
	if _, ok := c.tables.ConfigExtensions[ext]; ok {
		return ClassConfig
	}
	return ClassSkip
}
