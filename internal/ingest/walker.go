package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidRoot indicates the repository path is missing or not a
// directory. It is fatal: no partial inventory is produced.
var ErrInvalidRoot = errors.New("repository root is not a valid directory")

// IgnoreFileName is the single top-level ignore file consulted per walk.
// Ignore files deeper in the tree are not read.
const IgnoreFileName = ".gitignore"

// compiledGlob pairs a config-supplied ignore pattern with its compiled
// form so directory pruning can also try the pattern with a /** suffix.
type compiledGlob struct {
	pattern string
	glob    glob.Glob
}

// RepoWalker walks a repository tree depth-first, prunes always-ignored
// and dot-prefixed directories before descending, applies the root
// ignore file plus any configured extra globs, and classifies what
// remains.
type RepoWalker struct {
	root        string
	tables      Tables
	classifier  *Classifier
	ignore      *IgnorePolicy
	extraIgnore []compiledGlob
}

// WalkerOption configures a RepoWalker.
type WalkerOption func(*RepoWalker) error

// WithTables substitutes the classification and pruning tables.
func WithTables(tables Tables) WalkerOption {
	return func(w *RepoWalker) error {
		w.tables = tables
		return nil
	}
}

// WithIgnoreGlobs adds ignore patterns on top of the repository's ignore
// file, e.g. from user configuration. Patterns use glob syntax with '/'
// as the separator.
func WithIgnoreGlobs(patterns []string) WalkerOption {
	return func(w *RepoWalker) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
			}
			w.extraIgnore = append(w.extraIgnore, compiledGlob{pattern: pattern, glob: g})
		}
		return nil
	}
}

// NewRepoWalker validates the repository root and compiles its ignore
// file. Returns ErrInvalidRoot if the path does not resolve to an
// existing directory.
func NewRepoWalker(repoPath string, opts ...WalkerOption) (*RepoWalker, error) {
	root, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, repoPath)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}

	w := &RepoWalker{
		root:   root,
		tables: DefaultTables(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	w.classifier = NewClassifier(w.tables)
	w.ignore = LoadIgnoreFile(filepath.Join(root, IgnoreFileName))
	return w, nil
}

// Root returns the resolved absolute repository root.
func (w *RepoWalker) Root() string {
	return w.root
}

// Walk traverses the repository and returns the classified inventory.
//
// Entries come back in filesystem traversal order, not sorted; callers
// that need determinism must sort the result themselves.
//
// Individual file failures are logged and omitted. Excluded subtrees are
// pruned before descent, so hardcoded ignore rules win over any
// re-include patterns in the ignore file.
func (w *RepoWalker) Walk(ctx context.Context) ([]FileInfo, error) {
	var results []FileInfo

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == w.root {
				return fmt.Errorf("%w: %s", ErrInvalidRoot, w.root)
			}
			log.Printf("Warning: could not access %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == w.root {
				return nil
			}
			if w.pruneDir(d.Name(), path) {
				return fs.SkipDir
			}
			return nil
		}

		// The ignore file and version-control metadata are never reported.
		if d.Name() == IgnoreFileName || d.Name() == ".git" {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil || strings.HasPrefix(rel, "..") {
			// Escaped the repository root somehow; drop silently.
			return nil
		}
		rel = filepath.ToSlash(rel)

		if w.ignore.Match(rel) || w.matchesExtraIgnore(rel) {
			return nil
		}

		if _, statErr := d.Info(); statErr != nil {
			log.Printf("Warning: could not process file %s: %v\n", path, statErr)
			return nil
		}

		results = append(results, FileInfo{
			AbsolutePath:   path,
			RelativePath:   rel,
			Classification: w.classifier.Classify(d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// pruneDir decides whether a directory is skipped entirely. Dot-prefixed
// names and the always-ignore set are never descended into.
func (w *RepoWalker) pruneDir(name, path string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if _, ok := w.tables.AlwaysIgnoreDirs[name]; ok {
		return true
	}
	if len(w.extraIgnore) > 0 {
		if rel, err := filepath.Rel(w.root, path); err == nil {
			rel = filepath.ToSlash(rel)
			if w.matchesExtraIgnore(rel) || w.matchesExtraIgnore(rel+"/**") {
				return true
			}
		}
	}
	return false
}

// matchesExtraIgnore checks config-supplied glob patterns.
func (w *RepoWalker) matchesExtraIgnore(relPath string) bool {
	for _, cg := range w.extraIgnore {
		if cg.glob.Match(relPath) {
			return true
		}
	}
	return false
}
