package ingest

import (
	"log"
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnorePolicy matches repository-relative paths against gitignore-dialect
// patterns: patterns apply in file order with later patterns overriding
// earlier ones, a trailing "/" anchors to directories, "!" re-includes,
// "#" comments and blank lines are skipped.
//
// A nil inner matcher never matches, so a missing or unreadable ignore
// file degrades to "exclude nothing" instead of aborting a walk.
type IgnorePolicy struct {
	matcher *gitignore.GitIgnore
}

// CompileIgnorePatterns compiles ignore-file content into a policy.
func CompileIgnorePatterns(content string) *IgnorePolicy {
	lines := strings.Split(content, "\n")
	return &IgnorePolicy{matcher: gitignore.CompileIgnoreLines(lines...)}
}

// LoadIgnoreFile reads and compiles the ignore file at path. A missing
// file yields an empty policy; a read failure is a warning, not an error.
func LoadIgnoreFile(path string) *IgnorePolicy {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &IgnorePolicy{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: failed to read ignore file %s: %v\n", path, err)
		return &IgnorePolicy{}
	}
	return CompileIgnorePatterns(string(data))
}

// Match reports whether the relative path is excluded by the policy.
func (p *IgnorePolicy) Match(relPath string) bool {
	if p == nil || p.matcher == nil {
		return false
	}
	return p.matcher.MatchesPath(relPath)
}
