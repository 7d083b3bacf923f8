package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Classifier:
// - Decision table is total: every input gets exactly one classification
// - Lock files and binary extensions win over everything else
// - Python sources classify as Parse, .md as Markdown
// - Structured config extensions classify as Config
// - Unknown extensions fall through to Skip
// - Matching is case-insensitive on both name and extension
// - Substituted tables change the outcome without global mutation

func TestClassifier_DecisionTable(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	tests := []struct {
		fileName string
		want     FileClassification
	}{
		{"main.py", ClassParse},
		{"utils.py", ClassParse},
		{"README.md", ClassMarkdown},
		{"pyproject.toml", ClassConfig},
		{"config.yaml", ClassConfig},
		{"settings.yml", ClassConfig},
		{"setup.cfg", ClassConfig},
		{"tox.ini", ClassConfig},
		{"data.json", ClassConfig},
		{"image.png", ClassSkip},
		{"archive.tar", ClassSkip},
		{"module.pyc", ClassSkip},
		{"data.csv", ClassSkip},
		{"script.sh", ClassSkip},
		{"Makefile", ClassSkip},
		{"poetry.lock", ClassSkip},
		{"yarn.lock", ClassSkip},
		// package-lock.json is a lock file before it is a .json config
		{"package-lock.json", ClassSkip},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.fileName), "file %s", tt.fileName)
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	assert.Equal(t, ClassParse, c.Classify("Main.PY"))
	assert.Equal(t, ClassMarkdown, c.Classify("ReadMe.MD"))
	assert.Equal(t, ClassSkip, c.Classify("Poetry.LOCK"))
	assert.Equal(t, ClassSkip, c.Classify("Photo.PNG"))
	assert.Equal(t, ClassSkip, c.Classify("Cargo.lock"))
}

func TestClassifier_Deterministic(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	for i := 0; i < 3; i++ {
		assert.Equal(t, ClassParse, c.Classify("main.py"))
		assert.Equal(t, ClassSkip, c.Classify("unknown.xyz"))
	}
}

func TestClassifier_SubstitutedTables(t *testing.T) {
	t.Parallel()

	tables := DefaultTables()
	tables.ParseExtensions = set(".go")

	c := NewClassifier(tables)

	assert.Equal(t, ClassParse, c.Classify("main.go"))
	assert.Equal(t, ClassSkip, c.Classify("main.py"))
}
