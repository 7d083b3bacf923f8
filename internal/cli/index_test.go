package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia-dev/aurelia/internal/storage"
)

// Test Plan for the index command:
// - End-to-end run persists inventory and chunks under <repo>/.aurelia
// - A file that fails to parse is skipped, the rest is still indexed

const indexTestSource = `import os

def main():
    print(os.getcwd())
`

func TestRunIndex_EndToEnd(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "main.py"), []byte(indexTestSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "broken.py"), []byte("def broken(:\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "README.md"), []byte("# Demo\n"), 0o644))

	prevCfgDir, prevQuiet := cfgDir, quietFlag
	cfgDir = t.TempDir()
	quietFlag = true
	defer func() { cfgDir, quietFlag = prevCfgDir, prevQuiet }()

	require.NoError(t, runIndex(indexCmd, []string{repo}))

	reader, err := storage.NewChunkReader(filepath.Join(repo, IndexDirName, "index.db"))
	require.NoError(t, err)
	defer reader.Close()

	files, err := reader.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 3)

	chunks, err := reader.ChunksForFile("main.py")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "module", chunks[0].ChunkType)
	assert.Equal(t, "module_level", chunks[0].Name)
	assert.Equal(t, "import os", chunks[0].Content)
	assert.Equal(t, "function", chunks[1].ChunkType)
	assert.Equal(t, "main", chunks[1].Name)

	// The unparseable file is skipped, not fatal.
	broken, err := reader.ChunksForFile("broken.py")
	require.NoError(t, err)
	assert.Empty(t, broken)
}
