package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Extractor:
// - Mixed source yields module + function + class chunks, module first
// - Orphan code is aggregated even when it follows definitions
// - No module chunk when every top-level node is a definition
// - Decorated definitions type/name as the inner definition but keep
//   decorator lines in the content
// - Chunk content is a byte-exact slice of the original source
// - Line spans are 1-indexed, start <= end, definitions never overlap
// - Multi-line spans (triple-quoted strings) reconstruct exactly
// - Broken source fails with ErrParseFailure
// - Empty source yields no chunks
// - Cancelled context aborts before parsing

const sampleSource = `import os
from typing import List

GLOBAL_VAR = True

def standalone_function(x: int) -> int:
    return x * 2

class MockClass:
    """This is a test class."""

    def __init__(self):
        self.value = 42

    def do_something(self):
        print("Doing something!")
`

func TestExtractor_MixedSource(t *testing.T) {
	t.Parallel()

	chunks, err := NewExtractor().Extract(context.Background(), sampleSource)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	module := chunks[0]
	assert.Equal(t, ChunkModule, module.Type)
	assert.Equal(t, ModuleChunkName, module.Name)
	assert.Equal(t, "import os\nfrom typing import List\nGLOBAL_VAR = True", module.Content)
	assert.Equal(t, 1, module.StartLine)
	assert.Equal(t, 4, module.EndLine)

	fn := chunks[1]
	assert.Equal(t, ChunkFunction, fn.Type)
	assert.Equal(t, "standalone_function", fn.Name)
	assert.Equal(t, 6, fn.StartLine)
	assert.Equal(t, 7, fn.EndLine)
	assert.Contains(t, fn.Content, "def standalone_function(x: int) -> int:")

	cls := chunks[2]
	assert.Equal(t, ChunkClass, cls.Type)
	assert.Equal(t, "MockClass", cls.Name)
	assert.Equal(t, 9, cls.StartLine)
	assert.Equal(t, 16, cls.EndLine)
	assert.Contains(t, cls.Content, "class MockClass:")
	assert.Contains(t, cls.Content, "def do_something(self):")
}

func TestExtractor_OrphansAfterDefinitionsStillFirst(t *testing.T) {
	t.Parallel()

	source := "def first():\n    pass\n\ntrailing = 1\n"

	chunks, err := NewExtractor().Extract(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, ChunkModule, chunks[0].Type)
	assert.Equal(t, "trailing = 1", chunks[0].Content)
	assert.Equal(t, 4, chunks[0].StartLine)
	assert.Equal(t, 4, chunks[0].EndLine)

	assert.Equal(t, ChunkFunction, chunks[1].Type)
	assert.Equal(t, "first", chunks[1].Name)
}

func TestExtractor_NoOrphansNoModuleChunk(t *testing.T) {
	t.Parallel()

	source := "def only():\n    pass\n"

	chunks, err := NewExtractor().Extract(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, ChunkFunction, chunks[0].Type)
}

func TestExtractor_DecoratedFunction(t *testing.T) {
	t.Parallel()

	source := "@wraps\n@cached\ndef decorated(x):\n    return x\n"

	chunks, err := NewExtractor().Extract(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	fn := chunks[0]
	assert.Equal(t, ChunkFunction, fn.Type)
	assert.Equal(t, "decorated", fn.Name)
	assert.Equal(t, 1, fn.StartLine)
	assert.Equal(t, 4, fn.EndLine)
	assert.True(t, strings.HasPrefix(fn.Content, "@wraps\n@cached\n"), "decorator lines must stay in content")
}

func TestExtractor_DecoratedClass(t *testing.T) {
	t.Parallel()

	source := "@register\nclass Handler:\n    pass\n"

	chunks, err := NewExtractor().Extract(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, ChunkClass, chunks[0].Type)
	assert.Equal(t, "Handler", chunks[0].Name)
	assert.Contains(t, chunks[0].Content, "@register")
}

func TestExtractor_RoundTripReconstruction(t *testing.T) {
	t.Parallel()

	chunks, err := NewExtractor().Extract(context.Background(), sampleSource)
	require.NoError(t, err)

	lines := strings.Split(sampleSource, "\n")
	for _, chunk := range chunks {
		if chunk.Type == ChunkModule {
			continue // aggregated from non-contiguous lines
		}
		reSliced := strings.Join(lines[chunk.StartLine-1:chunk.EndLine], "\n")
		assert.Equal(t, reSliced, chunk.Content, "chunk %s is not a byte-exact slice", chunk.Name)
	}
}

func TestExtractor_MultiLineStringSpan(t *testing.T) {
	t.Parallel()

	source := "BANNER = \"\"\"first\nsecond\nthird\"\"\"\n"

	chunks, err := NewExtractor().Extract(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	module := chunks[0]
	assert.Equal(t, ChunkModule, module.Type)
	assert.Equal(t, "BANNER = \"\"\"first\nsecond\nthird\"\"\"", module.Content)
	assert.Equal(t, 1, module.StartLine)
	assert.Equal(t, 3, module.EndLine)
}

func TestExtractor_SpanInvariants(t *testing.T) {
	t.Parallel()

	chunks, err := NewExtractor().Extract(context.Background(), sampleSource)
	require.NoError(t, err)

	occupied := map[int]string{}
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, chunk.StartLine, 1)
		assert.LessOrEqual(t, chunk.StartLine, chunk.EndLine)

		if chunk.Type != ChunkClass && chunk.Type != ChunkFunction {
			continue
		}
		for line := chunk.StartLine; line <= chunk.EndLine; line++ {
			other, taken := occupied[line]
			assert.False(t, taken, "line %d shared by %s and %s", line, other, chunk.Name)
			occupied[line] = chunk.Name
		}
	}
}

func TestExtractor_BrokenSource(t *testing.T) {
	t.Parallel()

	_, err := NewExtractor().Extract(context.Background(), "def broken(:\n")
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractor_EmptySource(t *testing.T) {
	t.Parallel()

	chunks, err := NewExtractor().Extract(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestExtractor_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor().Extract(ctx, sampleSource)
	assert.ErrorIs(t, err, context.Canceled)
}
