package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrParseFailure indicates the grammar could not produce a usable tree
// for a file. Fatal for that file only; callers skip it and continue
// with the rest of the repository.
var ErrParseFailure = errors.New("failed to parse source")

// ModuleChunkName is the sentinel name of the synthetic chunk that
// aggregates orphan top-level code (imports, globals, bare expressions).
const ModuleChunkName = "module_level"

// Placeholder names used when a definition has no resolvable name node.
const (
	unknownFunctionName = "unknown_function"
	unknownClassName    = "unknown_class"
)

// Extractor decomposes Python source text into an ordered sequence of
// top-level chunks: one Function or Class chunk per definition, plus at
// most one Module chunk aggregating everything else. It does not recurse
// into nested scopes; methods and blocks are a future pass.
type Extractor struct {
	language *sitter.Language
}

// NewExtractor creates an extractor backed by the tree-sitter Python
// grammar.
func NewExtractor() *Extractor {
	return &Extractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

// Extract parses source and returns its top-level chunks in document
// order, except that the synthetic module chunk, when present, is always
// first regardless of where its lines occur in the file. Line numbers
// are 1-indexed and inclusive.
//
// Returns ErrParseFailure when the grammar cannot parse the text.
func (e *Extractor) Extract(ctx context.Context, source string) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse([]byte(source), nil)
	if tree == nil {
		return nil, ErrParseFailure
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, ErrParseFailure
	}
	if root.HasError() {
		return nil, fmt.Errorf("%w: syntax errors in source", ErrParseFailure)
	}

	lines := strings.Split(source, "\n")

	var chunks []Chunk
	var orphans []Chunk

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)

		content := sliceSpan(lines, child.StartPosition(), child.EndPosition())
		startLine := int(child.StartPosition().Row) + 1
		endLine := int(child.EndPosition().Row) + 1

		// Decorated definitions wrap the real definition node. The text
		// keeps the decorator lines; typing and naming follow the inner
		// definition. Iterative descent bounds depth on pathological
		// nesting.
		effective := resolveDecorated(child)

		switch effective.Kind() {
		case "function_definition":
			chunks = append(chunks, Chunk{
				Type:      ChunkFunction,
				Name:      definitionName(effective, lines, unknownFunctionName),
				Content:   content,
				StartLine: startLine,
				EndLine:   endLine,
			})
		case "class_definition":
			chunks = append(chunks, Chunk{
				Type:      ChunkClass,
				Name:      definitionName(effective, lines, unknownClassName),
				Content:   content,
				StartLine: startLine,
				EndLine:   endLine,
			})
		default:
			// Imports, globals, bare expressions: aggregated below.
			orphans = append(orphans, Chunk{
				Type:      ChunkModule,
				Content:   content,
				StartLine: startLine,
				EndLine:   endLine,
			})
		}
	}

	if len(orphans) > 0 {
		contents := make([]string, len(orphans))
		for i, o := range orphans {
			contents[i] = o.Content
		}
		module := Chunk{
			Type:      ChunkModule,
			Name:      ModuleChunkName,
			Content:   strings.Join(contents, "\n"),
			StartLine: orphans[0].StartLine,
			EndLine:   orphans[len(orphans)-1].EndLine,
		}
		chunks = append([]Chunk{module}, chunks...)
	}

	return chunks, nil
}

// resolveDecorated descends through decorated_definition wrappers to the
// first function or class definition. Returns the original node when no
// definition is found.
func resolveDecorated(node *sitter.Node) *sitter.Node {
	effective := node
	for effective.Kind() == "decorated_definition" {
		var next *sitter.Node
		for i := uint(0); i < effective.ChildCount(); i++ {
			child := effective.Child(i)
			switch child.Kind() {
			case "function_definition", "class_definition", "decorated_definition":
				next = child
			}
			if next != nil {
				break
			}
		}
		if next == nil {
			return node
		}
		effective = next
	}
	return effective
}

// definitionName resolves a definition's name via its name child,
// falling back to the placeholder. A missing name never fails the
// extraction.
func definitionName(node *sitter.Node, lines []string, fallback string) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return fallback
	}
	name := sliceSpan(lines, nameNode.StartPosition(), nameNode.EndPosition())
	if name == "" {
		return fallback
	}
	return name
}

// sliceSpan recovers the exact source text for a node span from the
// original line array. Rows are 0-indexed, columns are byte offsets.
// Same-row spans slice one line; multi-row spans join the first line's
// tail, the interior lines, and the last line's head with newlines.
func sliceSpan(lines []string, start, end sitter.Point) string {
	startRow, startCol := int(start.Row), int(start.Column)
	endRow, endCol := int(end.Row), int(end.Column)

	if startRow >= len(lines) {
		return ""
	}
	if endRow >= len(lines) {
		endRow = len(lines) - 1
		endCol = len(lines[endRow])
	}

	if startRow == endRow {
		line := lines[startRow]
		return line[clampCol(startCol, line):clampCol(endCol, line)]
	}

	parts := make([]string, 0, endRow-startRow+1)
	first := lines[startRow]
	parts = append(parts, first[clampCol(startCol, first):])
	for row := startRow + 1; row < endRow; row++ {
		parts = append(parts, lines[row])
	}
	last := lines[endRow]
	parts = append(parts, last[:clampCol(endCol, last)])

	return strings.Join(parts, "\n")
}

func clampCol(col int, line string) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}
