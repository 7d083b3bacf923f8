package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Validate:
// - Unknown discriminant values are rejected for both provider unions
// - Only the selected variant is validated
// - Range checks: temperature, top_p, top_k, rerank_top_n, overlap
// - Language is locked to python
// - Blank project name is rejected

func TestValidate_UnknownProviders(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.LLM.Provider = "claude"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidLLMProvider)

	cfg = Default()
	cfg.Embedding.Provider = "openai"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidEmbeddingProvider)
}

func TestValidate_OnlySelectedVariantChecked(t *testing.T) {
	t.Parallel()

	cfg := Default()
	// Break the inactive variant: gemini is selected, so this must pass.
	cfg.LLM.Ollama.Temperature = 99

	assert.NoError(t, Validate(cfg))

	cfg.LLM.Provider = LLMProviderOllama
	assert.ErrorIs(t, Validate(cfg), ErrInvalidSampling)
}

func TestValidate_SamplingRanges(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.LLM.Gemini.Temperature = 0.5
	assert.ErrorIs(t, Validate(cfg), ErrInvalidSampling)

	cfg = Default()
	cfg.LLM.Gemini.TopP = 1.5
	assert.ErrorIs(t, Validate(cfg), ErrInvalidSampling)

	cfg = Default()
	cfg.LLM.Gemini.TimeoutSeconds = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidTimeout)
}

func TestValidate_RetrievalRanges(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Retrieval.TopK = 6
	assert.ErrorIs(t, Validate(cfg), ErrInvalidRetrieval)

	cfg = Default()
	cfg.Retrieval.Mode = "vibes"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidRetrieval)
}

func TestValidate_ChunkingRanges(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Chunking.MaxOverlap = cfg.Chunking.MaxChunkSize
	assert.ErrorIs(t, Validate(cfg), ErrInvalidChunking)

	cfg = Default()
	cfg.Chunking.MaxChunkSize = 5
	assert.ErrorIs(t, Validate(cfg), ErrInvalidChunking)

	cfg = Default()
	cfg.Chunking.Language = "go"
	assert.ErrorIs(t, Validate(cfg), ErrUnsupportedLanguage)
}

func TestValidate_ProjectName(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.ProjectName = "   "
	assert.ErrorIs(t, Validate(cfg), ErrEmptyProjectName)
}
