package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLLMProvider indicates an unknown llm.provider value
	ErrInvalidLLMProvider = errors.New("invalid llm provider")

	// ErrInvalidEmbeddingProvider indicates an unknown embedding.provider value
	ErrInvalidEmbeddingProvider = errors.New("invalid embedding provider")

	// ErrInvalidSampling indicates temperature/top_p out of range
	ErrInvalidSampling = errors.New("invalid sampling settings")

	// ErrInvalidTimeout indicates a non-positive timeout
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidRetrieval indicates retrieval settings out of range
	ErrInvalidRetrieval = errors.New("invalid retrieval settings")

	// ErrInvalidChunking indicates chunking settings out of range
	ErrInvalidChunking = errors.New("invalid chunking settings")

	// ErrUnsupportedLanguage indicates a chunking language other than python
	ErrUnsupportedLanguage = errors.New("unsupported chunking language")

	// ErrEmptyProjectName indicates a blank project name
	ErrEmptyProjectName = errors.New("empty project name")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateLLM(&cfg.LLM); err != nil {
		errs = append(errs, err)
	}
	if err := validateEmbedding(&cfg.Embedding); err != nil {
		errs = append(errs, err)
	}
	if err := validateRetrieval(&cfg.Retrieval); err != nil {
		errs = append(errs, err)
	}
	if err := validateChunking(&cfg.Chunking); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(cfg.ProjectName) == "" {
		errs = append(errs, ErrEmptyProjectName)
	}

	return errors.Join(errs...)
}

func validateLLM(s *LLMSettings) error {
	switch s.Provider {
	case LLMProviderGemini:
		return validateSampling("llm.gemini", s.Gemini.Model, s.Gemini.Temperature,
			s.Gemini.TopP, s.Gemini.MaxOutputTokens, s.Gemini.TimeoutSeconds, s.Gemini.MaxRetries)
	case LLMProviderOllama:
		return validateSampling("llm.ollama", s.Ollama.Model, s.Ollama.Temperature,
			s.Ollama.TopP, s.Ollama.MaxOutputTokens, s.Ollama.TimeoutSeconds, s.Ollama.MaxRetries)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLLMProvider, s.Provider)
	}
}

func validateSampling(section, model string, temperature, topP float64, maxTokens int, timeout float64, retries int) error {
	if model == "" {
		return fmt.Errorf("%w: %s.model is empty", ErrInvalidSampling, section)
	}
	if temperature < 0.0 || temperature > 0.2 {
		return fmt.Errorf("%w: %s.temperature must be in [0.0, 0.2]", ErrInvalidSampling, section)
	}
	if topP < 0.0 || topP > 1.0 {
		return fmt.Errorf("%w: %s.top_p must be in [0.0, 1.0]", ErrInvalidSampling, section)
	}
	if maxTokens < 1 {
		return fmt.Errorf("%w: %s.max_output_tokens must be >= 1", ErrInvalidSampling, section)
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %s.timeout_s must be > 0", ErrInvalidTimeout, section)
	}
	if retries < 0 {
		return fmt.Errorf("%w: %s.max_retries must be >= 0", ErrInvalidSampling, section)
	}
	return nil
}

func validateEmbedding(s *EmbeddingSettings) error {
	switch s.Provider {
	case EmbeddingProviderVoyage:
		return validateEmbeddingVariant("embedding.voyageai", s.Voyage.Model,
			s.Voyage.BatchSize, s.Voyage.TimeoutSeconds, s.Voyage.Dimensions)
	case EmbeddingProviderBGE:
		return validateEmbeddingVariant("embedding.bge", s.BGE.Model,
			s.BGE.BatchSize, s.BGE.TimeoutSeconds, s.BGE.Dimensions)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEmbeddingProvider, s.Provider)
	}
}

func validateEmbeddingVariant(section, model string, batchSize int, timeout float64, dimensions int) error {
	if model == "" {
		return fmt.Errorf("%w: %s.model is empty", ErrInvalidEmbeddingProvider, section)
	}
	if batchSize < 1 {
		return fmt.Errorf("%w: %s.batch_size must be >= 1", ErrInvalidEmbeddingProvider, section)
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %s.timeout_s must be > 0", ErrInvalidTimeout, section)
	}
	if dimensions < 1 {
		return fmt.Errorf("%w: %s.dimensions must be >= 1", ErrInvalidEmbeddingProvider, section)
	}
	return nil
}

func validateRetrieval(s *RetrievalSettings) error {
	switch s.Reranker {
	case RerankerNone, RerankerCrossEncoder, RerankerGemini:
	default:
		return fmt.Errorf("%w: unknown reranker %q", ErrInvalidRetrieval, s.Reranker)
	}
	switch s.Mode {
	case RetrievalSimilarity, RetrievalKeyword, RetrievalHybrid:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRetrieval, s.Mode)
	}
	if s.TopK < 1 || s.TopK > 5 {
		return fmt.Errorf("%w: top_k must be in [1, 5]", ErrInvalidRetrieval)
	}
	if s.RerankTopN < 1 || s.RerankTopN > 5 {
		return fmt.Errorf("%w: rerank_top_n must be in [1, 5]", ErrInvalidRetrieval)
	}
	return nil
}

func validateChunking(s *ChunkingSettings) error {
	switch s.Strategy {
	case ChunkingHierarchical, ChunkingFlat:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidChunking, s.Strategy)
	}
	if s.MaxChunkSize < 10 {
		return fmt.Errorf("%w: max_chunk_size must be >= 10", ErrInvalidChunking)
	}
	if s.MaxOverlap < 0 {
		return fmt.Errorf("%w: max_overlap must be >= 0", ErrInvalidChunking)
	}
	if s.MaxOverlap >= s.MaxChunkSize {
		return fmt.Errorf("%w: max_overlap must be less than max_chunk_size", ErrInvalidChunking)
	}
	if strings.ToLower(strings.TrimSpace(s.Language)) != "python" {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s.Language)
	}
	return nil
}
