package config

// Config is the Aurelia settings object. It is loaded from
// ~/.aurelia/config.yaml with environment variable overrides and
// validated before use.
type Config struct {
	LLM       LLMSettings       `yaml:"llm" mapstructure:"llm"`
	Embedding EmbeddingSettings `yaml:"embedding" mapstructure:"embedding"`
	Retrieval RetrievalSettings `yaml:"retrieval" mapstructure:"retrieval"`
	Chunking  ChunkingSettings  `yaml:"chunking" mapstructure:"chunking"`
	Paths     PathsSettings     `yaml:"paths" mapstructure:"paths"`

	ProjectName string `yaml:"project_name" mapstructure:"project_name"`
	DataDir     string `yaml:"data_dir" mapstructure:"data_dir"`
}

// LLMProvider is the discriminant for LLM settings variants.
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderOllama LLMProvider = "ollama"
)

// LLMSettings selects exactly one provider variant via Provider.
// Consumers must switch exhaustively on Provider rather than probing
// variant fields.
type LLMSettings struct {
	Provider LLMProvider    `yaml:"provider" mapstructure:"provider"`
	Gemini   GeminiSettings `yaml:"gemini" mapstructure:"gemini"`
	Ollama   OllamaSettings `yaml:"ollama" mapstructure:"ollama"`
}

// GeminiSettings configures the hosted Gemini backend.
type GeminiSettings struct {
	Model           string  `yaml:"model" mapstructure:"model"`
	APIKey          string  `yaml:"api_key" mapstructure:"api_key"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
	TopP            float64 `yaml:"top_p" mapstructure:"top_p"`
	MaxOutputTokens int     `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	TimeoutSeconds  float64 `yaml:"timeout_s" mapstructure:"timeout_s"`
	MaxRetries      int     `yaml:"max_retries" mapstructure:"max_retries"`
	Stream          bool    `yaml:"stream" mapstructure:"stream"`
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
}

// OllamaSettings configures a local Ollama backend.
type OllamaSettings struct {
	Model           string  `yaml:"model" mapstructure:"model"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
	TopP            float64 `yaml:"top_p" mapstructure:"top_p"`
	MaxOutputTokens int     `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	TimeoutSeconds  float64 `yaml:"timeout_s" mapstructure:"timeout_s"`
	MaxRetries      int     `yaml:"max_retries" mapstructure:"max_retries"`
	Stream          bool    `yaml:"stream" mapstructure:"stream"`
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
}

// EmbeddingProvider is the discriminant for embedding settings variants.
type EmbeddingProvider string

const (
	EmbeddingProviderVoyage EmbeddingProvider = "voyageai"
	EmbeddingProviderBGE    EmbeddingProvider = "bge"
)

// EmbeddingSettings selects exactly one embedding variant via Provider.
type EmbeddingSettings struct {
	Provider EmbeddingProvider `yaml:"provider" mapstructure:"provider"`
	Voyage   VoyageSettings    `yaml:"voyageai" mapstructure:"voyageai"`
	BGE      BGESettings       `yaml:"bge" mapstructure:"bge"`
}

// VoyageSettings configures the hosted Voyage embedding backend.
type VoyageSettings struct {
	Model          string  `yaml:"model" mapstructure:"model"`
	APIKey         string  `yaml:"api_key" mapstructure:"api_key"`
	BatchSize      int     `yaml:"batch_size" mapstructure:"batch_size"`
	TimeoutSeconds float64 `yaml:"timeout_s" mapstructure:"timeout_s"`
	Dimensions     int     `yaml:"dimensions" mapstructure:"dimensions"`
	Normalize      bool    `yaml:"normalize" mapstructure:"normalize"`
}

// BGESettings configures a local BGE embedding backend.
type BGESettings struct {
	Model          string  `yaml:"model" mapstructure:"model"`
	BatchSize      int     `yaml:"batch_size" mapstructure:"batch_size"`
	TimeoutSeconds float64 `yaml:"timeout_s" mapstructure:"timeout_s"`
	Dimensions     int     `yaml:"dimensions" mapstructure:"dimensions"`
	Normalize      bool    `yaml:"normalize" mapstructure:"normalize"`
}

// RetrievalMode selects the retrieval strategy.
type RetrievalMode string

const (
	RetrievalSimilarity RetrievalMode = "similarity"
	RetrievalKeyword    RetrievalMode = "keyword"
	RetrievalHybrid     RetrievalMode = "hybrid"
)

// RerankerProvider selects the post-retrieval reranker.
type RerankerProvider string

const (
	RerankerNone         RerankerProvider = "none"
	RerankerCrossEncoder RerankerProvider = "cross-encoder"
	RerankerGemini       RerankerProvider = "gemini-reranker"
)

// RetrievalSettings configures the retrieval stage.
type RetrievalSettings struct {
	Reranker       RerankerProvider  `yaml:"reranker" mapstructure:"reranker"`
	Mode           RetrievalMode     `yaml:"mode" mapstructure:"mode"`
	TopK           int               `yaml:"top_k" mapstructure:"top_k"`
	RerankTopN     int               `yaml:"rerank_top_n" mapstructure:"rerank_top_n"`
	MetadataFilter map[string]string `yaml:"metadata_filter" mapstructure:"metadata_filter"`
}

// ChunkingStrategy selects how extracted chunks are organized.
type ChunkingStrategy string

const (
	ChunkingHierarchical ChunkingStrategy = "hierarchical"
	ChunkingFlat         ChunkingStrategy = "flat"
)

// ChunkingSettings configures the ingestion stage. Language is fixed to
// python for now.
type ChunkingSettings struct {
	Strategy     ChunkingStrategy `yaml:"strategy" mapstructure:"strategy"`
	MaxChunkSize int              `yaml:"max_chunk_size" mapstructure:"max_chunk_size"`
	MaxOverlap   int              `yaml:"max_overlap" mapstructure:"max_overlap"`
	Language     string           `yaml:"language" mapstructure:"language"`
}

// PathsSettings holds user-supplied path rules layered on top of the
// repository's own ignore file.
type PathsSettings struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to exclude
}

// Default returns a configuration with the stock defaults.
func Default() *Config {
	return &Config{
		LLM: LLMSettings{
			Provider: LLMProviderGemini,
			Gemini: GeminiSettings{
				Model:           "gemini-3-flash-preview",
				Temperature:     0.2,
				TopP:            1.0,
				MaxOutputTokens: 512,
				TimeoutSeconds:  60.0,
				MaxRetries:      2,
				Stream:          true,
			},
			Ollama: OllamaSettings{
				Model:           "llama3.2",
				Temperature:     0.2,
				TopP:            1.0,
				MaxOutputTokens: 512,
				TimeoutSeconds:  60.0,
				MaxRetries:      2,
				Stream:          true,
				BaseURL:         "http://localhost:11434",
			},
		},
		Embedding: EmbeddingSettings{
			Provider: EmbeddingProviderVoyage,
			Voyage: VoyageSettings{
				Model:          "voyage-code-3",
				BatchSize:      64,
				TimeoutSeconds: 60.0,
				Dimensions:     1024,
				Normalize:      true,
			},
			BGE: BGESettings{
				Model:          "BGE-M3",
				BatchSize:      64,
				TimeoutSeconds: 60.0,
				Dimensions:     1024,
				Normalize:      true,
			},
		},
		Retrieval: RetrievalSettings{
			Reranker:       RerankerNone,
			Mode:           RetrievalHybrid,
			TopK:           3,
			RerankTopN:     3,
			MetadataFilter: map[string]string{},
		},
		Chunking: ChunkingSettings{
			Strategy:     ChunkingHierarchical,
			MaxChunkSize: 512,
			MaxOverlap:   75,
			Language:     "python",
		},
		Paths: PathsSettings{
			Ignore: []string{},
		},
		ProjectName: "Aurelia",
		DataDir:     "./data",
	}
}

// ActiveLLMModel returns the model name of the selected LLM variant.
func (c *Config) ActiveLLMModel() string {
	switch c.LLM.Provider {
	case LLMProviderGemini:
		return c.LLM.Gemini.Model
	case LLMProviderOllama:
		return c.LLM.Ollama.Model
	default:
		return ""
	}
}

// ActiveEmbeddingModel returns the model name of the selected embedding
// variant.
func (c *Config) ActiveEmbeddingModel() string {
	switch c.Embedding.Provider {
	case EmbeddingProviderVoyage:
		return c.Embedding.Voyage.Model
	case EmbeddingProviderBGE:
		return c.Embedding.BGE.Model
	default:
		return ""
	}
}
