package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-user settings directory under $HOME.
const ConfigDirName = ".aurelia"

// ConfigFileName is the settings file inside the config directory.
const ConfigFileName = "config.yaml"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults -> config file -> environment variables.
	Load() (*Config, error)
	// Save writes the configuration back to the config file.
	Save(cfg *Config) error
	// Path returns the config file path the loader reads and writes.
	Path() string
}

type loader struct {
	configDir string
}

// NewLoader creates a loader rooted at the user's home directory.
func NewLoader() (Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewLoaderAt(filepath.Join(home, ConfigDirName)), nil
}

// NewLoaderAt creates a loader over an explicit config directory.
// Used by tests and the --config flag.
func NewLoaderAt(configDir string) Loader {
	return &loader{configDir: configDir}
}

func (l *loader) Path() string {
	return filepath.Join(l.configDir, ConfigFileName)
}

// Load loads configuration with the following priority (highest first):
//  1. Environment variables (AURELIA_*)
//  2. Config file (~/.aurelia/config.yaml)
//  3. Default values
//
// A missing config file is not an error; the defaults apply.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(strings.TrimSuffix(ConfigFileName, ".yaml"))
	v.SetConfigType("yaml")
	v.AddConfigPath(l.configDir)

	v.SetEnvPrefix("AURELIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("llm.provider")
	v.BindEnv("llm.gemini.api_key")
	v.BindEnv("llm.gemini.model")
	v.BindEnv("llm.ollama.base_url")
	v.BindEnv("llm.ollama.model")
	v.BindEnv("embedding.provider")
	v.BindEnv("embedding.voyageai.api_key")
	v.BindEnv("retrieval.mode")
	v.BindEnv("retrieval.top_k")
	v.BindEnv("chunking.strategy")
	v.BindEnv("chunking.language")
	v.BindEnv("data_dir")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the config directory
// if needed.
func (l *loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(l.Path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults seeds viper with the Default() values so partial config
// files merge over a complete baseline.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("llm.provider", string(d.LLM.Provider))
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.gemini.temperature", d.LLM.Gemini.Temperature)
	v.SetDefault("llm.gemini.top_p", d.LLM.Gemini.TopP)
	v.SetDefault("llm.gemini.max_output_tokens", d.LLM.Gemini.MaxOutputTokens)
	v.SetDefault("llm.gemini.timeout_s", d.LLM.Gemini.TimeoutSeconds)
	v.SetDefault("llm.gemini.max_retries", d.LLM.Gemini.MaxRetries)
	v.SetDefault("llm.gemini.stream", d.LLM.Gemini.Stream)
	v.SetDefault("llm.ollama.model", d.LLM.Ollama.Model)
	v.SetDefault("llm.ollama.temperature", d.LLM.Ollama.Temperature)
	v.SetDefault("llm.ollama.top_p", d.LLM.Ollama.TopP)
	v.SetDefault("llm.ollama.max_output_tokens", d.LLM.Ollama.MaxOutputTokens)
	v.SetDefault("llm.ollama.timeout_s", d.LLM.Ollama.TimeoutSeconds)
	v.SetDefault("llm.ollama.max_retries", d.LLM.Ollama.MaxRetries)
	v.SetDefault("llm.ollama.stream", d.LLM.Ollama.Stream)
	v.SetDefault("llm.ollama.base_url", d.LLM.Ollama.BaseURL)

	v.SetDefault("embedding.provider", string(d.Embedding.Provider))
	v.SetDefault("embedding.voyageai.model", d.Embedding.Voyage.Model)
	v.SetDefault("embedding.voyageai.batch_size", d.Embedding.Voyage.BatchSize)
	v.SetDefault("embedding.voyageai.timeout_s", d.Embedding.Voyage.TimeoutSeconds)
	v.SetDefault("embedding.voyageai.dimensions", d.Embedding.Voyage.Dimensions)
	v.SetDefault("embedding.voyageai.normalize", d.Embedding.Voyage.Normalize)
	v.SetDefault("embedding.bge.model", d.Embedding.BGE.Model)
	v.SetDefault("embedding.bge.batch_size", d.Embedding.BGE.BatchSize)
	v.SetDefault("embedding.bge.timeout_s", d.Embedding.BGE.TimeoutSeconds)
	v.SetDefault("embedding.bge.dimensions", d.Embedding.BGE.Dimensions)
	v.SetDefault("embedding.bge.normalize", d.Embedding.BGE.Normalize)

	v.SetDefault("retrieval.reranker", string(d.Retrieval.Reranker))
	v.SetDefault("retrieval.mode", string(d.Retrieval.Mode))
	v.SetDefault("retrieval.top_k", d.Retrieval.TopK)
	v.SetDefault("retrieval.rerank_top_n", d.Retrieval.RerankTopN)
	v.SetDefault("retrieval.metadata_filter", d.Retrieval.MetadataFilter)

	v.SetDefault("chunking.strategy", string(d.Chunking.Strategy))
	v.SetDefault("chunking.max_chunk_size", d.Chunking.MaxChunkSize)
	v.SetDefault("chunking.max_overlap", d.Chunking.MaxOverlap)
	v.SetDefault("chunking.language", d.Chunking.Language)

	v.SetDefault("paths.ignore", d.Paths.Ignore)

	v.SetDefault("project_name", d.ProjectName)
	v.SetDefault("data_dir", d.DataDir)
}
