package config

// defaultEmbeddingModels maps each embedding provider to its default model.
// The local embedder needs no model name.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults: a local embedder so
// the service runs with no API keys, and the oracle disabled.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			CORS: []string{"*"},
		},
		Database: DatabaseConfig{
			Path: "fixdesk.db",
		},
		Embedding: EmbeddingConfig{
			Provider: ProviderLocal,
		},
		Oracle: OracleConfig{
			Enabled:  false,
			Provider: ProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
	}
}

// DefaultEmbeddingModel returns the default model for a provider, or an
// empty string when the provider needs none.
func DefaultEmbeddingModel(provider ProviderType) string {
	return defaultEmbeddingModels[provider]
}
