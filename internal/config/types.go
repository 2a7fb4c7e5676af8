package config

// ProviderType identifies an embedding or LLM provider.
type ProviderType string

const (
	ProviderLocal  ProviderType = "local"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level fixdesk configuration, corresponding to fixdesk.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Database  DatabaseConfig  `yaml:"database" koanf:"database"`
	Embedding EmbeddingConfig `yaml:"embedding" koanf:"embedding"`
	Oracle    OracleConfig    `yaml:"oracle" koanf:"oracle"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string   `yaml:"host" koanf:"host"`
	Port int      `yaml:"port" koanf:"port"`
	CORS []string `yaml:"cors" koanf:"cors"`
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// EmbeddingConfig selects the embedder used for knowledge retrieval and
// complaint similarity.
type EmbeddingConfig struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
}

// OracleConfig selects the optional LLM refinement for intent
// classification. With Enabled false the rule table runs alone.
type OracleConfig struct {
	Enabled  bool         `yaml:"enabled" koanf:"enabled"`
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
}
