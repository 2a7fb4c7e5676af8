// Package config loads the fixdesk configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix namespaces fixdesk's environment overrides:
// FIXDESK_SERVER_PORT -> server.port, and so on.
const envPrefix = "FIXDESK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FIXDESK_*). A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel(cfg.Embedding.Provider)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validEmbeddingProviders is the set of recognized embedding providers.
var validEmbeddingProviders = map[ProviderType]bool{
	ProviderLocal:  true,
	ProviderOpenAI: true,
	ProviderOllama: true,
}

// validOracleProviders is the set of recognized oracle providers.
var validOracleProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if !validEmbeddingProviders[c.Embedding.Provider] {
		return fmt.Errorf("invalid embedding.provider %q: must be one of local, openai, ollama", c.Embedding.Provider)
	}
	if c.Embedding.Provider != ProviderLocal && c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required for provider %q", c.Embedding.Provider)
	}

	if c.Oracle.Enabled {
		if !validOracleProviders[c.Oracle.Provider] {
			return fmt.Errorf("invalid oracle.provider %q: must be one of openai, ollama", c.Oracle.Provider)
		}
		if c.Oracle.Model == "" {
			return fmt.Errorf("oracle.model is required when the oracle is enabled")
		}
	}

	return nil
}
