package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Embedding.Provider != ProviderLocal {
		t.Errorf("expected default embedding provider %q, got %q", ProviderLocal, cfg.Embedding.Provider)
	}
	if cfg.Oracle.Enabled {
		t.Error("oracle should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.fixdesk.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Database.Path = "data/test.db"
	original.Embedding.Provider = ProviderOpenAI
	original.Embedding.Model = "text-embedding-3-large"
	original.Oracle.Enabled = true
	original.Oracle.Model = "gpt-4o"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Database.Path != original.Database.Path {
		t.Errorf("database.path: got %q, want %q", loaded.Database.Path, original.Database.Path)
	}
	if loaded.Embedding.Provider != original.Embedding.Provider {
		t.Errorf("embedding.provider: got %q, want %q", loaded.Embedding.Provider, original.Embedding.Provider)
	}
	if loaded.Embedding.Model != original.Embedding.Model {
		t.Errorf("embedding.model: got %q, want %q", loaded.Embedding.Model, original.Embedding.Model)
	}
	if !loaded.Oracle.Enabled {
		t.Error("oracle.enabled should survive the round-trip")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of a missing file should not error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults, got port %d", cfg.Server.Port)
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	t.Setenv("FIXDESK_SERVER_PORT", "9999")
	t.Setenv("FIXDESK_EMBEDDING_PROVIDER", "ollama")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port: got %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Embedding.Provider != ProviderOllama {
		t.Errorf("embedding.provider: got %q, want ollama", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "nomic-embed-text" {
		t.Errorf("embedding.model: got %q, want the ollama default", cfg.Embedding.Model)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("port 0 should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Embedding.Provider = "huggingface"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown embedding provider should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Oracle.Enabled = true
	cfg.Oracle.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("enabled oracle without a model should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Database.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty database path should fail validation")
	}
}
