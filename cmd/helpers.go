package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fixdesk/fixdesk/internal/chat"
	"github.com/fixdesk/fixdesk/internal/complaints"
	"github.com/fixdesk/fixdesk/internal/config"
	"github.com/fixdesk/fixdesk/internal/db"
	"github.com/fixdesk/fixdesk/internal/embeddings"
	"github.com/fixdesk/fixdesk/internal/intent"
	"github.com/fixdesk/fixdesk/internal/llm"
	"github.com/fixdesk/fixdesk/internal/retrieval"
	"github.com/fixdesk/fixdesk/internal/session"
)

// createEmbedderFromConfig builds the embedder the config asks for.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.Embedding.Provider {
	case config.ProviderLocal:
		return embeddings.NewLocalEmbedder(), nil
	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.Embedding.Model)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.Embedding.Model, 768, os.Getenv("OLLAMA_HOST")), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// createClassifierFromConfig builds the intent classifier, attaching the LLM
// oracle only when the config enables it.
func createClassifierFromConfig(cfg *config.Config) (*intent.Classifier, error) {
	if !cfg.Oracle.Enabled {
		return intent.NewClassifier(nil), nil
	}
	provider, err := llm.NewProvider(string(cfg.Oracle.Provider), cfg.Oracle.Model)
	if err != nil {
		return nil, fmt.Errorf("creating oracle provider: %w", err)
	}
	return intent.NewClassifier(intent.NewOracle(provider, cfg.Oracle.Model)), nil
}

// application bundles the wired components shared by the server and the
// local REPL.
type application struct {
	db        *db.DB
	store     *complaints.Store
	retriever *retrieval.Retriever
	engine    *chat.Engine
}

// buildApplication wires the full stack from a validated config.
func buildApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	retriever, err := retrieval.NewRetriever(ctx, embedder)
	if err != nil {
		return nil, fmt.Errorf("building knowledge index: %w", err)
	}

	classifier, err := createClassifierFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := complaints.NewStore(database)
	engine := chat.NewEngine(session.NewManager(), classifier, retriever, store, chat.NewTranscripts(database))

	return &application{
		db:        database,
		store:     store,
		retriever: retriever,
		engine:    engine,
	}, nil
}

func (a *application) Close() error {
	return a.db.Close()
}
