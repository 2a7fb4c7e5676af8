// Package retrieval answers free-form questions from the static knowledge
// base using vector search, and finds previously registered complaints that
// resemble a new one.
package retrieval

import (
	"context"
	"fmt"
	"log"

	chromem "github.com/philippgille/chromem-go"

	"github.com/fixdesk/fixdesk/internal/embeddings"
	"github.com/fixdesk/fixdesk/internal/knowledge"
)

const collectionName = "knowledge"

// kbThreshold is the minimum similarity for a knowledge base match to be
// considered relevant.
const kbThreshold = 0.3

// DefaultGuidance is returned when no knowledge base entry clears the
// relevance threshold.
const DefaultGuidance = "I can help you register a complaint or check the status of an existing one. " +
	"Could you tell me a bit more about the problem you're having?"

// Match is a knowledge base entry scored against a query.
type Match struct {
	Entry      knowledge.Entry `json:"entry"`
	Similarity float32         `json:"similarity"`
}

// Retriever searches the knowledge base through an in-memory chromem
// collection. The knowledge base is fixed, so the collection is built once
// at construction.
type Retriever struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	entries    map[string]knowledge.Entry
}

// NewRetriever builds the knowledge collection, embedding every entry's
// scenario text with the given embedder.
func NewRetriever(ctx context.Context, embedder embeddings.Embedder) (*Retriever, error) {
	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(collectionName, nil, embeddings.ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	entries := knowledge.Entries()
	byID := make(map[string]knowledge.Entry, len(entries))
	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		byID[e.ID] = e
		docs[i] = chromem.Document{
			ID:      e.ID,
			Content: e.Scenario,
			Metadata: map[string]string{
				"category": e.Category,
			},
		}
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("indexing knowledge base: %w", err)
	}

	return &Retriever{
		db:         db,
		collection: col,
		embedder:   embedder,
		entries:    byID,
	}, nil
}

// Search returns the knowledge entries relevant to the query, best first.
// Matches below the relevance threshold are dropped, and retrieval failures
// degrade to an empty result so a chat turn never dies on them.
func (r *Retriever) Search(ctx context.Context, query string, topK int) []Match {
	if topK <= 0 {
		topK = 3
	}
	// chromem-go requires nResults <= collection size.
	if count := r.collection.Count(); count == 0 {
		return nil
	} else if topK > count {
		topK = count
	}

	results, err := r.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		log.Printf("[retrieval] knowledge query failed: %v", err)
		return nil
	}

	var matches []Match
	for _, res := range results {
		if res.Similarity < kbThreshold {
			continue
		}
		entry, ok := r.entries[res.ID]
		if !ok {
			continue
		}
		matches = append(matches, Match{Entry: entry, Similarity: res.Similarity})
	}
	return matches
}

// Guidance returns the best knowledge base response for the query, or the
// default guidance when nothing relevant is found. The matched entry is
// returned alongside so callers can surface follow-up questions.
func (r *Retriever) Guidance(ctx context.Context, query string) (string, *knowledge.Entry) {
	matches := r.Search(ctx, query, 1)
	if len(matches) == 0 {
		return DefaultGuidance, nil
	}
	entry := matches[0].Entry
	return entry.Response, &entry
}
