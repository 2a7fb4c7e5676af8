package embeddings

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const localDimensions = 384

// LocalEmbedder is a deterministic, dependency-free embedder: each text is
// mapped to a normalized bag-of-words vector, with tokens hashed into a
// fixed number of buckets. Identical texts always produce identical vectors,
// and texts sharing tokens have proportionally high cosine similarity, which
// is enough for the small curated knowledge base. It is the default when no
// network embedding provider is configured, and the embedder used in tests.
type LocalEmbedder struct{}

// NewLocalEmbedder creates the local hashed bag-of-words embedder.
func NewLocalEmbedder() *LocalEmbedder { return &LocalEmbedder{} }

func (e *LocalEmbedder) Name() string { return "local-token-hash" }

func (e *LocalEmbedder) Dimensions() int { return localDimensions }

func (e *LocalEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = embedLocal(text)
	}
	return out, nil
}

func embedLocal(text string) []float32 {
	vec := make([]float32, localDimensions)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%localDimensions]++
	}

	// Normalize so cosine similarity is a plain dot product.
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
