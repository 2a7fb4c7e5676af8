package retrieval

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/fixdesk/fixdesk/internal/complaints"
)

// similarThreshold is the minimum similarity for two complaints to be
// considered related. It is stricter than the knowledge base threshold
// because complaint texts are short and noisy.
const similarThreshold = 0.4

// similarLimit caps how many related complaints are reported.
const similarLimit = 5

// SimilarComplaint is an existing complaint scored against a new one.
type SimilarComplaint struct {
	Complaint  complaints.Complaint `json:"complaint"`
	Similarity float32              `json:"similarity"`
}

// SimilarComplaints scores the candidate complaints against the given
// details and returns the closest ones, best first. Embedding failures
// degrade to an empty result.
func (r *Retriever) SimilarComplaints(ctx context.Context, details string, candidates []complaints.Complaint) []SimilarComplaint {
	if details == "" || len(candidates) == 0 {
		return nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, details)
	for _, c := range candidates {
		texts = append(texts, c.Details)
	}

	vecs, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		log.Printf("[retrieval] embedding complaints failed: %v", err)
		return nil
	}
	if len(vecs) != len(texts) {
		log.Printf("[retrieval] embedder returned %d vectors for %d texts", len(vecs), len(texts))
		return nil
	}

	query := vecs[0]
	var similar []SimilarComplaint
	for i, c := range candidates {
		sim := cosineSimilarity(query, vecs[i+1])
		if sim > similarThreshold {
			similar = append(similar, SimilarComplaint{Complaint: c, Similarity: sim})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})
	if len(similar) > similarLimit {
		similar = similar[:similarLimit]
	}
	return similar
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
