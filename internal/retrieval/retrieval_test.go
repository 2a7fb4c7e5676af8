package retrieval

import (
	"context"
	"testing"
	"time"

	"github.com/fixdesk/fixdesk/internal/complaints"
	"github.com/fixdesk/fixdesk/internal/embeddings"
)

func setupTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	r, err := NewRetriever(context.Background(), embeddings.NewLocalEmbedder())
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}
	return r
}

func TestSearchFindsNetworkScenario(t *testing.T) {
	r := setupTestRetriever(t)

	matches := r.Search(context.Background(), "internet is very slow and wifi keeps dropping", 3)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Entry.Category != "Network" {
		t.Errorf("top match category = %q, want Network", matches[0].Entry.Category)
	}
	if matches[0].Similarity < kbThreshold {
		t.Errorf("top match similarity = %v, want >= %v", matches[0].Similarity, kbThreshold)
	}
}

func TestSearchIrrelevantQueryReturnsNothing(t *testing.T) {
	r := setupTestRetriever(t)

	matches := r.Search(context.Background(), "purple elephants dancing gracefully", 3)
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none below threshold", matches)
	}
}

func TestSearchClampsTopK(t *testing.T) {
	r := setupTestRetriever(t)

	// Asking for more results than the knowledge base holds must not error.
	matches := r.Search(context.Background(), "laptop hardware problems not working", 50)
	if len(matches) == 0 {
		t.Fatal("expected matches for a hardware query")
	}
}

func TestGuidanceFallsBackToDefault(t *testing.T) {
	r := setupTestRetriever(t)

	response, entry := r.Guidance(context.Background(), "purple elephants dancing gracefully")
	if response != DefaultGuidance {
		t.Errorf("response = %q, want default guidance", response)
	}
	if entry != nil {
		t.Errorf("entry = %v, want nil", entry)
	}

	response, entry = r.Guidance(context.Background(), "my laptop is not working, hardware problems")
	if entry == nil {
		t.Fatal("expected a matched entry")
	}
	if response != entry.Response {
		t.Errorf("response = %q, want the matched entry response", response)
	}
}

func makeComplaint(id, details string) complaints.Complaint {
	return complaints.Complaint{
		ComplaintID: id,
		Name:        "Test User",
		Mobile:      "9876543210",
		Details:     details,
		Category:    complaints.CategoryOther,
		Status:      complaints.StatusRegistered,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestSimilarComplaintsOrdersByScore(t *testing.T) {
	r := setupTestRetriever(t)

	candidates := []complaints.Complaint{
		makeComplaint("CMP00000001", "the billing invoice has wrong charges"),
		makeComplaint("CMP00000002", "my wifi connection is very slow and the internet keeps dropping"),
		makeComplaint("CMP00000003", "wifi is slow in the mornings"),
	}

	similar := r.SimilarComplaints(context.Background(),
		"my wifi internet connection is slow and keeps dropping", candidates)
	if len(similar) == 0 {
		t.Fatal("expected similar complaints")
	}
	if similar[0].Complaint.ComplaintID != "CMP00000002" {
		t.Errorf("top similar = %s, want CMP00000002", similar[0].Complaint.ComplaintID)
	}
	for i := 1; i < len(similar); i++ {
		if similar[i].Similarity > similar[i-1].Similarity {
			t.Errorf("results not sorted by similarity: %v", similar)
		}
	}
	for _, s := range similar {
		if s.Complaint.ComplaintID == "CMP00000001" {
			t.Error("billing complaint should not clear the similarity threshold")
		}
	}
}

func TestSimilarComplaintsCapsResults(t *testing.T) {
	r := setupTestRetriever(t)

	var candidates []complaints.Complaint
	for i := 0; i < 8; i++ {
		candidates = append(candidates, makeComplaint("CMP0000000"+string(rune('0'+i)),
			"my wifi internet connection is slow and keeps dropping"))
	}

	similar := r.SimilarComplaints(context.Background(),
		"my wifi internet connection is slow and keeps dropping", candidates)
	if len(similar) != similarLimit {
		t.Errorf("results = %d, want %d", len(similar), similarLimit)
	}
}

func TestSimilarComplaintsEmptyInputs(t *testing.T) {
	r := setupTestRetriever(t)

	if got := r.SimilarComplaints(context.Background(), "", nil); got != nil {
		t.Errorf("empty details: got %v, want nil", got)
	}
	if got := r.SimilarComplaints(context.Background(), "wifi is slow", nil); got != nil {
		t.Errorf("no candidates: got %v, want nil", got)
	}
}
