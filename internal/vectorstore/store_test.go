package vectorstore

import (
	"context"
	"strings"
	"testing"

	"github.com/philippgille/chromem-go"
)

// testEmbedding maps known texts to fixed orthogonal vectors so similarity
// scores are deterministic. Unknown texts embed to a vector close to "alpha".
func testEmbedding() chromem.EmbeddingFunc {
	vectors := map[string][]float32{
		"alpha": {1, 0, 0},
		"beta":  {0, 1, 0},
		"gamma": {0, 0, 1},
	}
	return func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		if strings.Contains(text, "alpha") {
			return []float32{0.99, 0.1, 0.1}, nil
		}
		return []float32{0.5, 0.5, 0.5}, nil
	}
}

func TestBuildAndCount(t *testing.T) {
	ctx := context.Background()

	store, err := Build(ctx, []string{"alpha", "beta", "gamma"}, testEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Count() != 3 {
		t.Errorf("expected 3 indexed chunks, got %d", store.Count())
	}
}

func TestBuildSkipsBlankChunks(t *testing.T) {
	ctx := context.Background()

	store, err := Build(ctx, []string{"alpha", "", "   ", "beta"}, testEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Count() != 2 {
		t.Errorf("expected blank chunks to be skipped, got count %d", store.Count())
	}
}

func TestBuildEmpty(t *testing.T) {
	ctx := context.Background()

	store, err := Build(ctx, nil, testEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got count %d", store.Count())
	}

	results, err := store.Search(ctx, "alpha", 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results from empty store, got %d", len(results))
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	ctx := context.Background()

	store, err := Build(ctx, []string{"alpha", "beta", "gamma"}, testEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := store.Search(ctx, "alpha", 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Content != "alpha" {
		t.Errorf("expected most similar chunk first, got %q", results[0].Content)
	}
	if results[0].Position != 0 {
		t.Errorf("expected position 0, got %d", results[0].Position)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not ordered by similarity at index %d", i)
		}
	}
}

func TestSearchMinSimilarityFilter(t *testing.T) {
	ctx := context.Background()

	store, err := Build(ctx, []string{"alpha", "beta", "gamma"}, testEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := store.Search(ctx, "alpha", 3, 0.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.Similarity < 0.9 {
			t.Errorf("result %q below similarity threshold: %v", r.Content, r.Similarity)
		}
	}
	if len(results) != 1 {
		t.Errorf("expected only the matching chunk above the threshold, got %d results", len(results))
	}
}

func TestSearchClampsTopK(t *testing.T) {
	ctx := context.Background()

	store, err := Build(ctx, []string{"alpha", "beta"}, testEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// topK larger than the store must not error.
	results, err := store.Search(ctx, "alpha", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) > 2 {
		t.Errorf("expected at most 2 results, got %d", len(results))
	}
}

func TestChunkIDStable(t *testing.T) {
	a := chunkID("same text", 3)
	b := chunkID("same text", 3)
	if a != b {
		t.Errorf("expected stable IDs, got %q and %q", a, b)
	}
	if a == chunkID("same text", 4) {
		t.Error("expected position to affect the ID")
	}
	if a == chunkID("other text", 3) {
		t.Error("expected content to affect the ID")
	}
}
