// Package vectorstore wraps an in-memory chromem-go collection built from
// document chunks, for similarity search over their embeddings.
package vectorstore

import (
	"context"
	"crypto/sha256"
	"fmt"
	"runtime"
	"strings"

	"github.com/philippgille/chromem-go"
)

const collectionName = "docs"

// Store is a vector index over a set of text chunks.
type Store struct {
	db            *chromem.DB
	embeddingFunc chromem.EmbeddingFunc
	count         int
}

// Result is a single similarity search hit.
type Result struct {
	Content    string
	Position   int
	Similarity float32
}

// Build creates an in-memory vector index over the given chunks using the
// supplied embedding function. Chunks that are empty after trimming are
// skipped.
func Build(ctx context.Context, chunks []string, embeddingFunc chromem.EmbeddingFunc) (*Store, error) {
	db := chromem.NewDB()

	coll, err := db.CreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:      chunkID(chunk, i),
			Content: chunk,
			Metadata: map[string]string{
				"position": fmt.Sprintf("%d", i),
			},
		})
	}

	if len(docs) > 0 {
		if err := coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("failed to add documents: %w", err)
		}
	}

	return &Store{
		db:            db,
		embeddingFunc: embeddingFunc,
		count:         len(docs),
	}, nil
}

// Count returns the number of indexed chunks.
func (s *Store) Count() int {
	return s.count
}

// Search returns up to topK chunks most similar to the query, ordered by
// similarity. Hits below minSimilarity are dropped.
func (s *Store) Search(ctx context.Context, query string, topK int, minSimilarity float32) ([]Result, error) {
	coll := s.db.GetCollection(collectionName, s.embeddingFunc)
	if coll == nil {
		return nil, fmt.Errorf("collection %q not found", collectionName)
	}

	if s.count == 0 {
		return nil, nil
	}
	if topK > s.count {
		topK = s.count
	}

	hits, err := coll.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	var results []Result
	for _, h := range hits {
		if h.Similarity < minSimilarity {
			continue
		}
		pos := 0
		fmt.Sscanf(h.Metadata["position"], "%d", &pos)
		results = append(results, Result{
			Content:    h.Content,
			Position:   pos,
			Similarity: h.Similarity,
		})
	}

	return results, nil
}

// chunkID derives a stable document ID from the chunk text and its position.
func chunkID(text string, position int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", position, text)))
	return fmt.Sprintf("%x", hash[:8])
}
