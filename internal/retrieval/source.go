package retrieval

import (
	"context"
	"fmt"
	"log"

	"github.com/YuvaneshSankar/OrbitAI/internal/storage"
)

// Embedder generates vector embeddings for text content.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorSearcher performs nearest-neighbor search over stored vectors.
type VectorSearcher interface {
	Upsert(ctx context.Context, docID string, vector []float32) error
	Search(ctx context.Context, queryVec []float32, limit int) []storage.ScoredResult
}

// ContentLookup hydrates document contents by ID.
type ContentLookup interface {
	GetDocument(id string) (*storage.DocumentRecord, error)
	SaveDocument(doc *storage.DocumentRecord) error
}

// VectorSource adapts an embedder plus a vector store into a retrieval
// Store: embed the query, KNN search, hydrate contents.
type VectorSource struct {
	name     string
	embedder Embedder
	vectors  VectorSearcher
	docs     ContentLookup
}

// NewVectorSource creates a vector-backed retrieval source.
func NewVectorSource(name string, embedder Embedder, vectors VectorSearcher, docs ContentLookup) *VectorSource {
	return &VectorSource{
		name:     name,
		embedder: embedder,
		vectors:  vectors,
		docs:     docs,
	}
}

func (s *VectorSource) Name() string { return s.name }

// Similar returns the k nearest documents to the query.
func (s *VectorSource) Similar(ctx context.Context, query string, k int) ([]Document, error) {
	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := s.vectors.Search(ctx, vec, k)

	docs := make([]Document, 0, len(results))
	for _, r := range results {
		record, err := s.docs.GetDocument(r.ID)
		if err != nil {
			// A vector without a backing record is stale; skip it
			log.Printf("Warning: no document for vector %s: %v", r.ID, err)
			continue
		}
		docs = append(docs, Document{
			Content: record.Content,
			Source:  s.name,
			Score:   r.Score,
		})
	}

	return docs, nil
}

// Indexer embeds and stores documents into a vector source.
type Indexer struct {
	embedder Embedder
	vectors  VectorSearcher
	docs     ContentLookup
}

// NewIndexer creates an indexer for the given backing stores.
func NewIndexer(embedder Embedder, vectors VectorSearcher, docs ContentLookup) *Indexer {
	return &Indexer{
		embedder: embedder,
		vectors:  vectors,
		docs:     docs,
	}
}

// Index saves the records and upserts their embeddings. Metadata is saved
// first: an orphaned record is easier to clean up than an orphaned vector.
func (ix *Indexer) Index(ctx context.Context, records []*storage.DocumentRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Content
	}

	vectors, err := ix.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding documents: %w", err)
	}
	if len(vectors) != len(records) {
		return 0, fmt.Errorf("expected %d embeddings, got %d", len(records), len(vectors))
	}

	indexed := 0
	for i, rec := range records {
		if err := ix.docs.SaveDocument(rec); err != nil {
			return indexed, fmt.Errorf("saving document %s: %w", rec.ID, err)
		}
		if err := ix.vectors.Upsert(ctx, rec.ID, vectors[i]); err != nil {
			return indexed, fmt.Errorf("storing vector %s: %w", rec.ID, err)
		}
		indexed++
	}

	return indexed, nil
}
