package retrieval

import (
	"container/heap"
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/YuvaneshSankar/OrbitAI/internal/llm"
)

// Document is a retrieved candidate: transient, created per query and
// discarded after the answer is produced.
type Document struct {
	Content string
	Source  string
	Score   float64
}

// Store is one similarity-search source. The similarity metric and
// embedding model are store-specific and opaque to the engine.
type Store interface {
	Name() string
	Similar(ctx context.Context, query string, k int) ([]Document, error)
}

// Options bounds the retrieval pipeline.
type Options struct {
	MaxPerSource    int
	TopKAfterRerank int
	MinFragmentLen  int
	FallbackTopN    int
	Rerank          bool
}

// DefaultOptions returns the standard retrieval bounds.
func DefaultOptions() Options {
	return Options{
		MaxPerSource:    5,
		TopKAfterRerank: 5,
		MinFragmentLen:  10,
		FallbackTopN:    5,
		Rerank:          true,
	}
}

// Engine collects candidates from the configured stores, deduplicates and
// filters them, optionally re-ranks via LLM-scored relevance, and returns
// a bounded document set.
type Engine struct {
	stores []Store
	scorer llm.Client
	opts   Options
}

// NewEngine creates a retrieval engine. scorer may be nil, which disables
// re-ranking regardless of Options.Rerank.
func NewEngine(stores []Store, scorer llm.Client, opts Options) *Engine {
	if opts.MaxPerSource <= 0 {
		opts.MaxPerSource = 5
	}
	if opts.TopKAfterRerank <= 0 {
		opts.TopKAfterRerank = 5
	}
	if opts.FallbackTopN <= 0 {
		opts.FallbackTopN = 5
	}

	return &Engine{
		stores: stores,
		scorer: scorer,
		opts:   opts,
	}
}

// Retrieve returns at most k documents for the query. A single store being
// unreachable contributes zero documents and never aborts the others; if
// filtering and re-ranking leave nothing, the original top of the pool is
// returned so the caller can always attempt an answer.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]Document, error) {
	if k <= 0 {
		k = e.opts.TopKAfterRerank
	}

	// 1. Collect the candidate pool across all stores
	var pool []Document
	for _, store := range e.stores {
		docs, err := store.Similar(ctx, query, e.opts.MaxPerSource)
		if err != nil {
			log.Printf("Warning: store %s failed: %v", store.Name(), err)
			continue
		}
		if len(docs) > e.opts.MaxPerSource {
			docs = docs[:e.opts.MaxPerSource]
		}
		pool = append(pool, docs...)
	}

	// 2. Deduplicate by normalized text; drop short quoted fragments
	candidates := e.filterPool(pool)

	// 3. Optional LLM re-ranking
	if e.opts.Rerank && e.scorer != nil && len(candidates) > 0 {
		candidates = e.rerank(ctx, query, candidates)
	}

	// 4. Fallback: never return an empty set when the pool had results
	if len(candidates) == 0 {
		candidates = pool
		if len(candidates) > e.opts.FallbackTopN {
			candidates = candidates[:e.opts.FallbackTopN]
		}
	}

	// 5. Final bound
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	return candidates, nil
}

func (e *Engine) filterPool(pool []Document) []Document {
	seen := make(map[string]bool, len(pool))

	var out []Document
	for _, doc := range pool {
		content := strings.TrimSpace(doc.Content)
		if len(content) < e.opts.MinFragmentLen {
			continue
		}
		if strings.HasPrefix(content, `"`) {
			continue
		}

		norm := normalizeText(content)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, doc)
	}

	return out
}

// rerank scores every candidate with one LLM call each and keeps the
// TopKAfterRerank best. Ties keep original retrieval order.
func (e *Engine) rerank(ctx context.Context, query string, candidates []Document) []Document {
	h := &rankHeap{}
	heap.Init(h)

	for i, doc := range candidates {
		score := e.scoreRelevance(ctx, query, doc.Content)
		doc.Score = float64(score)
		heap.Push(h, rankedDoc{doc: doc, score: score, index: i})
	}

	limit := e.opts.TopKAfterRerank
	if limit > h.Len() {
		limit = h.Len()
	}

	out := make([]Document, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, heap.Pop(h).(rankedDoc).doc)
	}
	return out
}

var firstInteger = regexp.MustCompile(`\d+`)

// scoreRelevance asks the model for a 1-5 relevance score. Any text the
// integer cannot be pulled from defaults to 0.
func (e *Engine) scoreRelevance(ctx context.Context, query, content string) int {
	text, err := e.scorer.Complete(ctx, llm.RelevancePrompt(query, content))
	if err != nil {
		log.Printf("Warning: relevance scoring failed: %v", err)
		return 0
	}

	match := firstInteger.FindString(text)
	if match == "" {
		return 0
	}
	score, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return score
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// rankedDoc pairs a candidate with its score and original pool position.
type rankedDoc struct {
	doc   Document
	score int
	index int
}

// rankHeap is a max-heap on score, breaking ties by original order.
type rankHeap []rankedDoc

func (h rankHeap) Len() int { return len(h) }
func (h rankHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].index < h[j].index
}
func (h rankHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *rankHeap) Push(x any)   { *h = append(*h, x.(rankedDoc)) }
func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
