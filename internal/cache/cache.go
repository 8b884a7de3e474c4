// Package cache serves previously solved questions by embedding
// similarity. Lookups are fail-soft: any embedding or search error is
// reported as a miss so the pipeline falls through to the next tier.
package cache

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/snapsolve/internal/question"
	"github.com/abhisek/snapsolve/internal/store"
)

const (
	// AcceptBar is the similarity a cached answer must strictly exceed
	// to be served without re-solving.
	AcceptBar = 0.85

	// RetrievalFloor is the minimum similarity for candidates returned
	// from the index. Matches between the floor and the bar are
	// retrieved but not served.
	RetrievalFloor = 0.70

	// TopK is how many candidates the index returns per lookup.
	TopK = 3
)

// Index is the similarity search surface the cache needs from storage.
type Index interface {
	SearchQuestions(ctx context.Context, embedding []float64, subject question.Subject, floor float64, topK int) ([]store.Match, error)
	PersistQuestion(ctx context.Context, rec store.QuestionRecord, embedding []float64) error
}

// Client is the cache tier over an embedding model and a vector index.
type Client struct {
	embedder store.Embedder
	index    Index
}

// New creates a cache Client.
func New(embedder store.Embedder, index Index) *Client {
	return &Client{embedder: embedder, index: index}
}

// Lookup finds a cached answer for the question. The best match is
// served only when its similarity strictly exceeds AcceptBar;
// everything else, including errors, is a miss. The served confidence
// is the similarity itself, not whatever the solving tier once
// reported for the stored record.
func (c *Client) Lookup(ctx context.Context, q question.Question) (question.Solution, bool) {
	embedding, err := c.embedder.Embed(ctx, q.EmbeddingText())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache lookup embedding failed: %v\n", err)
		return question.Solution{}, false
	}

	matches, err := c.index.SearchQuestions(ctx, embedding, q.Subject, RetrievalFloor, TopK)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache search failed: %v\n", err)
		return question.Solution{}, false
	}

	if len(matches) == 0 || matches[0].Similarity <= AcceptBar {
		return question.Solution{}, false
	}

	sol := matches[0].Record.Solution
	sol.Source = question.SourceCache
	sol.Confidence = question.ClampConfidence(int(matches[0].Similarity * 100))
	return sol, true
}

// Persist stores a freshly solved question for future lookups.
// The cache is append-only; near-duplicates are allowed and resolved at
// lookup time by similarity ranking.
func (c *Client) Persist(ctx context.Context, q question.Question, sol question.Solution) error {
	embedding, err := c.embedder.Embed(ctx, q.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed question: %w", err)
	}

	rec := store.QuestionRecord{
		Question: q,
		Solution: sol,
	}
	if err := c.index.PersistQuestion(ctx, rec, embedding); err != nil {
		return fmt.Errorf("persist question: %w", err)
	}
	return nil
}
