package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// Embedder produces an embedding vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// OllamaEmbedder generates embeddings via a local Ollama instance.
type OllamaEmbedder struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewOllamaEmbedder creates an embedder talking to the Ollama API at host.
// Empty host defaults to http://localhost:11434.
func NewOllamaEmbedder(host, model string) (*OllamaEmbedder, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	hostURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}

	return &OllamaEmbedder{
		client:  api.NewClient(hostURL, http.DefaultClient),
		model:   model,
		timeout: 30 * time.Second,
	}, nil
}

// Embed generates an embedding for the given text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	if len(resp.Embedding) != EmbeddingDim {
		return nil, fmt.Errorf("unexpected embedding dimension %d, want %d", len(resp.Embedding), EmbeddingDim)
	}

	return resp.Embedding, nil
}
