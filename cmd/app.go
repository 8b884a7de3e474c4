package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapsolve/internal/cache"
	"github.com/abhisek/snapsolve/internal/extract"
	"github.com/abhisek/snapsolve/internal/llm"
	"github.com/abhisek/snapsolve/internal/pipeline"
	"github.com/abhisek/snapsolve/internal/solver"
	"github.com/abhisek/snapsolve/internal/store"
	"github.com/abhisek/snapsolve/internal/websearch"
)

const defaultEmbedModel = "nomic-embed-text"

// app holds the assembled pipeline and its resources.
type app struct {
	pipe  *pipeline.Pipeline
	store *store.Store // nil when running without a database
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// buildApp assembles the pipeline from flags and environment. The
// database is optional: without it the cache tier, query log and
// statistics are disabled and solving still works.
func buildApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		// No explicit configuration; probe the standard key variables.
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}

	a := &app{}

	if connStr := resolveDB(cmd); connStr != "" {
		st, err := store.New(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.store = st
	}

	eventRepo := store.NoopEvents()
	if a.store != nil {
		eventRepo = a.store.Events()
	}

	providers, err := llm.NewProviderSet(ctx, cfg, eventRepo)
	if err != nil {
		a.close()
		return nil, err
	}

	var cacheTier pipeline.CacheTier
	var queryLog pipeline.QueryLogger
	var stats pipeline.StatsSource
	if a.store != nil {
		embedder, err := store.NewOllamaEmbedder(
			os.Getenv("SNAPSOLVE_OLLAMA_HOST"),
			embedModel(),
		)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("configure embedder: %w", err)
		}
		cacheTier = cache.New(embedder, a.store)
		queryLog = a.store
		stats = a.store
	}

	var webTier pipeline.WebTier
	enableWeb, _ := cmd.Flags().GetBool("web")
	if enableWeb {
		webTier = websearch.New(websearch.NewDuckDuckGo(), websearch.NewHTTPFetcher())
	}

	orch := pipeline.NewOrchestrator(
		cacheTier,
		webTier,
		solver.New(providers.Solve, providers.Reasoning, providers.Fast),
		queryLog,
		enableWeb,
	)

	a.pipe = pipeline.New(extract.New(providers.Vision), orch, stats)
	return a, nil
}

// resolveDB returns the Postgres connection string from the --db flag,
// then SNAPSOLVE_DATABASE_URL. Empty means no database.
func resolveDB(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("db"); s != "" {
		return s
	}
	return os.Getenv("SNAPSOLVE_DATABASE_URL")
}

func embedModel() string {
	if m := os.Getenv("SNAPSOLVE_EMBED_MODEL"); m != "" {
		return m
	}
	return defaultEmbedModel
}

// loadImage reads an image file and sniffs its format.
func loadImage(path string) (extract.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Image{}, fmt.Errorf("read image: %w", err)
	}

	mime := extract.DetectMIME(data)
	if mime == "" {
		return extract.Image{}, fmt.Errorf("%s: unsupported image format, need JPEG or PNG", path)
	}
	return extract.Image{Data: data, MIME: mime}, nil
}
