// Package pipeline wires the tiers together: image extraction, cache
// lookup, optional web search, LLM solving and persistence.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/snapsolve/internal/question"
	"github.com/abhisek/snapsolve/internal/store"
)

// CacheTier serves and stores answers by similarity.
type CacheTier interface {
	Lookup(ctx context.Context, q question.Question) (question.Solution, bool)
	Persist(ctx context.Context, q question.Question, sol question.Solution) error
}

// WebTier finds answers in public web content.
type WebTier interface {
	Find(ctx context.Context, q question.Question) (question.Solution, bool)
}

// SolveTier answers questions with an LLM.
type SolveTier interface {
	Solve(ctx context.Context, q question.Question) (question.Solution, error)
	Verify(ctx context.Context, q question.Question, sol question.Solution) question.Solution
}

// QueryLogger records resolved questions. Implemented by the store.
type QueryLogger interface {
	LogQuery(ctx context.Context, entry store.QueryLogEntry) error
}

// verifyThreshold is the confidence below which solve-tier answers are
// verified even when not requested.
const verifyThreshold = 85

// Options controls per-request resolution behavior.
type Options struct {
	// Verify runs the fast-model verification pass on solve-tier answers.
	Verify bool
}

// Orchestrator resolves one question through the tier cascade:
// cache, then web (when enabled), then LLM solve. The first tier that
// produces an answer wins.
type Orchestrator struct {
	cache     CacheTier
	web       WebTier
	solver    SolveTier
	log       QueryLogger
	enableWeb bool
}

// NewOrchestrator builds the tier cascade. cache, web and log may be
// nil; the corresponding steps are skipped. solver is required.
func NewOrchestrator(cache CacheTier, web WebTier, solver SolveTier, log QueryLogger, enableWeb bool) *Orchestrator {
	return &Orchestrator{
		cache:     cache,
		web:       web,
		solver:    solver,
		log:       log,
		enableWeb: enableWeb,
	}
}

// Resolve answers one question. It never returns an error: when every
// tier fails, the error placeholder solution is returned so batch runs
// always complete.
func (o *Orchestrator) Resolve(ctx context.Context, q question.Question, opts Options) question.Solution {
	start := time.Now()

	sol := o.resolve(ctx, q, opts)

	o.logQuery(ctx, q, sol, time.Since(start))
	return sol
}

func (o *Orchestrator) resolve(ctx context.Context, q question.Question, opts Options) question.Solution {
	if o.cache != nil {
		if sol, ok := o.cache.Lookup(ctx, q); ok {
			return sol
		}
	}

	if o.web != nil && o.enableWeb {
		if sol, ok := o.web.Find(ctx, q); ok {
			o.persist(ctx, q, sol)
			return sol
		}
	}

	sol, err := o.solver.Solve(ctx, q)
	if err != nil {
		return ErrorSolution(err)
	}

	// Low-confidence answers are always double-checked; higher ones only
	// on request.
	if opts.Verify || sol.Confidence < verifyThreshold {
		sol = o.solver.Verify(ctx, q, sol)
	}

	o.persist(ctx, q, sol)
	return sol
}

// persist stores a fresh answer for future cache hits. Every web and
// solve-tier answer is stored, uncertain ones included; at lookup time
// the acceptance bar keeps low-similarity records from being served.
// Error placeholders are never stored; persistence failures only warn.
func (o *Orchestrator) persist(ctx context.Context, q question.Question, sol question.Solution) {
	if o.cache == nil {
		return
	}
	switch sol.Source {
	case question.SourceWeb, question.SourceSolved, question.SourceSolvedUncertain:
	default:
		return
	}
	if err := o.cache.Persist(ctx, q, sol); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist answer: %v\n", err)
	}
}

func (o *Orchestrator) logQuery(ctx context.Context, q question.Question, sol question.Solution, elapsed time.Duration) {
	if o.log == nil {
		return
	}
	entry := store.QueryLogEntry{
		QuestionText:   q.Text,
		Answer:         sol.Answer,
		Source:         string(sol.Source),
		ResponseTimeMs: elapsed.Milliseconds(),
		CacheHit:       sol.Source == question.SourceCache,
	}
	if sol.Source == question.SourceError {
		entry.ErrorMessage = sol.Reasoning
	}
	err := o.log.LogQuery(ctx, entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log query: %v\n", err)
	}
}

// ErrorSolution is the per-question fail-soft placeholder.
func ErrorSolution(err error) question.Solution {
	reasoning := ""
	if err != nil {
		reasoning = err.Error()
	}
	return question.Solution{
		Answer:     "ERROR",
		Confidence: 0,
		Reasoning:  reasoning,
		Source:     question.SourceError,
	}
}
