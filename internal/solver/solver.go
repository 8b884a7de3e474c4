// Package solver answers extracted questions with an LLM and optionally
// verifies the result with a cheaper model.
package solver

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/snapsolve/internal/answer"
	"github.com/abhisek/snapsolve/internal/llm"
	"github.com/abhisek/snapsolve/internal/question"
)

const (
	solveTemperature  = 0.2
	verifyTemperature = 0.1

	solveMaxTokens  = 2500
	verifyMaxTokens = 50

	// incorrectCap is the confidence ceiling after a failed verification.
	incorrectCap = 60

	// correctBoost is added to confidence after a passed verification.
	correctBoost = 10
)

// Solver answers questions using per-role providers. Hard questions are
// routed to the reasoning model, everything else to the solve model.
type Solver struct {
	solve     llm.Provider
	reasoning llm.Provider
	fast      llm.Provider
	extract   answer.Config
}

// New creates a Solver over the given role providers.
func New(solve, reasoning, fast llm.Provider) *Solver {
	return &Solver{
		solve:     solve,
		reasoning: reasoning,
		fast:      fast,
		extract:   answer.DefaultConfig(),
	}
}

// Solve answers one question. The returned Solution always has a letter
// answer: unparseable model output degrades to the fail-soft default
// with the uncertain source tag rather than an error.
func (s *Solver) Solve(ctx context.Context, q question.Question) (question.Solution, error) {
	ctx = llm.WithPurpose(ctx, "solve")

	provider := s.solve
	if q.Difficulty == "hard" {
		provider = s.reasoning
	}

	resp, err := provider.Generate(ctx, llm.Request{
		System: systemPrompt(q),
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: userPrompt(q),
		}},
		MaxTokens:   solveMaxTokens,
		Temperature: solveTemperature,
	})
	if err != nil {
		return question.Solution{}, fmt.Errorf("solve request: %w", err)
	}

	ext := answer.Extract(resp.Text(), s.extract)

	source := question.SourceSolved
	if ext.Uncertain {
		source = question.SourceSolvedUncertain
	}

	return question.Solution{
		Answer:     ext.Answer,
		Confidence: ext.Confidence,
		Reasoning:  ext.Reasoning,
		Source:     source,
		ModelUsed:  provider.ModelID(),
	}, nil
}

// Verify double-checks a solution with the fast model and adjusts its
// confidence: capped when judged incorrect, boosted when confirmed.
// Verification errors leave the solution untouched.
func (s *Solver) Verify(ctx context.Context, q question.Question, sol question.Solution) question.Solution {
	ctx = llm.WithPurpose(ctx, "verify")

	resp, err := s.fast.Generate(ctx, llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: verifyPrompt(q, sol.Answer),
		}},
		MaxTokens:   verifyMaxTokens,
		Temperature: verifyTemperature,
	})
	if err != nil {
		return sol
	}

	verdict := strings.ToUpper(strings.TrimSpace(resp.Text()))
	correct := strings.Contains(verdict, "CORRECT") && !strings.Contains(verdict, "INCORRECT")

	if correct {
		sol.Confidence = question.ClampConfidence(sol.Confidence + correctBoost)
	} else {
		if sol.Confidence > incorrectCap {
			sol.Confidence = incorrectCap
		}
	}
	return sol
}
