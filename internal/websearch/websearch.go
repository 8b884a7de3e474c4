// Package websearch looks for exact question matches in public web
// content. It is an optional middle tier: cheap snippet scanning first,
// then full page fetches, every failure degrading to a miss.
package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/snapsolve/internal/answer"
	"github.com/abhisek/snapsolve/internal/question"
)

const (
	// queryBudget caps how much question text goes into the search query.
	queryBudget = 200

	// maxResults is how many search results to request.
	maxResults = 10

	// maxCandidates is how many of those each pass actually inspects.
	maxCandidates = 5

	// presenceGuard is how much of the question text must appear on a
	// page before its content is trusted.
	presenceGuard = 100

	// contextWindow is how many characters around a page match are kept
	// as reasoning, before capping.
	contextWindow = 500

	// reasoningCap truncates the extracted reasoning context.
	reasoningCap = 300

	snippetConfidence = 90
	pageConfidence    = 95
)

// Result is one search engine hit.
type Result struct {
	URL     string
	Title   string
	Snippet string
}

// SearchEngine returns ranked results for a text query.
type SearchEngine interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// PageFetcher retrieves the visible text of a web page.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Searcher is the web tier over a search engine and a page fetcher.
type Searcher struct {
	engine  SearchEngine
	fetcher PageFetcher
}

// New creates a Searcher.
func New(engine SearchEngine, fetcher PageFetcher) *Searcher {
	return &Searcher{engine: engine, fetcher: fetcher}
}

// Find searches the web for the question's answer. Snippets are scanned
// first; only then are the candidate pages fetched. Any error, at any
// stage, is reported as a miss.
func (s *Searcher) Find(ctx context.Context, q question.Question) (question.Solution, bool) {
	results, err := s.engine.Search(ctx, buildQuery(q), maxResults)
	if err != nil || len(results) == 0 {
		return question.Solution{}, false
	}

	if len(results) > maxCandidates {
		results = results[:maxCandidates]
	}

	// Snippet pass: no extra network round-trips.
	for _, r := range results {
		if letter, ok := answer.ExtractFromSnippet(r.Snippet); ok {
			return question.Solution{
				Answer:     letter,
				Confidence: snippetConfidence,
				Reasoning:  fmt.Sprintf("Found in web results: %s\n%s", r.Title, truncate(r.Snippet, reasoningCap)),
				Source:     question.SourceWeb,
			}, true
		}
	}

	// Page pass: fetch each candidate and scan its text.
	for _, r := range results {
		sol, ok := s.scanPage(ctx, r.URL, q)
		if ok {
			return sol, true
		}
	}

	return question.Solution{}, false
}

// scanPage fetches one page and scans it for the answer. The page must
// actually contain the question text, otherwise any answer pattern on
// it refers to something else.
func (s *Searcher) scanPage(ctx context.Context, url string, q question.Question) (question.Solution, bool) {
	text, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		return question.Solution{}, false
	}

	lower := strings.ToLower(text)
	guard := strings.ToLower(q.Text)
	if len(guard) > presenceGuard {
		guard = guard[:presenceGuard]
	}
	if !strings.Contains(lower, guard) {
		return question.Solution{}, false
	}

	letter, start, end, ok := answer.FindMatch(lower)
	if !ok {
		return question.Solution{}, false
	}

	return question.Solution{
		Answer:     letter,
		Confidence: pageConfidence,
		Reasoning:  fmt.Sprintf("Found at %s: %s", url, contextAround(lower, start, end)),
		Source:     question.SourceWeb,
	}, true
}

// buildQuery flattens the question text into a search query within the
// budget, hinting with the question number when present.
func buildQuery(q question.Question) string {
	clean := strings.Join(strings.Fields(q.Text), " ")
	if len(clean) > queryBudget {
		clean = clean[:queryBudget]
	}
	if q.Number != "" {
		clean += fmt.Sprintf(" question %s %s", q.Number, q.Subject)
	}
	return clean
}

// contextAround returns the normalized text surrounding a match.
func contextAround(text string, start, end int) string {
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	to := end + contextWindow
	if to > len(text) {
		to = len(text)
	}

	context := strings.Join(strings.Fields(text[from:to]), " ")
	return truncate(context, reasoningCap)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
