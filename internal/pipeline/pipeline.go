package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/snapsolve/internal/extract"
	"github.com/abhisek/snapsolve/internal/question"
	"github.com/abhisek/snapsolve/internal/store"
)

// ImageParser extracts questions from images. Implemented by extract.Extractor.
type ImageParser interface {
	ExtractAll(ctx context.Context, img extract.Image) ([]question.Question, error)
	ExtractOne(ctx context.Context, img extract.Image) (question.Question, error)
}

// StatsSource reports cache and query statistics. Implemented by the store.
type StatsSource interface {
	Statistics(ctx context.Context) (*store.Statistics, error)
}

// Resolved pairs a question with its solution.
type Resolved struct {
	Question question.Question `json:"question"`
	Solution question.Solution `json:"solution"`
}

// Timing breaks down where an image request spent its time.
type Timing struct {
	Extract time.Duration `json:"extract"`
	Resolve time.Duration `json:"resolve"`
	Total   time.Duration `json:"total"`
}

// ImageResult is the outcome of solving one image.
type ImageResult struct {
	Questions []Resolved `json:"questions"`
	Timing    Timing     `json:"timing"`
}

// Pipeline is the top-level facade: image in, answers out.
type Pipeline struct {
	parser ImageParser
	orch   *Orchestrator
	stats  StatsSource
}

// New assembles a Pipeline. stats may be nil when running without a
// database.
func New(parser ImageParser, orch *Orchestrator, stats StatsSource) *Pipeline {
	return &Pipeline{parser: parser, orch: orch, stats: stats}
}

// SolveAll extracts every question from the image and resolves each one.
// A question that fails gets the error placeholder; the extraction
// failing entirely is the only hard error.
func (p *Pipeline) SolveAll(ctx context.Context, img extract.Image, opts Options) (*ImageResult, error) {
	start := time.Now()

	questions, err := p.parser.ExtractAll(ctx, img)
	if err != nil {
		return nil, err
	}
	extractDone := time.Now()

	result := &ImageResult{
		Questions: make([]Resolved, 0, len(questions)),
	}
	for _, q := range questions {
		result.Questions = append(result.Questions, Resolved{
			Question: q,
			Solution: p.orch.Resolve(ctx, q, opts),
		})
	}

	now := time.Now()
	result.Timing = Timing{
		Extract: extractDone.Sub(start),
		Resolve: now.Sub(extractDone),
		Total:   now.Sub(start),
	}
	return result, nil
}

// SolveOne extracts only the first question from the image and resolves it.
func (p *Pipeline) SolveOne(ctx context.Context, img extract.Image, opts Options) (*ImageResult, error) {
	start := time.Now()

	q, err := p.parser.ExtractOne(ctx, img)
	if err != nil {
		return nil, err
	}
	extractDone := time.Now()

	resolved := Resolved{
		Question: q,
		Solution: p.orch.Resolve(ctx, q, opts),
	}

	now := time.Now()
	return &ImageResult{
		Questions: []Resolved{resolved},
		Timing: Timing{
			Extract: extractDone.Sub(start),
			Resolve: now.Sub(extractDone),
			Total:   now.Sub(start),
		},
	}, nil
}

// BatchItem is the outcome for one image in a batch run.
type BatchItem struct {
	Index  int          `json:"index"`
	Result *ImageResult `json:"result,omitempty"`
	Err    error        `json:"-"`
}

// Batch solves multiple images concurrently, bounded by concurrency.
// The returned slice has one item per input image, in input order;
// failed images carry their error instead of a result.
func (p *Pipeline) Batch(ctx context.Context, images []extract.Image, opts Options, concurrency int) []BatchItem {
	if concurrency < 1 {
		concurrency = 1
	}

	items := make([]BatchItem, len(images))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, img := range images {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, img extract.Image) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := p.SolveAll(ctx, img, opts)
			items[i] = BatchItem{Index: i, Result: result, Err: err}
		}(i, img)
	}

	wg.Wait()
	return items
}

// Statistics reports cache and query history aggregates.
func (p *Pipeline) Statistics(ctx context.Context) (*store.Statistics, error) {
	if p.stats == nil {
		return &store.Statistics{BySubject: map[string]int64{}}, nil
	}
	return p.stats.Statistics(ctx)
}
