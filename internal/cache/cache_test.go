package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/snapsolve/internal/question"
	"github.com/abhisek/snapsolve/internal/store"
)

type fakeEmbedder struct {
	embedding []float64
	err       error
	calls     int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	f.calls++
	return f.embedding, f.err
}

type fakeIndex struct {
	matches   []store.Match
	searchErr error
	persisted []store.QuestionRecord

	gotSubject question.Subject
	gotFloor   float64
	gotTopK    int
}

func (f *fakeIndex) SearchQuestions(_ context.Context, _ []float64, subject question.Subject, floor float64, topK int) ([]store.Match, error) {
	f.gotSubject = subject
	f.gotFloor = floor
	f.gotTopK = topK
	return f.matches, f.searchErr
}

func (f *fakeIndex) PersistQuestion(_ context.Context, rec store.QuestionRecord, _ []float64) error {
	f.persisted = append(f.persisted, rec)
	return nil
}

func cachedMatch(similarity float64) store.Match {
	return store.Match{
		Record: store.QuestionRecord{
			Solution: question.Solution{
				Answer:     "C",
				Confidence: 90,
				Reasoning:  "cached reasoning",
				Source:     question.SourceSolved,
			},
		},
		Similarity: similarity,
	}
}

func testQuestion() question.Question {
	return question.Question{
		Subject: question.SubjectMath,
		Text:    "What is 2+2?",
		Options: map[question.Letter]string{
			question.LetterA: "3", question.LetterB: "4",
			question.LetterC: "5", question.LetterD: "6",
		},
	}
}

func TestLookupHit(t *testing.T) {
	idx := &fakeIndex{matches: []store.Match{cachedMatch(0.93)}}
	c := New(&fakeEmbedder{embedding: []float64{1, 2}}, idx)

	sol, ok := c.Lookup(context.Background(), testQuestion())
	if !ok {
		t.Fatal("Lookup() ok = false, want hit")
	}
	if sol.Answer != "C" {
		t.Errorf("Answer = %q, want C", sol.Answer)
	}
	if sol.Source != question.SourceCache {
		t.Errorf("Source = %q, want %q (rewritten on hit)", sol.Source, question.SourceCache)
	}
	if sol.Confidence != 93 {
		t.Errorf("Confidence = %d, want 93 (derived from similarity)", sol.Confidence)
	}
}

func TestLookupBelowBarIsMiss(t *testing.T) {
	// Retrievable (>= floor) but not strictly above the acceptance bar.
	for _, similarity := range []float64{0.80, AcceptBar} {
		idx := &fakeIndex{matches: []store.Match{cachedMatch(similarity)}}
		c := New(&fakeEmbedder{embedding: []float64{1, 2}}, idx)

		if _, ok := c.Lookup(context.Background(), testQuestion()); ok {
			t.Errorf("Lookup() ok = true for similarity %v, want miss", similarity)
		}
	}
}

func TestLookupNoMatches(t *testing.T) {
	c := New(&fakeEmbedder{embedding: []float64{1, 2}}, &fakeIndex{})

	if _, ok := c.Lookup(context.Background(), testQuestion()); ok {
		t.Error("Lookup() ok = true with no matches, want miss")
	}
}

func TestLookupEmbedErrorIsMiss(t *testing.T) {
	idx := &fakeIndex{matches: []store.Match{cachedMatch(0.99)}}
	c := New(&fakeEmbedder{err: errors.New("ollama down")}, idx)

	if _, ok := c.Lookup(context.Background(), testQuestion()); ok {
		t.Error("Lookup() ok = true on embed error, want miss")
	}
}

func TestLookupSearchErrorIsMiss(t *testing.T) {
	idx := &fakeIndex{searchErr: errors.New("db down")}
	c := New(&fakeEmbedder{embedding: []float64{1, 2}}, idx)

	if _, ok := c.Lookup(context.Background(), testQuestion()); ok {
		t.Error("Lookup() ok = true on search error, want miss")
	}
}

func TestLookupPassesRetrievalParams(t *testing.T) {
	idx := &fakeIndex{}
	c := New(&fakeEmbedder{embedding: []float64{1, 2}}, idx)

	c.Lookup(context.Background(), testQuestion())

	if idx.gotSubject != question.SubjectMath {
		t.Errorf("subject = %q, want math", idx.gotSubject)
	}
	if idx.gotFloor != RetrievalFloor {
		t.Errorf("floor = %v, want %v", idx.gotFloor, RetrievalFloor)
	}
	if idx.gotTopK != TopK {
		t.Errorf("topK = %d, want %d", idx.gotTopK, TopK)
	}
}

func TestPersist(t *testing.T) {
	idx := &fakeIndex{}
	c := New(&fakeEmbedder{embedding: []float64{1, 2}}, idx)

	sol := question.Solution{Answer: "B", Confidence: 88, Source: question.SourceSolved}
	if err := c.Persist(context.Background(), testQuestion(), sol); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if len(idx.persisted) != 1 {
		t.Fatalf("persisted %d records, want 1", len(idx.persisted))
	}
	if idx.persisted[0].Solution.Answer != "B" {
		t.Errorf("persisted Answer = %q, want B", idx.persisted[0].Solution.Answer)
	}
}

func TestPersistEmbedError(t *testing.T) {
	c := New(&fakeEmbedder{err: errors.New("ollama down")}, &fakeIndex{})

	sol := question.Solution{Answer: "B"}
	if err := c.Persist(context.Background(), testQuestion(), sol); err == nil {
		t.Error("Persist() error = nil, want error")
	}
}
