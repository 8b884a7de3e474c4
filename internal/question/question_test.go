package question

import "testing"

func validOptions() map[Letter]string {
	return map[Letter]string{
		LetterA: "2",
		LetterB: "4",
		LetterC: "6",
		LetterD: "8",
	}
}

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		in   string
		want Subject
	}{
		{"math", SubjectMath},
		{"physics", SubjectPhysics},
		{"Chemistry", SubjectChemistry},
		{" PHYSICS ", SubjectPhysics},
		{"biology", SubjectMath},
		{"", SubjectMath},
	}
	for _, tt := range tests {
		if got := NormalizeSubject(tt.in); got != tt.want {
			t.Errorf("NormalizeSubject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_OK(t *testing.T) {
	q := &Question{Text: "What is 2+2?", Subject: SubjectMath, Options: validOptions()}
	if err := q.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingText(t *testing.T) {
	q := &Question{Text: "   ", Options: validOptions()}
	if err := q.Validate(); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestValidate_IncompleteOptions(t *testing.T) {
	opts := validOptions()
	delete(opts, LetterD)
	q := &Question{Text: "What is 2+2?", Options: opts}
	if err := q.Validate(); err == nil {
		t.Fatal("expected error for missing option")
	}

	opts = validOptions()
	opts[LetterC] = "  "
	q = &Question{Text: "What is 2+2?", Options: opts}
	if err := q.Validate(); err == nil {
		t.Fatal("expected error for blank option text")
	}
}

func TestEmbeddingText(t *testing.T) {
	q := &Question{Text: "Find the derivative.", Equations: []string{"f(x) = x^2", "g(x) = 2x"}}
	want := "Find the derivative. f(x) = x^2 g(x) = 2x"
	if got := q.EmbeddingText(); got != want {
		t.Errorf("EmbeddingText() = %q, want %q", got, want)
	}

	q = &Question{Text: "No equations here."}
	if got := q.EmbeddingText(); got != "No equations here." {
		t.Errorf("EmbeddingText() = %q", got)
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 0}, {0, 0}, {50, 50}, {100, 100}, {110, 100},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsLetter(t *testing.T) {
	for _, s := range []string{"A", "b", " C ", "d"} {
		if !IsLetter(s) {
			t.Errorf("IsLetter(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"E", "", "AB", "1"} {
		if IsLetter(s) {
			t.Errorf("IsLetter(%q) = true, want false", s)
		}
	}
}
