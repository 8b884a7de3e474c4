package answer

import "testing"

func TestExtract_LabeledField(t *testing.T) {
	text := "CONCEPT: Ohm's law\nSOLUTION: V = IR so I = 2A\nANSWER: C\nCONFIDENCE: 92"
	got := Extract(text, DefaultConfig())

	if got.Answer != "C" {
		t.Errorf("answer = %q, want C", got.Answer)
	}
	if got.Confidence != 92 {
		t.Errorf("confidence = %d, want 92", got.Confidence)
	}
	if got.Uncertain {
		t.Error("expected certain result")
	}
	if got.Strategy != "labeled-field" {
		t.Errorf("strategy = %q", got.Strategy)
	}
}

func TestExtract_PhrasingCascade(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"After working through the algebra, the answer is B because both sides match.", "B"},
		{"Correct answer: D", "D"},
		{"Option C is correct since momentum is conserved.", "C"},
		{"We should select A here.", "A"},
		{"Final answer: D", "D"},
		{"(B) is correct.", "B"},
	}
	for _, tt := range tests {
		got := Extract(tt.text, DefaultConfig())
		if got.Answer != tt.want {
			t.Errorf("Extract(%q).Answer = %q, want %q", tt.text, got.Answer, tt.want)
		}
		if got.Uncertain {
			t.Errorf("Extract(%q) unexpectedly uncertain", tt.text)
		}
	}
}

func TestExtract_TrailingLetter(t *testing.T) {
	text := "Comparing the options, the value 6.4 matches, so D seems right."
	got := Extract(text, DefaultConfig())
	if got.Answer != "D" {
		t.Errorf("answer = %q, want D", got.Answer)
	}
	if got.Strategy != "trailing-letter" {
		t.Errorf("strategy = %q, want trailing-letter", got.Strategy)
	}
}

func TestExtract_TrailingLetter_PicksLast(t *testing.T) {
	text := "It is not A and not B. After checking, C."
	got := Extract(text, DefaultConfig())
	if got.Answer != "C" {
		t.Errorf("answer = %q, want C (the last free-standing letter)", got.Answer)
	}
}

func TestExtract_FailSoftSentinel(t *testing.T) {
	text := "The model rambled about thermodynamics without ever committing to an option."
	got := Extract(text, DefaultConfig())

	if got.Answer != "A" {
		t.Errorf("answer = %q, want default A", got.Answer)
	}
	if got.Confidence != 50 {
		t.Errorf("confidence = %d, want 50", got.Confidence)
	}
	if !got.Uncertain {
		t.Error("expected uncertain sentinel")
	}
}

func TestExtract_ConfidenceDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultConfidence = 70

	got := Extract("ANSWER: B", cfg)
	if got.Confidence != 70 {
		t.Errorf("confidence = %d, want default 70", got.Confidence)
	}
}

func TestExtract_ConfidenceClamped(t *testing.T) {
	got := Extract("ANSWER: B\nCONFIDENCE: 180", DefaultConfig())
	if got.Confidence != 100 {
		t.Errorf("confidence = %d, want clamp to 100", got.Confidence)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "ANSWER: C\nCONFIDENCE: 88"
	first := Extract(text, DefaultConfig())
	second := Extract(text, DefaultConfig())
	if first != second {
		t.Errorf("extraction is not idempotent: %+v vs %+v", first, second)
	}
}

func TestExtract_OverriddenDefaultLetter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLetter = "C"
	got := Extract("nothing useful", cfg)
	if got.Answer != "C" {
		t.Errorf("answer = %q, want overridden default C", got.Answer)
	}
}

func TestExtractFromSnippet(t *testing.T) {
	if a, ok := ExtractFromSnippet("NEET 2021 Q27 solution: the answer is B, by Kirchhoff's voltage law"); !ok || a != "B" {
		t.Errorf("got (%q, %v), want (B, true)", a, ok)
	}
	// Bare letters in snippets must not count as answers.
	if a, ok := ExtractFromSnippet("Chapter B covers circuits."); ok {
		t.Errorf("got (%q, true), want miss", a)
	}
}
