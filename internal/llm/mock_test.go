package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProviderFIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first"`)},
		MockResponse{Content: json.RawMessage(`"second"`)},
	)

	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	if resp.Text() != `"first"` {
		t.Errorf("first Text() = %q, want %q", resp.Text(), `"first"`)
	}

	resp, err = mock.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}
	if resp.Text() != `"second"` {
		t.Errorf("second Text() = %q, want %q", resp.Text(), `"second"`)
	}
}

func TestMockProviderEmptyQueue(t *testing.T) {
	mock := NewMockProvider()

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("error = %v, want *ErrProviderUnavailable", err)
	}
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"ok"`)},
	)

	req := Request{
		System:   "you are a solver",
		Messages: []Message{{Role: RoleUser, Content: "what is 2+2?"}},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount() = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].System != "you are a solver" {
		t.Errorf("recorded System = %q, want %q", mock.Calls[0].System, "you are a solver")
	}
	if mock.Calls[0].Messages[0].Content != "what is 2+2?" {
		t.Errorf("recorded Content = %q", mock.Calls[0].Messages[0].Content)
	}
}

func TestMockProviderAddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: json.RawMessage(`"late"`)})

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Text() != `"late"` {
		t.Errorf("Text() = %q, want %q", resp.Text(), `"late"`)
	}
}
