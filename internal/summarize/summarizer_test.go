package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

type stubChat struct {
	content string
	err     error
	calls   int
}

func (s *stubChat) GenerateAnalysis(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.content, s.err
}

func (s *stubChat) Model() string { return "stub-model" }

func TestHeuristicSummarizer_NeverFails(t *testing.T) {
	s := NewHeuristicSummarizer()
	for _, input := range []string{"", "garbage \x00 bytes", "Decision: ok"} {
		res, err := s.Summarize(context.Background(), input)
		if err != nil {
			t.Fatalf("heuristic summarizer returned error for %q: %v", input, err)
		}
		if res == nil {
			t.Fatalf("heuristic summarizer returned nil summary")
		}
	}
}

func TestAISummarizer_Success(t *testing.T) {
	chat := &stubChat{content: `{"summary":"AI summary","decisions":["d"],"action_items":["a"],"owners":["O"],"risks":["r"]}`}
	s := NewAISummarizer(chat, 0, 0, nil)

	res, err := s.Summarize(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if res.Source != entities.SummarySourceAI {
		t.Fatalf("source = %q, want ai", res.Source)
	}
	if res.ModelUsed != "stub-model" {
		t.Fatalf("model = %q, want stub-model", res.ModelUsed)
	}
	if res.Summary != "AI summary" {
		t.Fatalf("summary = %q", res.Summary)
	}
}

func TestAISummarizer_ErrorSurfaces(t *testing.T) {
	chat := &stubChat{err: errors.New("connection refused")}
	s := NewAISummarizer(chat, 0, 0, nil)

	if _, err := s.Summarize(context.Background(), "transcript"); err == nil {
		t.Fatalf("expected error when the chat client fails")
	}
}

func TestAISummarizer_MalformedResponseIsError(t *testing.T) {
	chat := &stubChat{content: "I could not find any decisions."}
	s := NewAISummarizer(chat, 0, 0, nil)

	if _, err := s.Summarize(context.Background(), "transcript"); err == nil {
		t.Fatalf("expected error for malformed model output")
	}
}

func TestFallbackSummarizer_UsesPrimaryWhenHealthy(t *testing.T) {
	chat := &stubChat{content: `{"summary":"from ai"}`}
	primary := NewAISummarizer(chat, 0, 0, nil)
	fb := NewFallbackSummarizer(primary, NewHeuristicSummarizer(), nil)

	res, err := fb.Summarize(context.Background(), "Decision: keep the date")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if res.Summary != "from ai" {
		t.Fatalf("expected the AI result, got %q", res.Summary)
	}
}

func TestFallbackSummarizer_FallsBackOnFailure(t *testing.T) {
	chat := &stubChat{err: errors.New("quota exceeded")}
	primary := NewAISummarizer(chat, 0, 0, nil)
	fb := NewFallbackSummarizer(primary, NewHeuristicSummarizer(), nil)

	res, err := fb.Summarize(context.Background(), "Decision: keep the date")
	if err != nil {
		t.Fatalf("fallback pipeline must not fail: %v", err)
	}
	if len(res.Decisions) != 1 || res.Decisions[0] != "keep the date" {
		t.Fatalf("expected heuristic extraction, got %v", res.Decisions)
	}
	if res.Source != entities.SummarySourceHeuristic {
		t.Fatalf("source = %q, want heuristic", res.Source)
	}
}

func TestFallbackSummarizer_NilPrimary(t *testing.T) {
	fb := NewFallbackSummarizer(nil, NewHeuristicSummarizer(), nil)
	res, err := fb.Summarize(context.Background(), "Risk: nobody configured the AI path")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(res.Risks) != 1 {
		t.Fatalf("expected heuristic extraction, got %v", res.Risks)
	}
}
