// Package summarize composes the two extraction paths behind a single
// Summarizer interface: the Groq-backed AI path and the deterministic
// heuristic path, with explicit fallback from the first to the second.
package summarize

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-copilot/internal/extract"
	pkgai "github.com/johnquangdev/meeting-copilot/pkg/ai"
)

// Summarizer produces a structured summary from raw transcript text.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*entities.MeetingSummary, error)
}

// HeuristicSummarizer wraps the pattern-matching extractor. It never
// returns an error, which is the property the fallback path relies on.
type HeuristicSummarizer struct{}

// NewHeuristicSummarizer creates a heuristic summarizer.
func NewHeuristicSummarizer() *HeuristicSummarizer {
	return &HeuristicSummarizer{}
}

// Summarize runs the local extractor. The error return exists only to
// satisfy the Summarizer interface and is always nil.
func (s *HeuristicSummarizer) Summarize(_ context.Context, transcript string) (*entities.MeetingSummary, error) {
	return extract.Extract(transcript), nil
}

// ChatClient is the slice of the Groq client the AI summarizer needs.
type ChatClient interface {
	GenerateAnalysis(ctx context.Context, transcript string) (string, error)
	Model() string
}

// AISummarizer delegates extraction to an LLM service and parses its JSON
// response into the shared MeetingSummary shape. Any failure (network,
// status, malformed response) surfaces as an error for the caller to
// handle; it performs no fallback itself.
type AISummarizer struct {
	client      ChatClient
	parser      *Parser
	maxRetries  uint64
	maxInterval time.Duration
	logger      *zap.Logger
}

// NewAISummarizer creates an AI summarizer with retry settings.
func NewAISummarizer(client ChatClient, maxRetries int, maxInterval time.Duration, logger *zap.Logger) *AISummarizer {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if maxInterval <= 0 {
		maxInterval = 10 * time.Second
	}
	return &AISummarizer{
		client:      client,
		parser:      NewParser(),
		maxRetries:  uint64(maxRetries),
		maxInterval: maxInterval,
		logger:      logger,
	}
}

// Summarize calls the LLM service with exponential backoff and parses the
// response. Client errors other than 429 are not retried.
func (s *AISummarizer) Summarize(ctx context.Context, transcript string) (*entities.MeetingSummary, error) {
	var content string

	callFn := func() error {
		var err error
		content, err = s.client.GenerateAnalysis(ctx, transcript)
		if err == nil {
			return nil
		}

		var statusErr *pkgai.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 && statusErr.StatusCode != 429 {
			return backoff.Permanent(err)
		}
		if s.logger != nil {
			s.logger.Warn("groq call failed, retrying", zap.Error(err))
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = s.maxInterval
	if err := backoff.Retry(callFn, backoff.WithContext(backoff.WithMaxRetries(bo, s.maxRetries), ctx)); err != nil {
		return nil, err
	}

	summary, err := s.parser.ParseAnalysis(content)
	if err != nil {
		return nil, err
	}
	summary.Source = entities.SummarySourceAI
	summary.ModelUsed = s.client.Model()
	return summary, nil
}

// FallbackSummarizer tries the primary summarizer and, on any failure,
// invokes the fallback. With a heuristic fallback the composition as a
// whole never fails.
type FallbackSummarizer struct {
	primary  Summarizer
	fallback Summarizer
	logger   *zap.Logger
}

// NewFallbackSummarizer composes primary and fallback. A nil primary means
// the AI path is not configured and every call goes straight to fallback.
func NewFallbackSummarizer(primary, fallback Summarizer, logger *zap.Logger) *FallbackSummarizer {
	return &FallbackSummarizer{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Summarize runs the two-stage pipeline.
func (s *FallbackSummarizer) Summarize(ctx context.Context, transcript string) (*entities.MeetingSummary, error) {
	if s.primary != nil {
		summary, err := s.primary.Summarize(ctx, transcript)
		if err == nil {
			return summary, nil
		}
		if s.logger != nil {
			s.logger.Warn("primary summarizer failed, using fallback", zap.Error(err))
		}
	}
	return s.fallback.Summarize(ctx, transcript)
}
