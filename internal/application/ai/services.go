package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

const DefaultTimeout = 30 * time.Second

// Outcome labels for generation metrics.
const (
	OutcomeOK       = "ok"
	OutcomeUpstream = "upstream"
	OutcomeParse    = "parse"
)

// Recorder receives one observation per generation attempt.
type Recorder interface {
	ObserveGeneration(kind, outcome string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, string, time.Duration) {}

// Service is the single gateway to the text model. One attempt per call, raced
// against Timeout; no retries.
type Service struct {
	client  ai.Client
	timeout time.Duration
	rec     Recorder
}

func NewService(client ai.Client, timeout time.Duration, rec Recorder) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{client: client, timeout: timeout, rec: rec}
}

type result struct {
	text string
	err  error
}

// Generate sends prompt and waits at most the configured timeout. The losing
// call is abandoned; its result lands in a buffered channel nobody reads.
func (s *Service) Generate(ctx context.Context, kind, prompt string) (string, error) {
	const op = "ai.Generate"
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		text, err := s.client.Generate(ctx, prompt)
		done <- result{text: text, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ai.ErrTimeout}
	}

	if res.err == nil && strings.TrimSpace(res.text) == "" {
		res.err = ai.ErrEmptyResponse
	}
	if res.err != nil {
		s.rec.ObserveGeneration(kind, OutcomeUpstream, time.Since(start))
		logger.FromContext(ctx).Warn("ai generation failed",
			zap.String("kind", kind),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(res.err),
		)
		if errors.Is(res.err, ai.ErrQuotaExceeded) {
			return "", apperr.Wrap(apperr.KindRateLimited, op, "AI quota exceeded, try again later", res.err)
		}
		return "", apperr.Wrap(apperr.KindUpstream, op, "AI error", res.err)
	}
	return res.text, nil
}

// GenerateJSON runs one generation and normalizes the answer into T.
func GenerateJSON[T any](ctx context.Context, s *Service, kind, prompt string, required []string) (T, error) {
	start := time.Now()
	text, err := s.Generate(ctx, kind, prompt)
	if err != nil {
		var zero T
		return zero, err
	}
	out, err := Normalize[T](text, required)
	if err != nil {
		s.rec.ObserveGeneration(kind, OutcomeParse, time.Since(start))
		logger.FromContext(ctx).Warn("ai response rejected",
			zap.String("kind", kind),
			zap.Int("response_len", len(text)),
			zap.Error(err),
		)
		return out, err
	}
	s.rec.ObserveGeneration(kind, OutcomeOK, time.Since(start))
	return out, nil
}
