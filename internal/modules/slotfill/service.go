// README: Model slot-filler; prompts the external model and retries once on malformed output.
package slotfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"smartdrive/internal/ai"
	"smartdrive/internal/modules/slots"
)

var (
	// ErrTransport wraps failures reaching the model (connection, status, timeout).
	ErrTransport = errors.New("model transport failure")
	// ErrMalformedReply is returned when both attempts produced unusable output.
	ErrMalformedReply = errors.New("model reply malformed after retry")
)

// generationOptions are the fixed low-temperature, bounded-length settings.
var generationOptions = ai.GenerateOptions{Temperature: 0, MaxTokens: 250, JSON: true}

const (
	DefaultTimeout = 60 * time.Second
	maxAttempts    = 2
)

var tracer = otel.Tracer("smartdrive/slotfill")

type Options struct {
	// Timeout bounds each model call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Limiter paces model calls across sessions. Nil disables pacing.
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

// Service asks the external model for slot updates.
type Service struct {
	gen     ai.Generator
	timeout time.Duration
	limiter *rate.Limiter
	log     *slog.Logger
}

func NewService(gen ai.Generator, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{gen: gen, timeout: opts.Timeout, limiter: opts.Limiter, log: opts.Logger}
}

// Fill proposes slot updates for one user message. Transport errors are returned at
// once wrapped in ErrTransport; a malformed reply is retried exactly once with a
// strict-format reminder, and a second failure is returned wrapped in ErrMalformedReply.
func (s *Service) Fill(ctx context.Context, message string, current slots.Slots, lastAsked slots.Name) (Proposal, error) {
	prompt := buildPrompt(message, current, lastAsked)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p := prompt
		if attempt > 1 {
			p += strictReminder
		}
		raw, err := s.generate(ctx, p, attempt)
		if err != nil {
			modelAttempts.WithLabelValues(s.gen.Name(), "transport_error").Inc()
			return Proposal{}, err
		}
		proposal, err := ParseReply(raw)
		if err == nil {
			modelAttempts.WithLabelValues(s.gen.Name(), "ok").Inc()
			return proposal, nil
		}
		modelAttempts.WithLabelValues(s.gen.Name(), "malformed").Inc()
		s.log.Warn("model reply rejected", "attempt", attempt, "provider", s.gen.Name(), "err", err)
		lastErr = err
	}
	return Proposal{}, fmt.Errorf("%w: %w", ErrMalformedReply, lastErr)
}

func (s *Service) generate(ctx context.Context, prompt string, attempt int) (string, error) {
	ctx, span := tracer.Start(ctx, "slotfill.generate")
	span.SetAttributes(
		attribute.String("model.provider", s.gen.Name()),
		attribute.Int("model.attempt", attempt),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			span.SetStatus(codes.Error, "rate limiter")
			return "", fmt.Errorf("%w: rate limiter: %w", ErrTransport, err)
		}
	}

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompt, generationOptions)
	modelLatency.WithLabelValues(s.gen.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate")
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return raw, nil
}
