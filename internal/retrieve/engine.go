// Package retrieve sequences independent retrieval strategies against one
// target and returns the first validated success. Providers are unreliable and
// inconsistent; hiding each behind the Strategy contract keeps the engine
// provider-agnostic and lets new providers slot in without touching dispatch.
package retrieve

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// MediaKind tags what a strategy produced.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// Result is one retrieved asset. Either URL or Data must be set.
type Result struct {
	URL         string
	Data        []byte
	Kind        MediaKind
	QualityHint string
	SourceName  string
	Title       string
}

// Strategy is one concrete attempt against one external provider. A strategy
// is stateless and makes exactly one outbound call per Attempt; retry-with-
// backoff is expressed as additional strategies, never hidden inside one.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, target string) (*Result, error)
}

// TimeoutHinter lets an expensive strategy stretch (or shrink) the engine's
// default per-attempt timeout.
type TimeoutHinter interface {
	TimeoutHint() time.Duration
}

// ExhaustedError reports that every strategy failed. Attempts always equals
// the number of strategies configured.
type ExhaustedError struct {
	Target   string
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d strategies failed for %q", e.Attempts, e.Target)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Engine tries strategies strictly in order. First validated success wins;
// later strategies are never invoked. That is a latency trade-off, not a bug:
// "best of N" would pay for every provider on every call.
type Engine struct {
	log            zerolog.Logger
	defaultTimeout time.Duration
}

func NewEngine(defaultTimeout time.Duration, log zerolog.Logger) *Engine {
	if defaultTimeout <= 0 {
		defaultTimeout = 15 * time.Second
	}
	return &Engine{
		log:            log.With().Str("component", "retrieve").Logger(),
		defaultTimeout: defaultTimeout,
	}
}

// Retrieve returns the first strategy result that passes validation, or an
// *ExhaustedError once the list is spent. It never returns an empty success.
func (e *Engine) Retrieve(ctx context.Context, target string, strategies []Strategy) (*Result, error) {
	var lastErr error

	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := e.attempt(ctx, s, target)
		if err != nil {
			e.log.Debug().Str("strategy", s.Name()).Str("target", target).Err(err).Msg("strategy failed")
			lastErr = err
			continue
		}
		if err := Validate(res); err != nil {
			e.log.Debug().Str("strategy", s.Name()).Str("target", target).Err(err).Msg("result rejected")
			lastErr = fmt.Errorf("%s: %w", s.Name(), err)
			continue
		}

		res.SourceName = s.Name()
		e.log.Info().Str("strategy", s.Name()).Str("target", target).Msg("retrieved")
		return res, nil
	}

	return nil, &ExhaustedError{Target: target, Attempts: len(strategies), LastErr: lastErr}
}

func (e *Engine) attempt(ctx context.Context, s Strategy, target string) (*Result, error) {
	timeout := e.defaultTimeout
	if h, ok := s.(TimeoutHinter); ok && h.TimeoutHint() > 0 {
		timeout = h.TimeoutHint()
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.Attempt(attemptCtx, target)
}
