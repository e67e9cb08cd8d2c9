package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Defaults for a Guard.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultOpenDuration = time.Minute
	tripAfterFailures   = 3
)

var errEmptyAdvice = errors.New("empty advice")

// Guard wraps an Advisor with a deadline and a circuit breaker. Every
// failure degrades to FallbackMessage.
type Guard struct {
	next     Advisor
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
	fallback string
}

// GuardOption configures a Guard.
type GuardOption func(*guardSettings)

type guardSettings struct {
	timeout      time.Duration
	openDuration time.Duration
	fallback     string
	logger       *zap.Logger
}

// WithTimeout bounds each call.
func WithTimeout(d time.Duration) GuardOption {
	return func(s *guardSettings) { s.timeout = d }
}

// WithOpenDuration sets how long the breaker stays open after tripping.
func WithOpenDuration(d time.Duration) GuardOption {
	return func(s *guardSettings) { s.openDuration = d }
}

// WithFallback replaces FallbackMessage.
func WithFallback(msg string) GuardOption {
	return func(s *guardSettings) { s.fallback = msg }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) GuardOption {
	return func(s *guardSettings) { s.logger = l }
}

// NewGuard wraps next. A nil next always yields the fallback.
func NewGuard(next Advisor, opts ...GuardOption) *Guard {
	s := guardSettings{
		timeout:      DefaultTimeout,
		openDuration: DefaultOpenDuration,
		fallback:     FallbackMessage,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}

	logger := s.logger
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "advisor",
		MaxRequests: 1,
		Timeout:     s.openDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfterFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("advisor circuit breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Guard{
		next:     next,
		timeout:  s.timeout,
		breaker:  breaker,
		logger:   logger,
		fallback: s.fallback,
	}
}

// Advise returns advice for summary, or the fallback message.
func (g *Guard) Advise(ctx context.Context, summary string) string {
	if g.next == nil {
		return g.fallback
	}

	res, err := g.breaker.Execute(func() (interface{}, error) {
		return g.call(ctx, summary)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			g.logger.Debug("advisor skipped", zap.Error(err))
		default:
			g.logger.Warn("advisor failed", zap.Error(err))
		}
		return g.fallback
	}
	return res.(string)
}

// State reports the breaker state: "closed", "open" or "half-open".
func (g *Guard) State() string {
	return g.breaker.State().String()
}

// call runs next under the deadline. A next that ignores its context is
// abandoned when the deadline passes.
func (g *Guard) call(ctx context.Context, summary string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := g.next.Advise(ctx, summary)
		done <- result{text, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if strings.TrimSpace(r.text) == "" {
			return "", errEmptyAdvice
		}
		return r.text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
