package resilience

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
)

type PipelineConfig struct {
	RateLimiter    RateLimiterConfig
	CircuitBreaker CircuitBreakerConfig
	Retry          RetryConfig
}

func DefaultPipelineConfig(name string) PipelineConfig {
	return PipelineConfig{
		RateLimiter:    DefaultRateLimiterConfig(name),
		CircuitBreaker: DefaultCircuitBreakerConfig(name),
		Retry:          DefaultRetryConfig(),
	}
}

// Pipeline menggabungkan ketiga kebijakan dengan urutan tetap per percobaan:
// rate limiter -> circuit breaker -> panggilan. Loop retry membungkus
// keseluruhan, sehingga setiap percobaan ulang tetap melewati admisi limiter
// dan breaker lebih dulu.
type Pipeline struct {
	rl    *RateLimiter
	cb    *CircuitBreaker
	retry RetryConfig
	clock clockwork.Clock
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	cb := NewCircuitBreaker(cfg.CircuitBreaker)

	// Sinyal internal pipeline tidak pernah di-retry, apa pun kata
	// classifier milik pemanggil.
	callerRetryIf := cfg.Retry.RetryIf
	cfg.Retry.RetryIf = func(err error) bool {
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrCircuitOpen) {
			return false
		}
		if callerRetryIf == nil {
			return false
		}
		return callerRetryIf(err)
	}

	return &Pipeline{
		rl:    NewRateLimiter(cfg.RateLimiter),
		cb:    cb,
		retry: cfg.Retry,
		clock: cb.clock,
	}
}

// Breaker exposes the shared circuit breaker, for logging and admin reset.
func (p *Pipeline) Breaker() *CircuitBreaker {
	return p.cb
}

// Execute runs fn through the pipeline. The pipeline's own state is shared
// across every invocation; fn carries no per-call resilience state.
func Execute[T any](ctx context.Context, p *Pipeline, fn func() (T, error)) (T, error) {
	return Retry(ctx, p.retry, func() (T, error) {
		var zero T
		if err := p.rl.Acquire(ctx); err != nil {
			return zero, err
		}
		if err := p.cb.Acquire(); err != nil {
			return zero, err
		}

		start := p.clock.Now()
		v, err := fn()
		p.cb.Record(err, p.clock.Since(start))
		return v, err
	})
}
