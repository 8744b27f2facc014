package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func testPipelineConfig() PipelineConfig {
	return PipelineConfig{
		RateLimiter: RateLimiterConfig{
			Name:             "test",
			PermitsPerSecond: 1000,
			Burst:            1000,
			AcquireTimeout:   10 * time.Millisecond,
		},
		CircuitBreaker: CircuitBreakerConfig{
			Name:                 "test",
			SlidingWindowSize:    10,
			MinimumCalls:         5,
			FailureRateThreshold: 0.5,
			OpenTimeout:          30 * time.Second,
			HalfOpenMaxCalls:     2,
			Clock:                clockwork.NewFakeClock(),
		},
		Retry: RetryConfig{
			MaxRetries: 2,
			Backoff:    time.Millisecond,
			RetryIf:    func(err error) bool { return errors.Is(err, errTransient) },
		},
	}
}

func TestPipeline_PassesThroughSuccess(t *testing.T) {
	p := NewPipeline(testPipelineConfig())

	v, err := Execute(context.Background(), p, func() (int, error) {
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestPipeline_RetriesTransientThenSucceeds(t *testing.T) {
	p := NewPipeline(testPipelineConfig())

	calls := 0
	v, err := Execute(context.Background(), p, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "recovered", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, 3, calls)
}

func TestPipeline_RateLimitedIsNotRetried(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.RateLimiter.PermitsPerSecond = 0.001
	cfg.RateLimiter.Burst = 1
	cfg.RateLimiter.AcquireTimeout = 5 * time.Millisecond
	p := NewPipeline(cfg)

	_, _ = Execute(context.Background(), p, func() (int, error) { return 1, nil })

	calls := 0
	_, err := Execute(context.Background(), p, func() (int, error) {
		calls++
		return 1, nil
	})

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 0, calls)
}

func TestPipeline_OpenCircuitShortCircuitsWithoutCalling(t *testing.T) {
	p := NewPipeline(testPipelineConfig())

	// Dua Execute gagal beruntun mengisi window sampai threshold terlewati
	for i := 0; i < 2; i++ {
		_, _ = Execute(context.Background(), p, func() (int, error) {
			return 0, errTransient
		})
	}
	assert.Equal(t, StateOpen, p.Breaker().State())

	calls := 0
	_, err := Execute(context.Background(), p, func() (int, error) {
		calls++
		return 1, nil
	})

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 0, calls)
}

func TestPipeline_EveryAttemptPassesAdmissionFirst(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.RateLimiter.Burst = 2
	cfg.RateLimiter.PermitsPerSecond = 0.001
	cfg.RateLimiter.AcquireTimeout = 5 * time.Millisecond
	p := NewPipeline(cfg)

	// Tiga percobaan diminta, tapi hanya dua token tersedia: percobaan
	// ketiga ditolak limiter sebelum menyentuh fn.
	calls := 0
	_, err := Execute(context.Background(), p, func() (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 2, calls)
}
