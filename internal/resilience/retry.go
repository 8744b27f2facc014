package resilience

import (
	"context"
	"time"
)

type RetryConfig struct {
	// MaxRetries adalah plafon pengulangan SETELAH panggilan pertama.
	// Nilai 3 berarti maksimal 4 panggilan total.
	MaxRetries int
	// Backoff adalah jeda antar percobaan.
	Backoff time.Duration
	// BackoffFactor is the multiplier applied per retry. 1.0 means a
	// fixed delay.
	BackoffFactor float64
	// MaxBackoff caps the delay when BackoffFactor > 1.
	MaxBackoff time.Duration
	// RetryIf decides whether a failure is retryable. Failures it rejects
	// propagate on the first attempt.
	RetryIf func(error) bool
	// OnRetry is called before each re-attempt.
	OnRetry func(retry int, err error, backoff time.Duration)
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		Backoff:       time.Second,
		BackoffFactor: 1.0,
	}
}

// Retry menjalankan fn sampai sukses atau plafon pengulangan habis.
// Kegagalan terakhir dikembalikan ke pemanggil. Jeda antar percobaan
// menghormati pembatalan context.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if cfg.BackoffFactor < 1 {
		cfg.BackoffFactor = 1.0
	}

	backoff := cfg.Backoff
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return zero, err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		if cfg.BackoffFactor > 1 {
			backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
			if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
				backoff = cfg.MaxBackoff
			}
		}
	}

	return zero, lastErr
}
