package resilience

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("rate limit exceeded")

type RateLimiterConfig struct {
	// Name identifies this rate limiter for logging.
	Name string
	// PermitsPerSecond adalah jumlah token yang diisi ulang per detik.
	PermitsPerSecond float64
	// Burst is the bucket capacity.
	Burst int
	// AcquireTimeout membatasi berapa lama pemanggil boleh menunggu token.
	// Lewat dari ini panggilan langsung gagal, tidak mengantre.
	AcquireTimeout time.Duration
	// OnLimit is called when a caller fails to acquire a token.
	OnLimit func(name string)
}

func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{
		Name:             name,
		PermitsPerSecond: 3,
		Burst:            3,
		AcquireTimeout:   500 * time.Millisecond,
	}
}

// RateLimiter adalah token bucket untuk admisi panggilan keluar.
type RateLimiter struct {
	config RateLimiterConfig
	lim    *rate.Limiter
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.PermitsPerSecond <= 0 {
		config.PermitsPerSecond = 3
	}
	if config.Burst <= 0 {
		config.Burst = int(config.PermitsPerSecond)
	}
	if config.AcquireTimeout <= 0 {
		config.AcquireTimeout = 500 * time.Millisecond
	}

	return &RateLimiter{
		config: config,
		lim:    rate.NewLimiter(rate.Limit(config.PermitsPerSecond), config.Burst),
	}
}

// Acquire blocks until a token is available, bounded by AcquireTimeout.
// Returns ErrRateLimited when no token can be acquired in time.
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, rl.config.AcquireTimeout)
	defer cancel()

	if err := rl.lim.Wait(waitCtx); err != nil {
		// Pembatalan dari pemanggil bukan kondisi rate-limited
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if rl.config.OnLimit != nil {
			rl.config.OnLimit(rl.config.Name)
		}
		return ErrRateLimited
	}
	return nil
}
