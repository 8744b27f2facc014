package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed allows requests to pass through.
	StateClosed State = iota
	// StateOpen blocks all requests.
	StateOpen
	// StateHalfOpen allows limited trial requests to test recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	// Name identifies this circuit breaker for logging.
	Name string
	// SlidingWindowSize adalah jumlah outcome terakhir yang dihitung.
	SlidingWindowSize int
	// MinimumCalls is the number of recorded calls required before the
	// failure rate is evaluated at all.
	MinimumCalls int
	// FailureRateThreshold (0..1) membuka circuit ketika tercapai.
	FailureRateThreshold float64
	// SlowCallDuration: panggilan selama ini atau lebih dihitung gagal,
	// sama seperti kegagalan keras.
	SlowCallDuration time.Duration
	// OpenTimeout is how long the circuit stays open before trial calls
	// are permitted again.
	OpenTimeout time.Duration
	// HalfOpenMaxCalls is the number of trial calls permitted in half-open.
	HalfOpenMaxCalls int
	// OnStateChange is called when the state changes.
	OnStateChange func(name string, from, to State)
	// Clock is injectable for tests. Defaults to the real clock.
	Clock clockwork.Clock
}

func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:                 name,
		SlidingWindowSize:    10,
		MinimumCalls:         5,
		FailureRateThreshold: 0.5,
		SlowCallDuration:     2 * time.Second,
		OpenTimeout:          30 * time.Second,
		HalfOpenMaxCalls:     2,
	}
}

// CircuitBreaker implements a count-based sliding window circuit breaker.
//
// States:
//   - Closed: panggilan lewat, outcome direkam di window
//   - Open: panggilan langsung ditolak tanpa menyentuh jaringan
//   - Half-Open: sejumlah kecil panggilan percobaan diizinkan
type CircuitBreaker struct {
	config CircuitBreakerConfig
	clock  clockwork.Clock

	mu            sync.Mutex
	state         State
	window        []bool // true = bad outcome
	windowIdx     int
	windowFilled  int
	openedAt      time.Time
	halfOpenCalls int
	halfOpenOK    int
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.SlidingWindowSize <= 0 {
		config.SlidingWindowSize = 10
	}
	if config.MinimumCalls <= 0 {
		config.MinimumCalls = 5
	}
	if config.FailureRateThreshold <= 0 {
		config.FailureRateThreshold = 0.5
	}
	if config.OpenTimeout <= 0 {
		config.OpenTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}

	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &CircuitBreaker{
		config: config,
		clock:  clock,
		state:  StateClosed,
		window: make([]bool, config.SlidingWindowSize),
	}
}

// Acquire checks whether a call is permitted. Returns ErrCircuitOpen when
// the circuit refuses admission. Every permitted call must be followed by
// exactly one Record.
func (cb *CircuitBreaker) Acquire() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case StateClosed:
		return nil
	case StateHalfOpen:
		if cb.halfOpenCalls < cb.config.HalfOpenMaxCalls {
			cb.halfOpenCalls++
			return nil
		}
		return ErrCircuitOpen
	default:
		return ErrCircuitOpen
	}
}

// Record registers the outcome of a permitted call. A call is a bad outcome
// when it failed or when it took SlowCallDuration or longer.
func (cb *CircuitBreaker) Record(err error, duration time.Duration) {
	bad := err != nil
	if cb.config.SlowCallDuration > 0 && duration >= cb.config.SlowCallDuration {
		bad = true
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case StateClosed:
		cb.window[cb.windowIdx] = bad
		cb.windowIdx = (cb.windowIdx + 1) % len(cb.window)
		if cb.windowFilled < len(cb.window) {
			cb.windowFilled++
		}
		if cb.windowFilled >= cb.config.MinimumCalls && cb.failureRate() >= cb.config.FailureRateThreshold {
			cb.toState(StateOpen)
		}
	case StateHalfOpen:
		if bad {
			// Satu percobaan gagal langsung membuka lagi
			cb.toState(StateOpen)
			return
		}
		cb.halfOpenOK++
		if cb.halfOpenOK >= cb.config.HalfOpenMaxCalls {
			cb.toState(StateClosed)
		}
	}
}

// State returns the current state, applying the open timeout transition.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentState()
}

// Reset memaksa circuit kembali closed dan mengosongkan window.
// Dipakai hanya untuk aksi administratif.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.toState(StateClosed)
	cb.clearWindow()
}

// failureRate dihitung atas isi window saat ini. Caller memegang mu.
func (cb *CircuitBreaker) failureRate() float64 {
	if cb.windowFilled == 0 {
		return 0
	}
	bad := 0
	for i := 0; i < cb.windowFilled; i++ {
		if cb.window[i] {
			bad++
		}
	}
	return float64(bad) / float64(cb.windowFilled)
}

// currentState handles the open -> half-open timeout. Caller memegang mu.
func (cb *CircuitBreaker) currentState() State {
	if cb.state == StateOpen && cb.clock.Since(cb.openedAt) >= cb.config.OpenTimeout {
		cb.toState(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) toState(to State) {
	if cb.state == to {
		return
	}

	from := cb.state
	cb.state = to

	switch to {
	case StateClosed:
		cb.clearWindow()
	case StateHalfOpen:
		cb.halfOpenCalls = 0
		cb.halfOpenOK = 0
	case StateOpen:
		cb.openedAt = cb.clock.Now()
	}

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}

func (cb *CircuitBreaker) clearWindow() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.windowIdx = 0
	cb.windowFilled = 0
	cb.halfOpenCalls = 0
	cb.halfOpenOK = 0
}
