package resilience

import (
	"errors"
	"sync"
	"time"
)

// State of a circuit breaker
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	}
	return "unknown"
}

// ErrOpen is returned by Call while the breaker is rejecting calls
var ErrOpen = errors.New("circuit breaker is open")

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures before opening
	RecoveryTimeout  time.Duration // how long to stay open before trying again
	SuccessThreshold int           // trial successes needed to close again
}

// DefaultBreakerConfig suits a shared Redis behind the rate limiter
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 1,
	}
}

// Breaker short-circuits calls to a dependency that keeps failing, so callers
// can go straight to their fallback instead of paying a timeout per request
type Breaker struct {
	config BreakerConfig
	now    func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	nextAttempt time.Time
	inTrial     bool // a half-open trial call is in flight
}

// NewBreaker creates a closed breaker, filling zero config fields with defaults
func NewBreaker(config BreakerConfig) *Breaker {
	def := DefaultBreakerConfig()
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = def.FailureThreshold
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = def.RecoveryTimeout
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = def.SuccessThreshold
	}
	return &Breaker{config: config, now: time.Now}
}

// Call runs fn unless the breaker is open, recording its outcome. While half-open
// only one call at a time is let through as a trial; the others get ErrOpen
func (b *Breaker) Call(fn func() error) error {
	ok, trial := b.allow()
	if !ok {
		return ErrOpen
	}
	err := fn()
	b.record(err, trial)
	return err
}

func (b *Breaker) allow() (ok, trial bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Before(b.nextAttempt) {
			return false, false
		}
		b.state = StateHalfOpen
		b.successes = 0
	case StateHalfOpen:
		if b.inTrial {
			return false, false
		}
	default:
		return true, false
	}
	b.inTrial = true
	return true, true
}

func (b *Breaker) record(err error, trial bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if trial {
		b.inTrial = false
	}

	if err != nil {
		b.failures++
		b.successes = 0
		if b.state == StateHalfOpen || b.failures >= b.config.FailureThreshold {
			b.state = StateOpen
			b.nextAttempt = b.now().Add(b.config.RecoveryTimeout)
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.state = StateClosed
		}
	}
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the breaker and clears its counters
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
	b.inTrial = false
}

// Stats returns a snapshot for the metrics endpoint
func (b *Breaker) Stats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]interface{}{
		"state":    b.state.String(),
		"failures": b.failures,
	}
}
