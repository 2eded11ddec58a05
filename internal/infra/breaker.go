package infra

import (
	"errors"
	"sync"
	"time"
)

// BreakerState is the state of a Breaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // calls flow
	BreakerOpen                         // calls are refused
	BreakerHalfOpen                     // one trial call after the cool-down
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned by Do while the breaker refuses calls.
var ErrBreakerOpen = errors.New("breaker open")

// Breaker stops calling a failing dependency for a cool-down period.
// After FailureThreshold consecutive failures it opens. Once Cooldown has
// elapsed a single trial call is let through while other callers are still
// refused; a successful trial closes it again.
type Breaker struct {
	mu               sync.Mutex
	state            BreakerState
	failures         int
	openedAt         time.Time
	trialing         bool
	failureThreshold int
	cooldown         time.Duration
	now              func() time.Time
}

func NewBreaker(failureThreshold int, cooldown time.Duration) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 3
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{failureThreshold: failureThreshold, cooldown: cooldown, now: time.Now}
}

// State returns the current state, moving open → half-open once the cool-down elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		b.state = BreakerHalfOpen
	}
	return b.state
}

// Do runs fn unless the breaker is open or a half-open trial is in flight.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	switch b.stateLocked() {
	case BreakerOpen:
		b.mu.Unlock()
		return ErrBreakerOpen
	case BreakerHalfOpen:
		if b.trialing {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
		b.trialing = true
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.trialing = false
	if err != nil {
		b.failures++
		if b.state == BreakerHalfOpen || b.failures >= b.failureThreshold {
			b.state = BreakerOpen
			b.openedAt = b.now()
			b.failures = 0
		}
		return err
	}
	b.state = BreakerClosed
	b.failures = 0
	return nil
}
