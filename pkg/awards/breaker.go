package awards

import (
	"sync"
	"time"
)

// breakerState is the circuit breaker's current posture toward the
// upstream transport, extending the teacher's bulk.Downloader exponential
// backoff with an explicit OPEN/HALF_OPEN/CLOSED state machine (spec §5).
type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// failureThreshold is the number of consecutive transport failures that
// trips the breaker open.
const failureThreshold = 3

// openDuration is how long the breaker stays open before allowing a single
// half-open probe request.
const openDuration = 60 * time.Second

// circuitBreaker guards calls to a single upstream source against repeated
// failure, so a down collaborator does not retry forever against every
// remaining (program, year) pair.
type circuitBreaker struct {
	mu          sync.Mutex
	state       breakerState
	failures    int
	openedAt    time.Time
	clock       func() time.Time
}

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{clock: time.Now}
}

// Allow reports whether a call may proceed, transitioning OPEN -> HALF_OPEN
// once openDuration has elapsed.
func (b *circuitBreaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateClosed:
		return true
	case stateOpen:
		if b.clock().Sub(b.openedAt) >= openDuration {
			b.state = stateHalfOpen
			return true
		}
		return false
	case stateHalfOpen:
		return true
	}
	return true
}

// RecordSuccess closes the breaker and resets the failure count.
func (b *circuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = stateClosed
	b.failures = 0
}

// RecordFailure increments the failure count, tripping the breaker open
// once failureThreshold consecutive failures accumulate. A failure while
// HALF_OPEN reopens immediately.
func (b *circuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateHalfOpen {
		b.state = stateOpen
		b.openedAt = b.clock()
		return
	}

	b.failures++
	if b.failures >= failureThreshold {
		b.state = stateOpen
		b.openedAt = b.clock()
	}
}

// IsOpen reports whether the breaker is currently rejecting calls.
func (b *circuitBreaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == stateOpen
}
