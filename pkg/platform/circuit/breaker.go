// Package circuit is a consecutive-failure circuit breaker.
//
// A Breaker opens after FailureThreshold consecutive failures. Once the
// cooldown has passed it goes half-open and admits a single trial call; its
// outcome either closes the circuit or re-opens it for another cooldown.
package circuit

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by callers that fail fast on an open circuit.
var ErrOpen = errors.New("circuit open")

type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// StateChange reports a transition caused by a Record call.
type StateChange struct {
	Opened bool
	Closed bool
}

type Breaker struct {
	mu sync.Mutex

	name             string
	failureThreshold int
	cooldown         time.Duration
	now              func() time.Time

	state        State
	failures     int
	openedAt     time.Time
	trialStarted time.Time
}

type Option func(*Breaker)

func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		b.now = now
	}
}

// New creates a closed breaker. Defaults: 5 failures to open, 30s cooldown.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		cooldown:         30 * time.Second,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Allow reports whether a call may proceed. After the cooldown exactly one
// caller is admitted as the trial call. A trial call that never reports back
// is replaced once another cooldown has passed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	switch b.state {
	case StateOpen:
		if now.Before(b.openedAt.Add(b.cooldown)) {
			return false
		}
		b.state = StateHalfOpen
		b.trialStarted = now
		return true
	case StateHalfOpen:
		if now.Before(b.trialStarted.Add(b.cooldown)) {
			return false
		}
		b.trialStarted = now
		return true
	default:
		return true
	}
}

// RecordFailure counts a failure. A failed trial call re-opens the circuit.
func (b *Breaker) RecordFailure() StateChange {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		b.openedAt = b.now()
		return StateChange{}
	case StateHalfOpen:
		b.open()
		return StateChange{Opened: true}
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.open()
		return StateChange{Opened: true}
	}
	return StateChange{}
}

// RecordSuccess clears the failure count. A successful trial call closes the
// circuit; a late success from a call admitted before the circuit opened
// does not.
func (b *Breaker) RecordSuccess() StateChange {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state != StateHalfOpen {
		return StateChange{}
	}
	b.state = StateClosed
	return StateChange{Closed: true}
}

func (b *Breaker) open() {
	b.state = StateOpen
	b.failures = 0
	b.openedAt = b.now()
}
