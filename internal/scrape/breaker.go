package scrape

import (
	"sync"
	"time"
)

// BreakerState is the state of a host's circuit.
type BreakerState int

const (
	StateClosed   BreakerState = iota // fetches flow
	StateOpen                         // host failing, fetches refused
	StateHalfOpen                     // one probe fetch allowed
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Breaker trips after a run of failed fetches against one documentation host
// so a scrape run stops hammering a host that is down.
type Breaker struct {
	mu sync.Mutex

	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool

	failureThreshold      int
	recoveryProbeInterval time.Duration
}

func NewBreaker(failureThreshold int, recoveryProbeInterval time.Duration) *Breaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	return &Breaker{
		state:                 StateClosed,
		failureThreshold:      failureThreshold,
		recoveryProbeInterval: recoveryProbeInterval,
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// currentState moves OPEN to HALF_OPEN once the probe interval has elapsed.
// Must be called with mu held.
func (b *Breaker) currentState() BreakerState {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.recoveryProbeInterval {
		b.state = StateHalfOpen
		b.probing = false
	}
	return b.state
}

// Allow reports whether a fetch may proceed. In HALF_OPEN only the first
// caller gets through until the probe reports back.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentState() {
	case StateClosed:
		return true
	case StateHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return false
	}
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.probing = false
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	switch b.state {
	case StateClosed:
		if b.failures >= b.failureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.probing = false
}

// breakerSet lazily creates one Breaker per host.
type breakerSet struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker

	failureThreshold      int
	recoveryProbeInterval time.Duration
}

func newBreakerSet(failureThreshold int, recoveryProbeInterval time.Duration) *breakerSet {
	return &breakerSet{
		breakers:              make(map[string]*Breaker),
		failureThreshold:      failureThreshold,
		recoveryProbeInterval: recoveryProbeInterval,
	}
}

func (s *breakerSet) get(host string) *Breaker {
	s.mu.RLock()
	b, ok := s.breakers[host]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.breakers[host]; ok {
		return b
	}
	b = NewBreaker(s.failureThreshold, s.recoveryProbeInterval)
	s.breakers[host] = b
	return b
}
