package circuit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func openBreaker(t *testing.T, clock *fakeClock) *Breaker {
	t.Helper()
	b := New("nsdl", WithFailureThreshold(1), WithCooldown(10*time.Second), WithClock(clock.Now))
	require.True(t, b.RecordFailure().Opened)
	require.Equal(t, StateOpen, b.State())
	return b
}

func TestNewBreakerIsClosed(t *testing.T) {
	b := New("unisen")
	assert.Equal(t, "unisen", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestConsecutiveFailuresOpenTheCircuit(t *testing.T) {
	b := New("nsdl", WithFailureThreshold(3))

	assert.False(t, b.RecordFailure().Opened)
	assert.False(t, b.RecordFailure().Opened)
	assert.False(t, b.RecordSuccess().Closed, "success on a closed circuit is not a transition")

	// The success cleared the count.
	assert.False(t, b.RecordFailure().Opened)
	assert.False(t, b.RecordFailure().Opened)
	assert.Equal(t, StateClosed, b.State())

	assert.True(t, b.RecordFailure().Opened)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	assert.Equal(t, StateChange{}, b.RecordFailure(), "already open")
}

func TestCooldownAdmitsSingleTrialCall(t *testing.T) {
	clock := newFakeClock()
	b := openBreaker(t, clock)

	clock.Advance(9 * time.Second)
	assert.False(t, b.Allow())

	clock.Advance(time.Second)
	admitted := 0
	for i := 0; i < 50; i++ {
		if b.Allow() {
			admitted++
		}
	}
	assert.Equal(t, 1, admitted)
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestConcurrentCallersShareOneTrialCall(t *testing.T) {
	clock := newFakeClock()
	b := openBreaker(t, clock)
	clock.Advance(10 * time.Second)

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Allow() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), admitted.Load())
}

func TestTrialCallOutcome(t *testing.T) {
	t.Run("success closes", func(t *testing.T) {
		clock := newFakeClock()
		b := openBreaker(t, clock)
		clock.Advance(10 * time.Second)
		require.True(t, b.Allow())

		assert.True(t, b.RecordSuccess().Closed)
		assert.Equal(t, StateClosed, b.State())
		assert.True(t, b.Allow())
		assert.True(t, b.Allow())
	})

	t.Run("failure re-opens for another cooldown", func(t *testing.T) {
		clock := newFakeClock()
		b := openBreaker(t, clock)
		clock.Advance(10 * time.Second)
		require.True(t, b.Allow())

		assert.True(t, b.RecordFailure().Opened)
		assert.Equal(t, StateOpen, b.State())
		assert.False(t, b.Allow())

		clock.Advance(10 * time.Second)
		assert.True(t, b.Allow())
	})

	t.Run("abandoned trial call is replaced after cooldown", func(t *testing.T) {
		clock := newFakeClock()
		b := openBreaker(t, clock)
		clock.Advance(10 * time.Second)
		require.True(t, b.Allow())

		clock.Advance(5 * time.Second)
		assert.False(t, b.Allow())
		clock.Advance(5 * time.Second)
		assert.True(t, b.Allow())
		assert.False(t, b.Allow())
	})
}

func TestLateSuccessDoesNotCloseOpenCircuit(t *testing.T) {
	clock := newFakeClock()
	b := openBreaker(t, clock)

	assert.False(t, b.RecordSuccess().Closed)
	assert.Equal(t, StateOpen, b.State())
}

func TestFailuresWhileOpenExtendCooldown(t *testing.T) {
	clock := newFakeClock()
	b := openBreaker(t, clock)

	clock.Advance(8 * time.Second)
	b.RecordFailure()
	clock.Advance(8 * time.Second)
	assert.False(t, b.Allow())
	clock.Advance(2 * time.Second)
	assert.True(t, b.Allow())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half_open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
}
