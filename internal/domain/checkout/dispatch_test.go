package checkout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchPhase_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    DispatchPhase
		to      DispatchPhase
		allowed bool
	}{
		{PhaseIdle, PhaseValidating, true},
		{PhaseIdle, PhaseDispatching, false},
		{PhaseValidating, PhaseDispatching, true},
		{PhaseValidating, PhaseRejected, true},
		{PhaseValidating, PhaseSettling, false},
		{PhaseDispatching, PhaseSettling, true},
		{PhaseDispatching, PhaseIdle, false},
		{PhaseSettling, PhaseIdle, true},
		{PhaseRejected, PhaseIdle, true},
		{PhaseRejected, PhaseDispatching, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestDispatchGuard_BeginOncePerSession(t *testing.T) {
	guard := NewDispatchGuard()

	assert.True(t, guard.Begin("session-1"))
	assert.False(t, guard.Begin("session-1"), "second Begin must be refused while in flight")
	assert.True(t, guard.Begin("session-2"), "other sessions are independent")

	guard.End("session-1")
	assert.True(t, guard.Begin("session-1"), "released session can begin again")
}

func TestDispatchGuard_Phase(t *testing.T) {
	guard := NewDispatchGuard()
	assert.Equal(t, PhaseIdle, guard.Phase("s"))

	guard.Begin("s")
	assert.Equal(t, PhaseValidating, guard.Phase("s"))

	guard.Advance("s", PhaseDispatching)
	assert.Equal(t, PhaseDispatching, guard.Phase("s"))

	guard.Advance("s", PhaseSettling)
	assert.Equal(t, PhaseSettling, guard.Phase("s"))

	// Invalid transition is ignored
	guard.Advance("s", PhaseDispatching)
	assert.Equal(t, PhaseSettling, guard.Phase("s"))

	guard.End("s")
	assert.Equal(t, PhaseIdle, guard.Phase("s"))
}

func TestDispatchGuard_RejectedPath(t *testing.T) {
	guard := NewDispatchGuard()

	guard.Begin("s")
	guard.Advance("s", PhaseRejected)
	assert.Equal(t, PhaseRejected, guard.Phase("s"))

	// A rejected attempt cannot resume dispatching
	guard.Advance("s", PhaseDispatching)
	assert.Equal(t, PhaseRejected, guard.Phase("s"))

	guard.End("s")
	assert.Equal(t, PhaseIdle, guard.Phase("s"))
}

func TestDispatchGuard_EndIsSafeWhenIdle(t *testing.T) {
	guard := NewDispatchGuard()
	guard.End("never-started")
	assert.Equal(t, PhaseIdle, guard.Phase("never-started"))
}

func TestDispatchGuard_ConcurrentBegin(t *testing.T) {
	guard := NewDispatchGuard()

	const attempts = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.Begin("session") {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won, "exactly one concurrent Begin may win")
}
