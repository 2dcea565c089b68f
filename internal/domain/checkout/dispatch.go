package checkout

import "sync"

// DispatchPhase represents the state of a checkout dispatch
type DispatchPhase string

const (
	PhaseIdle        DispatchPhase = "IDLE"
	PhaseValidating  DispatchPhase = "VALIDATING"
	PhaseDispatching DispatchPhase = "DISPATCHING"
	PhaseSettling    DispatchPhase = "SETTLING"
	PhaseRejected    DispatchPhase = "REJECTED"
)

// CanTransitionTo checks if the phase can transition to the target phase.
// The happy path is Idle → Validating → Dispatching → Settling → Idle;
// precondition failures take Validating → Rejected → Idle.
func (p DispatchPhase) CanTransitionTo(target DispatchPhase) bool {
	switch p {
	case PhaseIdle:
		return target == PhaseValidating
	case PhaseValidating:
		return target == PhaseDispatching || target == PhaseRejected
	case PhaseDispatching:
		return target == PhaseSettling
	case PhaseSettling, PhaseRejected:
		return target == PhaseIdle
	}
	return false
}

// String returns the string representation of the phase
func (p DispatchPhase) String() string {
	return string(p)
}

// DispatchGuard tracks the dispatch phase per session and prevents a
// second checkout from entering while one is in flight. Begin/End form a
// check-then-set pair that is atomic under the internal lock; callers
// must release with End in a deferred call so the guard cannot leak a
// stuck in-flight entry on an unexpected panic.
type DispatchGuard struct {
	mu       sync.Mutex
	inFlight map[string]DispatchPhase
}

// NewDispatchGuard creates an empty guard
func NewDispatchGuard() *DispatchGuard {
	return &DispatchGuard{
		inFlight: make(map[string]DispatchPhase),
	}
}

// Begin attempts to move the session from Idle to Validating. It returns
// false when a dispatch is already in flight for the session. Callers
// advance through Dispatching or Rejected as the attempt proceeds.
func (g *DispatchGuard) Begin(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.inFlight[sessionID]; exists {
		return false
	}
	g.inFlight[sessionID] = PhaseValidating
	return true
}

// Advance records a phase transition for an in-flight session. Invalid
// transitions are ignored; the guard is an observability aid past Begin.
func (g *DispatchGuard) Advance(sessionID string, target DispatchPhase) {
	g.mu.Lock()
	defer g.mu.Unlock()
	current, exists := g.inFlight[sessionID]
	if !exists || !current.CanTransitionTo(target) {
		return
	}
	g.inFlight[sessionID] = target
}

// End releases the session back to Idle. Safe to call when nothing is in
// flight.
func (g *DispatchGuard) End(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, sessionID)
}

// Phase returns the current phase for the session
func (g *DispatchGuard) Phase(sessionID string) DispatchPhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	if phase, exists := g.inFlight[sessionID]; exists {
		return phase
	}
	return PhaseIdle
}
