// Package health serves the line's operational surface: liveness and
// readiness probes, the prometheus metrics endpoint, and a websocket feed
// of live line state.
package health

import (
	"sync"
	"time"
)

// DefaultAliveWindow is how stale the last heartbeat may be before the
// liveness probe fails.
const DefaultAliveWindow = 30 * time.Second

// State is the shared health state the probe handlers read and the line
// workers write. Safe for concurrent use.
type State struct {
	mu            sync.Mutex
	ready         bool
	lastHeartbeat time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewState creates a State that is neither ready nor alive.
func NewState() *State {
	return &State{now: time.Now}
}

// SetReady latches readiness. There is no way back: a line that stops is
// torn down with its server, not marked unready.
func (s *State) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// Ready reports whether readiness has been latched.
func (s *State) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// RecordHeartbeat marks the line alive now.
func (s *State) RecordHeartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHeartbeat = s.now()
}

// Alive reports whether a heartbeat arrived within window. False until the
// first heartbeat.
func (s *State) Alive(window time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastHeartbeat.IsZero() {
		return false
	}
	return s.now().Sub(s.lastHeartbeat) < window
}
