package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_Ready_LatchesOnce(t *testing.T) {
	s := NewState()
	assert.False(t, s.Ready())

	s.SetReady()
	assert.True(t, s.Ready())

	s.SetReady()
	assert.True(t, s.Ready())
}

func TestState_Alive_FalseBeforeFirstHeartbeat(t *testing.T) {
	s := NewState()
	assert.False(t, s.Alive(time.Hour))
}

func TestState_Alive_TracksHeartbeatStaleness(t *testing.T) {
	// GIVEN a state with a controllable clock
	now := time.Unix(1000, 0)
	s := NewState()
	s.now = func() time.Time { return now }

	// WHEN a heartbeat arrives
	s.RecordHeartbeat()
	assert.True(t, s.Alive(30*time.Second))

	// THEN it goes stale once the window passes
	now = now.Add(29 * time.Second)
	assert.True(t, s.Alive(30*time.Second))
	now = now.Add(2 * time.Second)
	assert.False(t, s.Alive(30*time.Second))

	// AND a fresh heartbeat revives it
	s.RecordHeartbeat()
	assert.True(t, s.Alive(30*time.Second))
}
