package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events     []Event
	identities []string
}

func (r *recordingObserver) SessionChanged(event Event, identity string) {
	r.events = append(r.events, event)
	r.identities = append(r.identities, identity)
}

func TestSession_OpenClose(t *testing.T) {
	s := NewSession()
	obs := &recordingObserver{}
	s.Subscribe(obs)

	assert.False(t, s.IsOpen())

	require.NoError(t, s.Open("0xDEADbeef"))
	assert.True(t, s.IsOpen())
	assert.Equal(t, "0xdeadbeef", s.Identity())

	s.Close()
	assert.False(t, s.IsOpen())

	assert.Equal(t, []Event{EventOpened, EventClosed}, obs.events)
	assert.Equal(t, []string{"0xdeadbeef", "0xdeadbeef"}, obs.identities)
}

func TestSession_OpenRejectsEmptyIdentity(t *testing.T) {
	s := NewSession()
	assert.Error(t, s.Open(""))
	assert.False(t, s.IsOpen())
}

func TestSession_CloseWhenNotOpenIsSilent(t *testing.T) {
	s := NewSession()
	obs := &recordingObserver{}
	s.Subscribe(obs)

	s.Close()
	assert.Empty(t, obs.events)
}

func TestSession_DeriveKEKMatchesDirectDerivation(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Open("0xABC"))

	fromSession, err := s.DeriveKEK()
	require.NoError(t, err)
	direct, err := DeriveKEK("0xabc")
	require.NoError(t, err)

	assert.Equal(t, direct, fromSession)
}
