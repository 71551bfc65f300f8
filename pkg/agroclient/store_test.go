package agroclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	store.SetSession(Session{Token: "tok", ExpiresAt: now.Add(time.Hour)})
	assert.Equal(t, "tok", store.GetToken())

	now = now.Add(time.Hour)
	assert.Empty(t, store.GetToken())
}

func TestMemoryStore_Subscribe(t *testing.T) {
	store := NewMemoryStore()
	events, cancel := store.Subscribe()

	store.ClearSession()
	store.SetSession(Session{Token: "a"})
	store.ClearSession()

	first := <-events
	assert.Equal(t, "a", first.Session.Token)
	second := <-events
	assert.Nil(t, second.Session)

	cancel()
	cancel()
	_, open := <-events
	assert.False(t, open)
}
