package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestStore_SessionLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := Session{TokenID: "jti-1", UserID: 7, Role: "producteur", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.SetSession(ctx, sess))

	got, err := store.GetSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "producteur", got.Role)

	require.NoError(t, store.ClearSession(ctx, "jti-1"))
	_, err = store.GetSession(ctx, "jti-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// clearing twice is harmless
	assert.NoError(t, store.ClearSession(ctx, "jti-1"))
}

func TestStore_SetSessionRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.SetSession(context.Background(), Session{TokenID: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)})
	assert.ErrorIs(t, err, ErrStore)
}

func TestStore_ClearUserSessions(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, store.SetSession(ctx, Session{TokenID: "a", UserID: 3, ExpiresAt: exp}))
	require.NoError(t, store.SetSession(ctx, Session{TokenID: "b", UserID: 3, ExpiresAt: exp}))
	require.NoError(t, store.SetSession(ctx, Session{TokenID: "c", UserID: 4, ExpiresAt: exp}))

	require.NoError(t, store.ClearUserSessions(ctx, 3))

	_, err := store.GetSession(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.GetSession(ctx, "b")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.GetSession(ctx, "c")
	assert.NoError(t, err)
}

func TestStore_Subscribe(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, store.SetSession(ctx, Session{TokenID: "x", UserID: 9, ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.ClearSession(ctx, "x"))

	expected := []Event{
		{Type: EventSet, UserID: 9, TokenID: "x"},
		{Type: EventCleared, UserID: 9, TokenID: "x"},
	}
	for _, want := range expected {
		select {
		case ev := <-events:
			assert.Equal(t, want, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("no event received, want %+v", want)
		}
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
}

func TestStore_OTP(t *testing.T) {
	ctx := context.Background()

	t.Run("valid code is consumed", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.SaveOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 10*time.Minute, 0))

		require.NoError(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 5))
		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 5), ErrOTPNotFound)
	})

	t.Run("purposes do not mix", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.SaveOTP(ctx, OTPResetPassword, "a@agro.sn", "123456", 10*time.Minute, 0))

		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 5), ErrOTPNotFound)
	})

	t.Run("attempts are limited", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.SaveOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 10*time.Minute, 0))

		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "000000", 3), ErrOTPInvalid)
		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "000000", 3), ErrOTPInvalid)
		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "000000", 3), ErrOTPTooManyAttempts)
		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 3), ErrOTPNotFound)
	})

	t.Run("code expires", func(t *testing.T) {
		store, mr := newTestStore(t)
		require.NoError(t, store.SaveOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", time.Minute, 0))

		mr.FastForward(2 * time.Minute)
		assert.ErrorIs(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "123456", 5), ErrOTPNotFound)
	})

	t.Run("resend cooldown", func(t *testing.T) {
		store, mr := newTestStore(t)
		require.NoError(t, store.SaveOTP(ctx, OTPVerifyAccount, "a@agro.sn", "111111", 10*time.Minute, time.Minute))
		assert.ErrorIs(t, store.SaveOTP(ctx, OTPVerifyAccount, "a@agro.sn", "222222", 10*time.Minute, time.Minute), ErrOTPCooldown)

		mr.FastForward(61 * time.Second)
		require.NoError(t, store.SaveOTP(ctx, OTPVerifyAccount, "a@agro.sn", "222222", 10*time.Minute, time.Minute))
		assert.NoError(t, store.VerifyOTP(ctx, OTPVerifyAccount, "a@agro.sn", "222222", 5))
	})
}
