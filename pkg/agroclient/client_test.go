package agroclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := NewMemoryStore()
	return New(srv.URL, store, 2*time.Second), store
}

func TestClient_Login(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "awa@example.sn", body.Email)

		_, _ = w.Write([]byte(`{"data":{"token":"tok-1","expiresAt":"2099-01-01T00:00:00Z","user":{"id":7,"role":"producteur"}}}`))
	})

	events, cancel := store.Subscribe()
	defer cancel()

	session, err := client.Login(context.Background(), "awa@example.sn", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "tok-1", store.GetToken())

	ev := <-events
	require.NotNil(t, ev.Session)
	assert.Equal(t, "producteur", ev.Session.Role)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"Session expirée."}`))
	})
	store.SetSession(Session{Token: "stale"})

	events, cancel := store.Subscribe()
	defer cancel()

	_, err := client.Quote(context.Background(), BookingRequest{ServiceID: 1, BookingType: "daily"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, store.GetToken())

	ev := <-events
	assert.Nil(t, ev.Session)
}

func TestClient_ErrorFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.Quote(context.Background(), BookingRequest{ServiceID: 1})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, MsgGenericError, apiErr.Message)
}

func TestClient_CreateBooking(t *testing.T) {
	t.Run("redirect outcome", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/bookings", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"booking":{"id":12,"serviceId":3,"bookingType":"daily","totalPrice":95000,"status":"pending"},"payment":{"status":"redirect","url":"https://paytech.sn/payment/checkout/abc"}}}`))
		})

		result, err := client.CreateBooking(context.Background(), BookingRequest{
			ServiceID:   3,
			BookingType: "daily",
			StartDate:   "2026-11-02",
			EndDate:     "2026-11-06",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Booking.ID)
		assert.Equal(t, OutcomeRedirect, result.Payment.Status)
		assert.Equal(t, "https://paytech.sn/payment/checkout/abc", result.Payment.URL)
	})

	t.Run("conflict dates", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"code":"CONFLICT","message":"Dates indisponibles.","unavailableDates":["2026-11-03","2026-11-04"]}`))
		})

		_, err := client.CreateBooking(context.Background(), BookingRequest{ServiceID: 3, BookingType: "daily"})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "CONFLICT", apiErr.Code)
		assert.Equal(t, []string{"2026-11-03", "2026-11-04"}, apiErr.UnavailableDates)
	})

	t.Run("malformed outcome", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"booking":{"id":12},"payment":{"status":"redirect"}}}`))
		})

		_, err := client.CreateBooking(context.Background(), BookingRequest{ServiceID: 3})
		assert.ErrorIs(t, err, ErrInvalidPaymentOutcome)
	})
}

func TestClient_InitiatePayment(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"status":"simulated"}}`))
	})
	store.SetSession(Session{Token: "tok"})

	outcome, err := client.InitiatePayment(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, PaymentOutcome{Status: OutcomeSimulated}, outcome)
}

func TestClient_Logout(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"message":"Déconnecté."}}`))
	})

	assert.ErrorIs(t, client.Logout(context.Background()), ErrNoSession)

	store.SetSession(Session{Token: "tok"})
	require.NoError(t, client.Logout(context.Background()))
	assert.Empty(t, store.GetToken())
}

func TestClient_CancelBooking(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/bookings/12/cancel", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Tracteur plus nécessaire", body["cancellationReason"])

		_, _ = w.Write([]byte(`{"data":{"message":"Réservation annulée."}}`))
	})
	store.SetSession(Session{Token: "tok"})

	require.NoError(t, client.CancelBooking(context.Background(), 12, "Tracteur plus nécessaire"))
}
