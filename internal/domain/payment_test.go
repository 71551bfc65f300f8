package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentOutcomeJSON(t *testing.T) {
	data, err := json.Marshal(RedirectOutcome("https://paytech.sn/x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"redirect","url":"https://paytech.sn/x"}`, string(data))

	data, err = json.Marshal(SimulatedOutcome())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"simulated"}`, string(data))

	data, err = json.Marshal(ErrorOutcome("Paiement indisponible"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"Paiement indisponible"}`, string(data))
}

func TestParsePaymentOutcome(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    PaymentOutcome
		wantErr bool
	}{
		{"redirect", `{"status":"redirect","url":"https://p/1"}`, RedirectOutcome("https://p/1"), false},
		{"simulated", `{"status":"simulated"}`, SimulatedOutcome(), false},
		{"error", `{"status":"error","message":"boom"}`, ErrorOutcome("boom"), false},
		{"redirect without url", `{"status":"redirect"}`, PaymentOutcome{}, true},
		{"error without message", `{"status":"error"}`, PaymentOutcome{}, true},
		{"legacy duck-typed flag", `{"paytech":{"simulated":true}}`, PaymentOutcome{}, true},
		{"not json", `nope`, PaymentOutcome{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePaymentOutcome([]byte(tt.payload))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPaymentOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
