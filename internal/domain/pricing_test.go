package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

func dailyRequest(start, end string) BookingRequest {
	return BookingRequest{Type: BookingTypeDaily, StartDate: types.Date(start), EndDate: types.Date(end)}
}

func TestCalculatePrice_WeekRental(t *testing.T) {
	got := CalculatePrice(dailyRequest("2024-03-01", "2024-03-07"), ServicePrices{PricePerDay: 10000})

	assert.Equal(t, PriceCalculation{
		Duration:           7,
		PricePerUnit:       10000,
		Subtotal:           70000,
		DiscountPercentage: 10,
		DiscountAmount:     7000,
		TotalPrice:         63000,
	}, got)
}

func TestCalculatePrice_Hourly(t *testing.T) {
	req := BookingRequest{
		Type:        BookingTypeHourly,
		BookingDate: "2024-03-01",
		StartTime:   mustTime(t, "08:00"),
		Duration:    3,
	}

	got := CalculatePrice(req, ServicePrices{PricePerDay: 40000, PricePerHour: ptr.Ptr(5000.0)})

	assert.Equal(t, 3, got.Duration)
	assert.Equal(t, 5000.0, got.PricePerUnit)
	assert.Equal(t, 15000.0, got.Subtotal)
	assert.Equal(t, 0.0, got.DiscountPercentage)
	assert.Equal(t, 15000.0, got.TotalPrice)
}

func TestCalculatePrice_HourlyFallsBackToDailyRate(t *testing.T) {
	req := BookingRequest{Type: BookingTypeHourly, BookingDate: "2024-03-01", StartTime: mustTime(t, "10:00"), Duration: 2}

	got := CalculatePrice(req, ServicePrices{PricePerDay: 10000})

	assert.Equal(t, 1250.0, got.PricePerUnit)
	assert.Equal(t, 2500.0, got.TotalPrice)
}

func TestCalculatePrice_HourlyNeverDiscounted(t *testing.T) {
	req := BookingRequest{Type: BookingTypeHourly, Duration: 40}

	got := CalculatePrice(req, ServicePrices{PricePerDay: 8000})

	assert.Equal(t, 0.0, got.DiscountPercentage)
	assert.Equal(t, got.Subtotal, got.TotalPrice)
}

func TestCalculatePrice_SingleDay(t *testing.T) {
	got := CalculatePrice(dailyRequest("2024-06-15", "2024-06-15"), ServicePrices{PricePerDay: 12000})

	assert.Equal(t, 1, got.Duration)
	assert.Equal(t, 12000.0, got.TotalPrice)
}

func TestCalculatePrice_MalformedAndInvertedDates(t *testing.T) {
	malformed := CalculatePrice(dailyRequest("not-a-date", "2024-03-07"), ServicePrices{PricePerDay: 10000})
	assert.Equal(t, 0, malformed.Duration)
	assert.Equal(t, 0.0, malformed.TotalPrice)

	inverted := CalculatePrice(dailyRequest("2024-03-07", "2024-03-01"), ServicePrices{PricePerDay: 10000})
	assert.LessOrEqual(t, inverted.Duration, 0)
}

func TestCalculatePrice_Idempotent(t *testing.T) {
	req := dailyRequest("2024-01-01", "2024-01-20")
	prices := ServicePrices{PricePerDay: 7500, PricePerHour: ptr.Ptr(1000.0)}

	assert.Equal(t, CalculatePrice(req, prices), CalculatePrice(req, prices))
}

func TestCalculatePrice_DiscountIdentity(t *testing.T) {
	start := types.Date("2024-01-01")
	for days := 1; days <= 45; days++ {
		for _, rate := range []float64{0, 1, 999.99, 10000, 123456.78} {
			got := CalculatePrice(dailyRequest(string(start), string(start.AddDays(days-1))), ServicePrices{PricePerDay: rate})

			assert.Equal(t, days, got.Duration)
			assert.InDelta(t, got.Subtotal, got.DiscountAmount+got.TotalPrice, 1e-6)
			assert.InDelta(t, got.Subtotal*got.DiscountPercentage/100, got.DiscountAmount, 1e-9)
		}
	}
}

func TestDiscountForDuration(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{days: -3, want: 0},
		{days: 0, want: 0},
		{days: 1, want: 0},
		{days: 6, want: 0},
		{days: 7, want: 10},
		{days: 13, want: 10},
		{days: 14, want: 15},
		{days: 29, want: 15},
		{days: 30, want: 20},
		{days: 365, want: 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DiscountForDuration(tt.days), "days=%d", tt.days)
	}
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}
