package agroclient

import (
	"encoding/json"
	"time"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Code             string   `json:"code"`
	Message          string   `json:"message"`
	UnavailableDates []string `json:"unavailableDates"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

// BookingRequest mirrors POST /bookings. Daily bookings use StartDate/EndDate,
// hourly ones BookingDate/StartTime/Duration.
type BookingRequest struct {
	ServiceID   int64  `json:"serviceId"`
	BookingType string `json:"bookingType"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	BookingDate string `json:"bookingDate,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type Quote struct {
	ServiceID          int64   `json:"serviceId"`
	ServiceName        string  `json:"serviceName"`
	BookingType        string  `json:"bookingType"`
	Currency           string  `json:"currency"`
	Duration           int     `json:"duration"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	TotalPrice         float64 `json:"totalPrice"`
}

type Booking struct {
	ID            int64   `json:"id"`
	ServiceID     int64   `json:"serviceId"`
	BookingType   string  `json:"bookingType"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Duration      int     `json:"duration"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	ServiceName   string  `json:"serviceName"`
}

// BookingResult is a created booking with its validated payment outcome
type BookingResult struct {
	Booking Booking
	Payment PaymentOutcome
}

type bookingResponse struct {
	Booking Booking         `json:"booking"`
	Payment json.RawMessage `json:"payment"`
}
