package models

import (
	"errors"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// Requests

type CancelBookingRequest struct {
	Actor              domain.Actor
	CancellationReason string
}

type UpdateStatusRequest struct {
	Actor  domain.Actor
	Status string
}

// ListBookingsRequest lists the caller's bookings; administrators see every booking
type ListBookingsRequest struct {
	Actor     domain.Actor
	Status    *string
	ServiceID *int64
	Page      domain.Page
}

// GetProviderBookingsRequest lists the bookings made on a provider's equipment
type GetProviderBookingsRequest struct {
	Actor           domain.Actor
	ProviderID      int64
	ServiceID       *int64
	Status          *string
	From            *types.Date
	To              *types.Date
	IncludeInactive bool
	Page            domain.Page
}

// ToDomainFilter converts the request into a repository filter
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	providerID := r.ProviderID
	filter := domain.BookingsFilter{
		ProviderID:      &providerID,
		ServiceID:       r.ServiceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
		Page:            r.Page,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// Responses

type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	ServiceID     int64   `json:"serviceId"`
	ProviderID    int64   `json:"providerId"`
	BookingType   string  `json:"bookingType"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	StartTime     *string `json:"startTime,omitempty"`
	DurationHours *int    `json:"durationHours,omitempty"`

	Duration           int     `json:"duration"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	TotalPrice         float64 `json:"totalPrice"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	ServiceName string  `json:"serviceName"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse
	Page     int
	Limit    int
	Total    int
}

// FromDomainBooking converts a booking into its API shape
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ServiceID:          b.ServiceID,
		ProviderID:         b.ProviderID,
		BookingType:        string(b.Type),
		StartDate:          b.StartDate.String(),
		EndDate:            b.EndDate.String(),
		Duration:           b.Price.Duration,
		PricePerUnit:       b.Price.PricePerUnit,
		Subtotal:           b.Price.Subtotal,
		DiscountPercentage: b.Price.DiscountPercentage,
		DiscountAmount:     b.Price.DiscountAmount,
		TotalPrice:         b.Price.TotalPrice,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.IsHourly() {
		startTime := b.StartTime.String()
		duration := b.DurationHours
		resp.StartTime = &startTime
		resp.DurationHours = &duration
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList converts one page of bookings
func FromDomainBookingList(bookings []*domain.Booking, page domain.Page, total int) *BookingListResponse {
	page = page.Normalize()
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Page:     page.Page,
		Limit:    page.Limit,
		Total:    total,
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// ToDomainBookingStatus validates a status string
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
