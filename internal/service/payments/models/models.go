package models

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type ListPaymentsRequest struct {
	Status *string
	Page   domain.Page
}

type PaymentResponse struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	Reference  string    `json:"reference"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	PaymentURL *string   `json:"paymentUrl,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse
	Page     int
	Limit    int
	Total    int
}

// BookingPaymentStatusResponse summarizes where a booking stands payment-wise
type BookingPaymentStatusResponse struct {
	BookingID     int64            `json:"bookingId"`
	BookingStatus string           `json:"bookingStatus"`
	PaymentStatus string           `json:"paymentStatus"`
	IsPaid        bool             `json:"isPaid"`
	LastPayment   *PaymentResponse `json:"lastPayment,omitempty"`
}

func FromDomainPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		BookingID:  p.BookingID,
		UserID:     p.UserID,
		Reference:  p.Reference,
		Amount:     p.Amount,
		Currency:   p.Currency,
		PaymentURL: p.PaymentURL,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func FromDomainPaymentList(list []*domain.Payment, page domain.Page, total int) *PaymentListResponse {
	page = page.Normalize()
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(list)),
		Page:     page.Page,
		Limit:    page.Limit,
		Total:    total,
	}
	for _, p := range list {
		resp.Payments = append(resp.Payments, FromDomainPayment(p))
	}
	return resp
}
