package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PaymentStatus is the state of a payment attempt
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentSimulated PaymentStatus = "simulated"
)

// Valid reports whether s is a known payment status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentSimulated:
		return true
	}
	return false
}

// Payment is one PayTech payment attempt for a booking
type Payment struct {
	ID         int64
	BookingID  int64
	UserID     int64
	Reference  string // ref_command sent to PayTech
	Amount     float64
	Currency   string
	Token      *string
	PaymentURL *string
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsFinal returns true once the payment can no longer change
func (p *Payment) IsFinal() bool {
	return p.Status != PaymentPending
}

type PaymentFilter struct {
	UserID *int64
	Status *PaymentStatus
	Page   Page
}

// PaymentOutcomeStatus discriminates PaymentOutcome
type PaymentOutcomeStatus string

const (
	OutcomeRedirect  PaymentOutcomeStatus = "redirect"
	OutcomeSimulated PaymentOutcomeStatus = "simulated"
	OutcomeError     PaymentOutcomeStatus = "error"
)

// ErrInvalidPaymentOutcome is returned for outcomes missing their variant's field
var ErrInvalidPaymentOutcome = errors.New("invalid payment outcome")

// PaymentOutcome is the result of initiating a payment:
// {status:"redirect", url} | {status:"simulated"} | {status:"error", message}
type PaymentOutcome struct {
	Status  PaymentOutcomeStatus `json:"status"`
	URL     string               `json:"url,omitempty"`
	Message string               `json:"message,omitempty"`
}

func RedirectOutcome(url string) PaymentOutcome {
	return PaymentOutcome{Status: OutcomeRedirect, URL: url}
}

func SimulatedOutcome() PaymentOutcome {
	return PaymentOutcome{Status: OutcomeSimulated}
}

func ErrorOutcome(message string) PaymentOutcome {
	return PaymentOutcome{Status: OutcomeError, Message: message}
}

// Validate checks that the variant carries exactly its own fields
func (o PaymentOutcome) Validate() error {
	switch o.Status {
	case OutcomeRedirect:
		if o.URL == "" || o.Message != "" {
			return fmt.Errorf("%w: redirect needs a url only", ErrInvalidPaymentOutcome)
		}
	case OutcomeSimulated:
		if o.URL != "" || o.Message != "" {
			return fmt.Errorf("%w: simulated carries no fields", ErrInvalidPaymentOutcome)
		}
	case OutcomeError:
		if o.Message == "" || o.URL != "" {
			return fmt.Errorf("%w: error needs a message only", ErrInvalidPaymentOutcome)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPaymentOutcome, o.Status)
	}
	return nil
}

// ParsePaymentOutcome decodes and validates an outcome at the API boundary
func ParsePaymentOutcome(data []byte) (PaymentOutcome, error) {
	var o PaymentOutcome
	if err := json.Unmarshal(data, &o); err != nil {
		return PaymentOutcome{}, fmt.Errorf("%w: %v", ErrInvalidPaymentOutcome, err)
	}
	if err := o.Validate(); err != nil {
		return PaymentOutcome{}, err
	}
	return o, nil
}
