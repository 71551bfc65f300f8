package agroclient

import "github.com/agroboost/AgroBoost-RentalService/internal/domain"

// PaymentOutcome is the result of starting a booking payment: a checkout
// redirect, a simulated confirmation or a provider error.
type PaymentOutcome = domain.PaymentOutcome

type PaymentOutcomeStatus = domain.PaymentOutcomeStatus

const (
	OutcomeRedirect  = domain.OutcomeRedirect
	OutcomeSimulated = domain.OutcomeSimulated
	OutcomeError     = domain.OutcomeError
)

var ErrInvalidPaymentOutcome = domain.ErrInvalidPaymentOutcome
