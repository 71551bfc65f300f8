package agroclient

import (
	"errors"
	"fmt"
)

// MsgGenericError is shown when the server gives no usable message
const MsgGenericError = "Une erreur est survenue. Veuillez réessayer."

var (
	ErrUnauthorized = errors.New("agroclient: unauthorized")
	ErrNoSession    = errors.New("agroclient: no session")
)

// APIError is a non-2xx answer from the API
type APIError struct {
	Status           int
	Code             string
	Message          string
	UnavailableDates []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agroclient: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 answers
func (e *APIError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}
