// Package agroclient is a Go client for the AgroBoost rental API.
// It attaches the bearer token from an AuthStore and clears the session on 401.
package agroclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

const apiPrefix = "/api/v1"

type Client struct {
	baseURL    string
	store      AuthStore
	httpClient *http.Client
}

func New(baseURL string, store AuthStore, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + apiPrefix,
		store:   store,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login signs in and stores the session
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	session := Session{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		UserID:    resp.User.ID,
		Role:      resp.User.Role,
	}
	c.store.SetSession(session)
	return &session, nil
}

// Logout revokes the token server-side; the local session is cleared either way.
func (c *Client) Logout(ctx context.Context) error {
	if c.store.GetToken() == "" {
		return ErrNoSession
	}
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.store.ClearSession()
	return err
}

func (c *Client) Quote(ctx context.Context, req BookingRequest) (*Quote, error) {
	var quote Quote
	if err := c.do(ctx, http.MethodPost, "/bookings/quote", req, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateBooking submits a booking. A 409 carries the conflicting dates in APIError.UnavailableDates.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	var resp bookingResponse
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &resp); err != nil {
		return nil, err
	}

	outcome, err := domain.ParsePaymentOutcome(resp.Payment)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: resp.Booking, Payment: outcome}, nil
}

func (c *Client) InitiatePayment(ctx context.Context, bookingID int64) (PaymentOutcome, error) {
	var raw json.RawMessage
	body := map[string]int64{"bookingId": bookingID}
	if err := c.do(ctx, http.MethodPost, "/payments/initiate", body, &raw); err != nil {
		return PaymentOutcome{}, err
	}
	return domain.ParsePaymentOutcome(raw)
}

func (c *Client) CancelBooking(ctx context.Context, bookingID int64, reason string) error {
	path := "/bookings/" + strconv.FormatInt(bookingID, 10) + "/cancel"
	var body interface{}
	if reason != "" {
		body = map[string]string{"cancellationReason": reason}
	}
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// do sends in as JSON and decodes the data field of the answer into out
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("agroclient: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("agroclient: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("agroclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("agroclient: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized {
			c.store.ClearSession()
		}
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("agroclient: decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return errors.New("agroclient: response without data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("agroclient: decode data: %w", err)
	}
	return nil
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Message: MsgGenericError}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Code = body.Code
	if body.Message != "" {
		apiErr.Message = body.Message
	}
	apiErr.UnavailableDates = body.UnavailableDates
	return apiErr
}
