package paytech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const requestPaymentPath = "/api/payment/request-payment"

// Config holds the merchant credentials and callback URLs
type Config struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	Env        string
	IPNURL     string
	SuccessURL string
	CancelURL  string
}

// Client talks to the PayTech checkout API
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Env == "" {
		cfg.Env = EnvTest
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RequestPayment opens a checkout and returns where to redirect the payer
func (c *Client) RequestPayment(ctx context.Context, p PaymentRequest) (*PaymentResponse, error) {
	body, err := json.Marshal(requestPaymentBody{
		ItemName:    p.ItemName,
		ItemPrice:   strconv.FormatFloat(p.ItemPrice, 'f', -1, 64),
		Currency:    p.Currency,
		RefCommand:  p.RefCommand,
		CommandName: p.CommandName,
		Env:         c.cfg.Env,
		IPNURL:      c.cfg.IPNURL,
		SuccessURL:  c.cfg.SuccessURL,
		CancelURL:   c.cfg.CancelURL,
		CustomField: p.CustomField,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+requestPaymentPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("API_KEY", c.cfg.APIKey)
	req.Header.Set("API_SECRET", c.cfg.APISecret)

	c.log.Info("Requesting PayTech checkout ref_command=%s amount=%.0f %s", p.RefCommand, p.ItemPrice, p.Currency)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	var result requestPaymentResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if resp.StatusCode >= http.StatusBadRequest || result.Success != 1 {
		reason := result.Message
		if reason == "" && len(result.Errors) > 0 {
			reason = strings.Join(result.Errors, "; ")
		}
		c.log.Warn("PayTech refused ref_command=%s: status=%d reason=%s", p.RefCommand, resp.StatusCode, reason)
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, reason)
	}

	redirect := result.RedirectURL
	if redirect == "" {
		redirect = result.RedirectURL2
	}
	if redirect == "" {
		return nil, fmt.Errorf("%w: missing redirect url", ErrInvalidResponse)
	}

	return &PaymentResponse{Token: result.Token, RedirectURL: redirect}, nil
}

// VerifyIPN checks that the notification was signed with our credentials
func (c *Client) VerifyIPN(ipn IPN) error {
	if !hashMatches(c.cfg.APIKey, ipn.APIKeySHA256) || !hashMatches(c.cfg.APISecret, ipn.APISecretSHA256) {
		return ErrInvalidSignature
	}
	if !ipn.IsComplete() && !ipn.IsCanceled() {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ipn.TypeEvent)
	}
	return nil
}

// Sha256Hex hashes a credential the way PayTech does in IPNs
func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func hashMatches(secret, received string) bool {
	expected := Sha256Hex(secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(received))) == 1
}
