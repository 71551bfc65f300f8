package paytech

import (
	"net/url"
	"strconv"
)

// Env values accepted by PayTech
const (
	EnvProd = "prod"
	EnvTest = "test"
)

// IPN event types
const (
	EventSaleComplete = "sale_complete"
	EventSaleCanceled = "sale_canceled"
)

// PaymentRequest describes one checkout
type PaymentRequest struct {
	ItemName    string
	ItemPrice   float64
	Currency    string
	RefCommand  string
	CommandName string
	CustomField string
}

// PaymentResponse carries the checkout page to redirect the payer to
type PaymentResponse struct {
	Token       string
	RedirectURL string
}

type requestPaymentBody struct {
	ItemName    string `json:"item_name"`
	ItemPrice   string `json:"item_price"`
	Currency    string `json:"currency"`
	RefCommand  string `json:"ref_command"`
	CommandName string `json:"command_name"`
	Env         string `json:"env"`
	IPNURL      string `json:"ipn_url,omitempty"`
	SuccessURL  string `json:"success_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
	CustomField string `json:"custom_field,omitempty"`
}

type requestPaymentResult struct {
	Success      int      `json:"success"`
	Token        string   `json:"token"`
	RedirectURL  string   `json:"redirect_url"`
	RedirectURL2 string   `json:"redirectUrl"`
	Message      string   `json:"message"`
	Errors       []string `json:"errors"`
}

// IPN is the instant payment notification posted by PayTech
type IPN struct {
	TypeEvent       string
	RefCommand      string
	ItemPrice       float64
	Token           string
	CustomField     string
	APIKeySHA256    string
	APISecretSHA256 string
}

// ParseIPN reads an IPN from its form fields
func ParseIPN(form url.Values) IPN {
	price, _ := strconv.ParseFloat(form.Get("item_price"), 64)
	return IPN{
		TypeEvent:       form.Get("type_event"),
		RefCommand:      form.Get("ref_command"),
		ItemPrice:       price,
		Token:           form.Get("token"),
		CustomField:     form.Get("custom_field"),
		APIKeySHA256:    form.Get("api_key_sha256"),
		APISecretSHA256: form.Get("api_secret_sha256"),
	}
}

// IsComplete reports a successful sale
func (i IPN) IsComplete() bool {
	return i.TypeEvent == EventSaleComplete
}

// IsCanceled reports an abandoned or refused sale
func (i IPN) IsCanceled() bool {
	return i.TypeEvent == EventSaleCanceled
}
