package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient creates Stripe Checkout Sessions over the form-encoded REST
// API. No SDK dependency; the surface we need is one endpoint.
type StripeClient struct {
	BaseURL string
	APIKey  string

	// SuccessURL and CancelURL are where Checkout sends the payer
	// afterwards; optional.
	SuccessURL string
	CancelURL  string

	Client *http.Client
}

func NewStripeClient(apiKey string, timeout time.Duration) *StripeClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &StripeClient{
		BaseURL: "https://api.stripe.com",
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

type checkoutSessionResp struct {
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *StripeClient) CreateLink(ctx context.Context, req LinkRequest) (LinkResult, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return LinkResult{}, errors.New("stripe: api key is required")
	}
	if req.AmountMinor <= 0 {
		return LinkResult{}, errors.New("stripe: amount must be positive")
	}
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.Description)
	if req.BookingID != "" {
		form.Set("metadata[booking_id]", req.BookingID)
	}
	if c.SuccessURL != "" {
		form.Set("success_url", c.SuccessURL)
	}
	if c.CancelURL != "" {
		form.Set("cancel_url", c.CancelURL)
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/v1/checkout/sessions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return LinkResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(c.APIKey, "")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return LinkResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return LinkResult{}, fmt.Errorf("stripe: %s", msg)
	}

	var decoded checkoutSessionResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return LinkResult{}, err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return LinkResult{}, errors.New(decoded.Error.Message)
	}
	if decoded.URL == "" {
		return LinkResult{}, errors.New("stripe: no checkout url in response")
	}
	return LinkResult{CheckoutURL: decoded.URL}, nil
}
