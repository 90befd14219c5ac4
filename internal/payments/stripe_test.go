package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStripeClient_CreateLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostFormValue("line_items[0][price_data][unit_amount]"); got != "11250" {
			t.Fatalf("unexpected amount %q", got)
		}
		if got := r.PostFormValue("metadata[booking_id]"); got != "bk_1" {
			t.Fatalf("unexpected booking id %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url": "https://checkout.stripe.com/pay/cs_test_123"}`))
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test_x", time.Second)
	c.BaseURL = srv.URL

	res, err := c.CreateLink(context.Background(), LinkRequest{
		AmountMinor: 11250,
		Currency:    "USD",
		Description: "Studio A session deposit",
		BookingID:   "bk_1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.CheckoutURL != "https://checkout.stripe.com/pay/cs_test_123" {
		t.Fatalf("unexpected url %q", res.CheckoutURL)
	}
}

func TestStripeClient_CreateLink_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"message": "account disabled"}}`))
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test_x", time.Second)
	c.BaseURL = srv.URL

	if _, err := c.CreateLink(context.Background(), LinkRequest{AmountMinor: 100}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStripeClient_RequiresAmount(t *testing.T) {
	c := NewStripeClient("sk_test_x", time.Second)
	if _, err := c.CreateLink(context.Background(), LinkRequest{AmountMinor: 0}); err == nil {
		t.Fatalf("expected error for zero amount")
	}
}
