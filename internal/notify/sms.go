package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers a text message. Delivery is fire-and-forget: callers log
// the outcome and never fail a call on it.
type Sender interface {
	Send(ctx context.Context, toPhone, body string) error
}

// TwilioSender sends SMS through the Twilio Messages REST endpoint.
type TwilioSender struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	FromNumber string
	Client     *http.Client
}

func NewTwilioSender(accountSID, authToken, fromNumber string, timeout time.Duration) *TwilioSender {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TwilioSender{
		BaseURL:    "https://api.twilio.com",
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		Client:     &http.Client{Timeout: timeout},
	}
}

func (s *TwilioSender) Send(ctx context.Context, toPhone, body string) error {
	if s.AccountSID == "" || s.AuthToken == "" || s.FromNumber == "" {
		return errors.New("notify: twilio credentials are required")
	}
	if strings.TrimSpace(toPhone) == "" {
		return errors.New("notify: destination phone is required")
	}

	form := url.Values{}
	form.Set("To", toPhone)
	form.Set("From", s.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(s.BaseURL, "/"), s.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.AccountSID, s.AuthToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("notify: twilio: %s", msg)
	}
	return nil
}
