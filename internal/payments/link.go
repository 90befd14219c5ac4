package payments

import "context"

// LinkRequest asks the payment collaborator for a hosted page collecting
// the given amount, tagged with the booking it belongs to.
type LinkRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	BookingID   string `json:"booking_id"`
}

type LinkResult struct {
	CheckoutURL string `json:"checkout_url"`
}

// LinkCreator creates deposit payment links. Failures are non-fatal to the
// call; the caller logs and carries on (reconciliation handles bookings
// left without a link).
type LinkCreator interface {
	CreateLink(ctx context.Context, req LinkRequest) (LinkResult, error)
}
