package booking

import "time"

// BookingDraft is the slot set collected over a call. Values are stored
// free-form as spoken ("tomorrow", "4 PM", "2 hours"); normalization happens
// at finalize time, not during collection.
//
// Slot invariant: a slot that holds a non-empty value never regresses to
// empty. All updates go through Merge.
type BookingDraft struct {
	Studio      string `json:"studio,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Duration    string `json:"duration,omitempty"`
	ArtistName  string `json:"artist_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Studio identifies a bookable room. The two known rooms are a closed set;
// rate selection must compare against these exactly, never by substring.
type Studio string

const (
	StudioA Studio = "Studio A"
	StudioB Studio = "Studio B"
)

// ConfirmedBooking is the durable record created exactly once per completed
// call. This engine only creates it; payment and admin flows own any later
// status changes.
//
// Amounts are expressed in minor units (cents) using int64.
type ConfirmedBooking struct {
	ID         string `json:"id" db:"id"`
	CallID     string `json:"call_id" db:"call_id"`
	ArtistName string `json:"artist_name" db:"artist_name"`

	Studio        Studio `json:"studio" db:"studio"`
	Date          string `json:"date" db:"date"`
	Time          string `json:"time" db:"time"`
	DurationHours int    `json:"duration_hours" db:"duration_hours"`

	Currency           string `json:"currency" db:"currency"`
	TotalCostMinor     int64  `json:"total_cost_minor" db:"total_cost_minor"`
	DepositAmountMinor int64  `json:"deposit_amount_minor" db:"deposit_amount_minor"`

	Status       BookingStatus `json:"status" db:"status"`
	ContactPhone string        `json:"contact_phone" db:"contact_phone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
)
