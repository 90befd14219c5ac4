package reporting

import "time"

// Common filtering inputs.

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// BookingsSummaryRequest requests aggregated booking metrics for a range.

type BookingsSummaryRequest struct {
	Range TimeRange `json:"range"`

	// Studio filters to one room when set ("Studio A" / "Studio B").
	Studio string `json:"studio,omitempty"`
}

type BookingsSummary struct {
	Studio string `json:"studio,omitempty"`

	TotalBookings     int `json:"total_bookings"`
	PendingPayment    int `json:"pending_payment"`
	ConfirmedBookings int `json:"confirmed_bookings"`

	StudioABookings int `json:"studio_a_bookings"`
	StudioBBookings int `json:"studio_b_bookings"`

	TotalHours   int `json:"total_hours"`
	AverageHours int `json:"average_hours"`

	Currency          string `json:"currency"`
	TotalRevenueMinor int64  `json:"total_revenue_minor"`
	TotalDepositMinor int64  `json:"total_deposit_minor"`
}
