package reporting

import (
	"context"
	"errors"
	"time"

	"studio-voice-backend/internal/booking"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting.
//
// Implementations should query the immutable bookings table; summaries are
// derived, never stored.
type Repository interface {
	ListBookingsInRange(ctx context.Context, from, to time.Time) ([]booking.ConfirmedBooking, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) BookingsSummary(ctx context.Context, req BookingsSummaryRequest) (BookingsSummary, error) {
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return BookingsSummary{}, ErrInvalidRequest
	}
	if req.Studio != "" && req.Studio != string(booking.StudioA) && req.Studio != string(booking.StudioB) {
		return BookingsSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return BookingsSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListBookingsInRange(ctx, req.Range.From, req.Range.To)
	if err != nil {
		return BookingsSummary{}, err
	}

	out := BookingsSummary{Studio: req.Studio}
	for _, b := range rows {
		if req.Studio != "" && string(b.Studio) != req.Studio {
			continue
		}
		if out.Currency == "" {
			out.Currency = b.Currency
		}

		out.TotalBookings++
		out.TotalHours += b.DurationHours
		out.TotalRevenueMinor += b.TotalCostMinor
		out.TotalDepositMinor += b.DepositAmountMinor

		switch b.Status {
		case booking.BookingStatusPendingPayment:
			out.PendingPayment++
		case booking.BookingStatusConfirmed:
			out.ConfirmedBookings++
		}

		switch b.Studio {
		case booking.StudioA:
			out.StudioABookings++
		case booking.StudioB:
			out.StudioBBookings++
		}
	}
	if out.TotalBookings > 0 {
		out.AverageHours = out.TotalHours / out.TotalBookings
	}
	if out.Currency == "" {
		out.Currency = "USD"
	}
	return out, nil
}
