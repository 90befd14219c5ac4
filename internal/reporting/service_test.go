package reporting

import (
	"context"
	"testing"
	"time"

	"studio-voice-backend/internal/booking"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
}

func seedRepo() *MemoryRepo {
	repo := NewMemoryRepo()
	repo.Add(booking.ConfirmedBooking{
		ID: "bk_1", Studio: booking.StudioA, DurationHours: 3,
		Currency: "USD", TotalCostMinor: 22500, DepositAmountMinor: 11250,
		Status: booking.BookingStatusPendingPayment, CreatedAt: day(1),
	})
	repo.Add(booking.ConfirmedBooking{
		ID: "bk_2", Studio: booking.StudioB, DurationHours: 2,
		Currency: "USD", TotalCostMinor: 13000, DepositAmountMinor: 6500,
		Status: booking.BookingStatusConfirmed, CreatedAt: day(2),
	})
	repo.Add(booking.ConfirmedBooking{
		ID: "bk_3", Studio: booking.StudioA, DurationHours: 1,
		Currency: "USD", TotalCostMinor: 7500, DepositAmountMinor: 3750,
		Status: booking.BookingStatusPendingPayment, CreatedAt: day(20),
	})
	return repo
}

func TestBookingsSummary_AggregatesRange(t *testing.T) {
	svc := NewService(seedRepo())

	out, err := svc.BookingsSummary(context.Background(), BookingsSummaryRequest{
		Range: TimeRange{From: day(1), To: day(10)},
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalBookings != 2 {
		t.Fatalf("expected 2 bookings in range, got %d", out.TotalBookings)
	}
	if out.StudioABookings != 1 || out.StudioBBookings != 1 {
		t.Fatalf("unexpected per-studio counts: %+v", out)
	}
	if out.TotalRevenueMinor != 35500 || out.TotalDepositMinor != 17750 {
		t.Fatalf("unexpected revenue: %+v", out)
	}
	if out.TotalHours != 5 || out.AverageHours != 2 {
		t.Fatalf("unexpected hours: %+v", out)
	}
	if out.PendingPayment != 1 || out.ConfirmedBookings != 1 {
		t.Fatalf("unexpected status counts: %+v", out)
	}
	if out.Currency != "USD" {
		t.Fatalf("unexpected currency: %q", out.Currency)
	}
}

func TestBookingsSummary_StudioFilter(t *testing.T) {
	svc := NewService(seedRepo())

	out, err := svc.BookingsSummary(context.Background(), BookingsSummaryRequest{
		Range:  TimeRange{From: day(1), To: day(30)},
		Studio: string(booking.StudioA),
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalBookings != 2 || out.StudioBBookings != 0 {
		t.Fatalf("expected studio A only, got %+v", out)
	}
}

func TestBookingsSummary_RejectsBadInput(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.BookingsSummary(context.Background(), BookingsSummaryRequest{}); err != ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest for empty range, got %v", err)
	}
	if _, err := svc.BookingsSummary(context.Background(), BookingsSummaryRequest{
		Range: TimeRange{From: day(2), To: day(1)},
	}); err != ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest for inverted range, got %v", err)
	}
	if _, err := svc.BookingsSummary(context.Background(), BookingsSummaryRequest{
		Range:  TimeRange{From: day(1), To: day(2)},
		Studio: "Studio C",
	}); err != ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest for unknown studio, got %v", err)
	}
}

func TestBookingsSummary_EmptyRangeDefaultsCurrency(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	out, err := svc.BookingsSummary(context.Background(), BookingsSummaryRequest{
		Range: TimeRange{From: day(1), To: day(2)},
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalBookings != 0 || out.Currency != "USD" {
		t.Fatalf("unexpected empty summary: %+v", out)
	}
}
