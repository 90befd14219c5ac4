package reporting

import (
	"context"
	"sync"
	"time"

	"studio-voice-backend/internal/booking"
)

// MemoryRepo is a test double backed by a slice.
type MemoryRepo struct {
	mu   sync.Mutex
	rows []booking.ConfirmedBooking

	ListErr error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Add(b booking.ConfirmedBooking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, b)
}

func (r *MemoryRepo) ListBookingsInRange(ctx context.Context, from, to time.Time) ([]booking.ConfirmedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make([]booking.ConfirmedBooking, 0, len(r.rows))
	for _, b := range r.rows {
		if b.CreatedAt.Before(from) || !b.CreatedAt.Before(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
