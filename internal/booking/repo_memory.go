package booking

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory repository useful for tests and local runs.
// Not intended for production.
type MemoryRepo struct {
	mu       sync.Mutex
	bookings []ConfirmedBooking

	// CreateErr, when set, is returned by Create to exercise the
	// persistence-failure path.
	CreateErr error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Create(ctx context.Context, b ConfirmedBooking) error {
	if b.ID == "" || b.CallID == "" {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (ConfirmedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return ConfirmedBooking{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, limit int) ([]ConfirmedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 || limit > len(r.bookings) {
		limit = len(r.bookings)
	}
	out := make([]ConfirmedBooking, limit)
	copy(out, r.bookings[len(r.bookings)-limit:])
	return out, nil
}

// Bookings returns a copy of everything created so far.
func (r *MemoryRepo) Bookings() []ConfirmedBooking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConfirmedBooking, len(r.bookings))
	copy(out, r.bookings)
	return out
}
