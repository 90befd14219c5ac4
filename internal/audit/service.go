package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for call events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records dialogue lifecycle events.
//
// IMPORTANT:
// - Audit is internal-only; never expose these records to callers.
// - Callers must treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.CallID == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// Record is the convenience form used on the turn path.
func (s *Service) Record(ctx context.Context, callID string, t EventType, message string) error {
	return s.Append(ctx, Event{CallID: callID, Type: t, Message: message})
}

// RecordFinalize links a finalize outcome to the booking it produced.
func (s *Service) RecordFinalize(ctx context.Context, callID string, t EventType, bookingID, message string) error {
	return s.Append(ctx, Event{CallID: callID, Type: t, BookingID: bookingID, Message: message})
}
