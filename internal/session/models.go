package session

import (
	"time"

	"studio-voice-backend/internal/booking"
)

// Turn is one exchange half within a call.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type Role string

const (
	RoleCaller Role = "caller"
	RoleAgent  Role = "agent"
)

// CallMetadata is captured once at call start and never changes afterwards,
// even when a silence retry re-enters the call-start path.
type CallMetadata struct {
	CallerPhone string `json:"caller_phone"`
	CallerCity  string `json:"caller_city,omitempty"`
	CallerState string `json:"caller_state,omitempty"`
}

// History bounds. Stored history is capped so a long call cannot grow a
// session without limit; the extractor only ever sees the tail.
const (
	MaxStoredTurns    = 50
	ExtractorTurnsMax = 6
)

// CallSession is the per-call conversation state, read-modified-written once
// per webhook turn. The process handling turn N is not necessarily the one
// that handled turn N-1, so everything a turn needs must live here.
type CallSession struct {
	CallID   string               `json:"call_id"`
	Booking  booking.BookingDraft `json:"booking"`
	History  []Turn               `json:"history"`
	Metadata CallMetadata         `json:"metadata"`

	// State is the dialogue stage, owned by the dialogue controller.
	// Empty means the call has not been greeted yet.
	State string `json:"state,omitempty"`

	// Finalized flips once, when the draft first completes and the
	// confirmed booking is created. BookingID links to that record.
	Finalized bool   `json:"finalized"`
	BookingID string `json:"booking_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppendTurn records an exchange half, dropping the oldest turns beyond the
// storage cap.
func (s *CallSession) AppendTurn(role Role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
	if len(s.History) > MaxStoredTurns {
		s.History = s.History[len(s.History)-MaxStoredTurns:]
	}
}

// RecentHistory returns the most recent n turns in order.
func (s *CallSession) RecentHistory(n int) []Turn {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
