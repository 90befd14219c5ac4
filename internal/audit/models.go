package audit

import "time"

// Event is an immutable, append-only operational record of something that
// happened during a call.
//
// Invariants:
// - Events are never updated or deleted.
// - Writes are best-effort; a failed audit write must never fail a turn.
// - Technical failure detail lives here and in logs, never in what the
//   caller hears.
//
// Storage recommendation (Postgres):
// - Table call_events with an INSERT-only policy.
// - Optional: partition by time for retention.

type Event struct {
	ID     string `json:"id" db:"id"`
	CallID string `json:"call_id" db:"call_id"`

	// Type indicates the dialogue lifecycle category of the record.
	Type EventType `json:"type" db:"type"`

	// BookingID links finalize events to the record they produced.
	BookingID string `json:"booking_id,omitempty" db:"booking_id"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON for full details.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeCallStarted       EventType = "call_started"
	EventTypeGuardTriggered    EventType = "guard_triggered"
	EventTypeExtractionFailed  EventType = "extraction_failed"
	EventTypeFinalizeSucceeded EventType = "finalize_succeeded"
	EventTypeFinalizeFailed    EventType = "finalize_failed"
	EventTypePaymentLinkFailed EventType = "payment_link_failed"
	EventTypeSMSFailed         EventType = "sms_failed"
)
