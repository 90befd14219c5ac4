package session

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("session store unavailable")

// Store persists call sessions between stateless webhook invocations.
//
// Turns within one call are sequential (the telephony provider waits for a
// response before sending the next event), so no cross-turn locking is
// needed, but Load must reflect the most recent Save for the same call ID
// regardless of which process wrote it.
type Store interface {
	// Load returns the session for a call, or a freshly initialized empty
	// session when none exists yet.
	Load(ctx context.Context, callID string) (CallSession, error)

	Save(ctx context.Context, s CallSession) error

	// ClaimFinalize atomically marks a call as finalized and reports
	// whether this caller won the claim. A replayed completing turn loses
	// the claim and must not create a second booking.
	ClaimFinalize(ctx context.Context, callID string) (bool, error)
}

func newSession(callID string) CallSession {
	return CallSession{CallID: callID}
}
