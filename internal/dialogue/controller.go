package dialogue

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"studio-voice-backend/internal/audit"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/extract"
	"studio-voice-backend/internal/notify"
	"studio-voice-backend/internal/payments"
	"studio-voice-backend/internal/session"
)

// Extractor is the slice of the extraction adapter the controller needs.
type Extractor interface {
	ExtractTurn(ctx context.Context, draft booking.BookingDraft, history []session.Turn, meta session.CallMetadata, utterance string) (extract.TurnExtraction, error)
}

// Controller orchestrates one webhook turn: load session, extract, merge,
// guard, decide completion, persist, render the next spoken line.
//
// All collaborators are injected at construction; there is no module-level
// state. Every external failure degrades to a spoken prompt; a turn never
// surfaces a technical error to the caller.
type Controller struct {
	sessions  session.Store
	extractor Extractor
	bookings  booking.Repository
	payments  payments.LinkCreator
	notifier  notify.Sender
	audit     *audit.Service

	log   *slog.Logger
	clock func() time.Time
	newID func() string
}

type ControllerDeps struct {
	Sessions  session.Store
	Extractor Extractor
	Bookings  booking.Repository
	Payments  payments.LinkCreator
	Notifier  notify.Sender
	Audit     *audit.Service
	Logger    *slog.Logger
}

func NewController(d ControllerDeps) *Controller {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		sessions:  d.Sessions,
		extractor: d.Extractor,
		bookings:  d.Bookings,
		payments:  d.Payments,
		notifier:  d.Notifier,
		audit:     d.Audit,
		log:       log,
		clock:     time.Now,
		newID:     newBookingID,
	}
}

// HandleTurn processes one inbound event and always has something to say:
// failures are mapped to apology prompts per the error taxonomy rather than
// returned to the transport.
func (c *Controller) HandleTurn(ctx context.Context, in TurnInput) TurnOutput {
	log := c.log.With("call_id", in.CallID)

	sess, err := c.sessions.Load(ctx, in.CallID)
	if err != nil {
		log.Error("session load failed", "err", err)
		return TurnOutput{Say: promptStoreTrouble, GatherMore: true, State: StateCollecting}
	}

	if strings.TrimSpace(in.Utterance) == "" {
		return c.handleCallStart(ctx, log, sess, in)
	}
	return c.handleUtterance(ctx, log, sess, in)
}

// handleCallStart covers both the first inbound event and the silence
// redirect. A silence retry must not mutate the draft or the history.
func (c *Controller) handleCallStart(ctx context.Context, log *slog.Logger, sess session.CallSession, in TurnInput) TurnOutput {
	if in.IsRetry && sess.State != "" {
		log.Debug("silence retry", "state", sess.State)
		return TurnOutput{Say: promptStillThere, GatherMore: true, State: StateCollecting}
	}

	if sess.State == "" {
		// Brand-new call: capture metadata once, greet, persist.
		sess.State = string(StateCollecting)
		sess.Metadata = session.CallMetadata{
			CallerPhone: in.CallerPhone,
			CallerCity:  in.CallerCity,
			CallerState: in.CallerState,
		}
		sess.AppendTurn(session.RoleAgent, promptGreeting)
		if err := c.sessions.Save(ctx, sess); err != nil {
			log.Error("session save failed", "err", err)
		}
		c.record(ctx, log, in.CallID, audit.EventTypeCallStarted, "")
		return TurnOutput{Say: promptGreeting, GatherMore: true, State: StateCollecting}
	}

	// A start event for a known call: re-greet without resetting anything.
	return TurnOutput{Say: promptStillThere, GatherMore: true, State: StateCollecting}
}

func (c *Controller) handleUtterance(ctx context.Context, log *slog.Logger, sess session.CallSession, in TurnInput) TurnOutput {
	if sess.Finalized {
		// Replayed turn after completion: never a second booking.
		return TurnOutput{Say: promptAlreadyBooked, EndCall: true, State: StateEnded}
	}

	ext, err := c.extractor.ExtractTurn(ctx, sess.Booking, sess.RecentHistory(session.ExtractorTurnsMax), sess.Metadata, in.Utterance)
	if err != nil {
		// Transient model failure: fixed retry line, call stays open. The
		// caller's next utterance is the implicit retry.
		log.Warn("extraction failed", "err", err)
		c.record(ctx, log, in.CallID, audit.EventTypeExtractionFailed, err.Error())
		return TurnOutput{Say: promptRetry, GatherMore: true, State: StateCollecting}
	}

	sess.Booking = booking.Merge(sess.Booking, ext.Delta)
	sess.AppendTurn(session.RoleCaller, in.Utterance)

	if booking.IsComplete(sess.Booking) {
		return c.finalize(ctx, log, sess, ext.Spoken)
	}

	say, guarded := GuardFarewell(ext.Spoken, sess.Booking)
	if guarded {
		log.Info("farewell guard fired", "missing", booking.MissingSlots(sess.Booking))
		c.record(ctx, log, in.CallID, audit.EventTypeGuardTriggered, say)
	}

	sess.State = string(StateCollecting)
	sess.AppendTurn(session.RoleAgent, say)
	if err := c.sessions.Save(ctx, sess); err != nil {
		// The turn still answers; the next turn starts from the last
		// successfully saved state.
		log.Error("session save failed", "err", err)
	}
	return TurnOutput{Say: say, GatherMore: true, State: StateCollecting}
}

func (c *Controller) record(ctx context.Context, log *slog.Logger, callID string, t audit.EventType, msg string) {
	if c.audit == nil {
		return
	}
	if err := c.audit.Record(ctx, callID, t, msg); err != nil {
		log.Warn("audit append failed", "type", t, "err", err)
	}
}
