package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"studio-voice-backend/internal/audit"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/payments"
	"studio-voice-backend/internal/session"

	"github.com/google/uuid"
)

func newBookingID() string { return "bk_" + uuid.NewString() }

// finalize runs once per call, on the turn where the merge first completed
// the draft: price it, persist the confirmed booking, then fire the
// deposit-link and SMS side effects. The claim on the session store is the
// at-most-once gate; the side effects after persistence are best-effort.
func (c *Controller) finalize(ctx context.Context, log *slog.Logger, sess session.CallSession, modelSpoken string) TurnOutput {
	sess.State = string(StateCompleting)

	claimed, err := c.sessions.ClaimFinalize(ctx, sess.CallID)
	if err != nil {
		log.Error("finalize claim failed", "err", err)
		return TurnOutput{Say: promptStoreTrouble, GatherMore: true, State: StateCollecting}
	}
	if !claimed {
		log.Warn("finalize replay suppressed")
		return TurnOutput{Say: promptAlreadyBooked, EndCall: true, State: StateEnded}
	}

	q := booking.PriceDraft(sess.Booking)
	b := booking.ConfirmedBooking{
		ID:                 c.newID(),
		CallID:             sess.CallID,
		ArtistName:         sess.Booking.ArtistName,
		Studio:             q.Studio,
		Date:               sess.Booking.Date,
		Time:               sess.Booking.Time,
		DurationHours:      q.DurationHours,
		Currency:           q.Currency,
		TotalCostMinor:     q.TotalCostMinor,
		DepositAmountMinor: q.DepositAmountMinor,
		Status:             booking.BookingStatusPendingPayment,
		ContactPhone:       sess.Booking.PhoneNumber,
		CreatedAt:          c.clock().UTC(),
	}

	if err := c.bookings.Create(ctx, b); err != nil {
		// Terminal: the caller is asked to call back; no partial record
		// exists and nothing is retried here.
		log.Error("booking persist failed", "err", err)
		c.recordFinalize(ctx, log, sess.CallID, audit.EventTypeFinalizeFailed, "", err.Error())
		sess.State = string(StateEnded)
		if err := c.sessions.Save(ctx, sess); err != nil {
			log.Error("session save failed", "err", err)
		}
		return TurnOutput{Say: promptPersistFailed, EndCall: true, State: StateEnded}
	}

	c.sendDepositLink(ctx, log, b)

	say := closingLine(modelSpoken, b)
	sess.Finalized = true
	sess.BookingID = b.ID
	sess.State = string(StateEnded)
	sess.AppendTurn(session.RoleAgent, say)
	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("session save failed", "err", err)
	}

	c.recordFinalize(ctx, log, sess.CallID, audit.EventTypeFinalizeSucceeded, b.ID, "booking created")
	log.Info("booking finalized",
		"booking_id", b.ID,
		"studio", b.Studio,
		"total_minor", b.TotalCostMinor,
		"deposit_minor", b.DepositAmountMinor,
	)
	return TurnOutput{Say: say, EndCall: true, State: StateEnded}
}

// sendDepositLink requests the hosted payment page and texts it to the
// caller. Both steps are logged-only failures: a pending_payment booking
// without a sent link is an accepted degraded outcome handled by
// out-of-band reconciliation.
func (c *Controller) sendDepositLink(ctx context.Context, log *slog.Logger, b booking.ConfirmedBooking) {
	link, err := c.payments.CreateLink(ctx, payments.LinkRequest{
		AmountMinor: b.DepositAmountMinor,
		Currency:    b.Currency,
		Description: fmt.Sprintf("%s session deposit for %s", b.Studio, b.ArtistName),
		BookingID:   b.ID,
	})
	if err != nil {
		log.Error("payment link creation failed", "booking_id", b.ID, "err", err)
		c.recordFinalize(ctx, log, b.CallID, audit.EventTypePaymentLinkFailed, b.ID, err.Error())
		return
	}

	body := fmt.Sprintf(
		"Hi %s! Your %s session on %s at %s is reserved. Pay your $%s deposit to confirm: %s",
		b.ArtistName, b.Studio, b.Date, b.Time, formatUSD(b.DepositAmountMinor), link.CheckoutURL,
	)
	if err := c.notifier.Send(ctx, b.ContactPhone, body); err != nil {
		log.Error("deposit sms failed", "booking_id", b.ID, "err", err)
		c.recordFinalize(ctx, log, b.CallID, audit.EventTypeSMSFailed, b.ID, err.Error())
	}
}

// closingLine reuses the model's own goodbye when it already told the
// caller about the link; otherwise a fixed confirmation is spoken.
func closingLine(modelSpoken string, b booking.ConfirmedBooking) string {
	if strings.Contains(strings.ToLower(modelSpoken), "link") {
		return modelSpoken
	}
	return fmt.Sprintf(
		"Perfect, %s! %s is booked on %s at %s for %d hours. The total is $%s and I'm texting you a link for the $%s deposit now. See you then, goodbye!",
		b.ArtistName, b.Studio, b.Date, b.Time, b.DurationHours,
		formatUSD(b.TotalCostMinor), formatUSD(b.DepositAmountMinor),
	)
}

// formatUSD renders minor units for speech: whole dollars without cents,
// otherwise two decimals.
func formatUSD(minor int64) string {
	if minor%100 == 0 {
		return fmt.Sprintf("%d", minor/100)
	}
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

func (c *Controller) recordFinalize(ctx context.Context, log *slog.Logger, callID string, t audit.EventType, bookingID, msg string) {
	if c.audit == nil {
		return
	}
	if err := c.audit.RecordFinalize(ctx, callID, t, bookingID, msg); err != nil {
		log.Warn("audit append failed", "type", t, "err", err)
	}
}
