package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studio-voice-backend/internal/audit"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/extract"
	"studio-voice-backend/internal/payments"
	"studio-voice-backend/internal/session"
)

type scriptedExtractor struct {
	replies []extract.TurnExtraction
	errs    []error
	calls   int
}

func (s *scriptedExtractor) ExtractTurn(ctx context.Context, draft booking.BookingDraft, history []session.Turn, meta session.CallMetadata, utterance string) (extract.TurnExtraction, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var reply extract.TurnExtraction
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	return reply, err
}

type fakeLinkCreator struct {
	url   string
	err   error
	calls int
	last  payments.LinkRequest
}

func (f *fakeLinkCreator) CreateLink(ctx context.Context, req payments.LinkRequest) (payments.LinkResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return payments.LinkResult{}, f.err
	}
	return payments.LinkResult{CheckoutURL: f.url}, nil
}

type fakeSender struct {
	err   error
	calls int
	to    string
	body  string
}

func (f *fakeSender) Send(ctx context.Context, toPhone, body string) error {
	f.calls++
	f.to = toPhone
	f.body = body
	return f.err
}

type fixture struct {
	ctrl     *Controller
	sessions *session.MemoryStore
	bookings *booking.MemoryRepo
	links    *fakeLinkCreator
	sms      *fakeSender
	events   *audit.MemoryRepo
	ext      *scriptedExtractor
}

func newFixture(ext *scriptedExtractor) *fixture {
	f := &fixture{
		sessions: session.NewMemoryStore(time.Minute),
		bookings: booking.NewMemoryRepo(),
		links:    &fakeLinkCreator{url: "https://pay.example/cs_1"},
		sms:      &fakeSender{},
		events:   audit.NewMemoryRepo(),
		ext:      ext,
	}
	f.ctrl = NewController(ControllerDeps{
		Sessions:  f.sessions,
		Extractor: ext,
		Bookings:  f.bookings,
		Payments:  f.links,
		Notifier:  f.sms,
		Audit:     audit.NewService(f.events),
	})
	return f
}

func start(t *testing.T, f *fixture, callID string) TurnOutput {
	t.Helper()
	return f.ctrl.HandleTurn(context.Background(), TurnInput{
		CallID:      callID,
		CallerPhone: "+15551234567",
		CallerCity:  "Austin",
		CallerState: "TX",
	})
}

func speak(t *testing.T, f *fixture, callID, utterance string) TurnOutput {
	t.Helper()
	return f.ctrl.HandleTurn(context.Background(), TurnInput{CallID: callID, Utterance: utterance})
}

func reply(say string, delta booking.BookingDraft) extract.TurnExtraction {
	return extract.TurnExtraction{Spoken: say, Delta: delta, Structured: true}
}

func TestHandleTurn_CallStartGreetsAndCapturesMetadata(t *testing.T) {
	f := newFixture(&scriptedExtractor{})

	out := start(t, f, "CA1")
	if out.Say != promptGreeting || !out.GatherMore || out.EndCall {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.State != StateCollecting {
		t.Fatalf("expected collecting state, got %v", out.State)
	}

	sess, _ := f.sessions.Load(context.Background(), "CA1")
	if sess.Metadata.CallerPhone != "+15551234567" || sess.Metadata.CallerCity != "Austin" {
		t.Fatalf("metadata not captured: %+v", sess.Metadata)
	}
	if len(sess.History) != 1 || sess.History[0].Role != session.RoleAgent {
		t.Fatalf("expected greeting in history: %+v", sess.History)
	}
}

func TestHandleTurn_HappyPathFinalizesOnce(t *testing.T) {
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply("Nice to meet you, Ava! What's the best number for you?", booking.BookingDraft{ArtistName: "Ava"}),
		reply("Got it. Which studio would you like?", booking.BookingDraft{PhoneNumber: "+15551234567"}),
		reply("Studio A it is. What date?", booking.BookingDraft{Studio: "Studio A"}),
		reply("And what time?", booking.BookingDraft{Date: "tomorrow"}),
		reply("How long would you like the session?", booking.BookingDraft{Time: "4 PM"}),
		reply("Wonderful, that's everything!", booking.BookingDraft{Duration: "2 hours"}),
	}}
	f := newFixture(ext)

	start(t, f, "CA1")
	speak(t, f, "CA1", "Hi, I'm Ava")
	speak(t, f, "CA1", "Use this number")
	speak(t, f, "CA1", "Studio A please")
	speak(t, f, "CA1", "Tomorrow")
	speak(t, f, "CA1", "4 PM")
	out := speak(t, f, "CA1", "Two hours")

	if !out.EndCall || out.GatherMore {
		t.Fatalf("expected terminal turn, got %+v", out)
	}
	if out.State != StateEnded {
		t.Fatalf("expected ended state, got %v", out.State)
	}

	created := f.bookings.Bookings()
	if len(created) != 1 {
		t.Fatalf("expected exactly one booking, got %d", len(created))
	}
	b := created[0]
	if b.Status != booking.BookingStatusPendingPayment {
		t.Fatalf("expected pending_payment, got %q", b.Status)
	}
	if b.Studio != booking.StudioA || b.DurationHours != 2 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if b.TotalCostMinor != 15000 || b.DepositAmountMinor != 7500 {
		t.Fatalf("unexpected pricing: total=%d deposit=%d", b.TotalCostMinor, b.DepositAmountMinor)
	}

	if f.links.calls != 1 || f.links.last.AmountMinor != 7500 || f.links.last.BookingID != b.ID {
		t.Fatalf("unexpected link request: %+v", f.links.last)
	}
	if f.sms.calls != 1 || f.sms.to != "+15551234567" || !strings.Contains(f.sms.body, f.links.url) {
		t.Fatalf("unexpected sms: to=%q body=%q", f.sms.to, f.sms.body)
	}

	// Replaying the completing turn must not create a second record.
	again := speak(t, f, "CA1", "Two hours")
	if !again.EndCall {
		t.Fatalf("expected replay to end call, got %+v", again)
	}
	if got := len(f.bookings.Bookings()); got != 1 {
		t.Fatalf("replay created a duplicate booking: %d", got)
	}
	if ext.calls != 6 {
		t.Fatalf("expected no extraction on replay, got %d calls", ext.calls)
	}
}

func TestHandleTurn_SlotsArriveInAnyOrder(t *testing.T) {
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply("Okay!", booking.BookingDraft{Duration: "3 hours", Time: "noon"}),
		reply("Okay!", booking.BookingDraft{Studio: "Studio B", Date: "Friday"}),
		reply("All set!", booking.BookingDraft{ArtistName: "Moe", PhoneNumber: "+15550009999"}),
	}}
	f := newFixture(ext)

	start(t, f, "CA2")
	speak(t, f, "CA2", "three hours at noon")
	speak(t, f, "CA2", "studio b on friday")
	out := speak(t, f, "CA2", "I'm Moe, 555-000-9999")

	if !out.EndCall {
		t.Fatalf("expected completion, got %+v", out)
	}
	created := f.bookings.Bookings()
	if len(created) != 1 {
		t.Fatalf("expected one booking, got %d", len(created))
	}
	if created[0].Studio != booking.StudioB || created[0].TotalCostMinor != 19500 {
		t.Fatalf("unexpected booking: %+v", created[0])
	}
}

func TestHandleTurn_PrematureGoodbyeIsGuarded(t *testing.T) {
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply("Great, goodbye!", booking.BookingDraft{
			ArtistName:  "Ava",
			PhoneNumber: "+15551234567",
			Studio:      "Studio A",
			Date:        "tomorrow",
			Time:        "4 PM",
			// duration still missing
		}),
	}}
	f := newFixture(ext)

	start(t, f, "CA3")
	out := speak(t, f, "CA3", "book it all")

	if out.EndCall {
		t.Fatalf("guarded turn must not end the call")
	}
	if !out.GatherMore {
		t.Fatalf("expected call to keep listening")
	}
	if !strings.Contains(out.Say, "session duration") {
		t.Fatalf("expected missing slot named, got %q", out.Say)
	}
	if got := len(f.bookings.Bookings()); got != 0 {
		t.Fatalf("no booking should exist, got %d", got)
	}
}

func TestHandleTurn_SilenceDoesNotMutateSession(t *testing.T) {
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply("Hi Ava!", booking.BookingDraft{ArtistName: "Ava"}),
	}}
	f := newFixture(ext)

	start(t, f, "CA4")
	speak(t, f, "CA4", "I'm Ava")
	before, _ := f.sessions.Load(context.Background(), "CA4")

	out := f.ctrl.HandleTurn(context.Background(), TurnInput{CallID: "CA4", IsRetry: true})
	if out.Say != promptStillThere || !out.GatherMore {
		t.Fatalf("unexpected silence output: %+v", out)
	}

	after, _ := f.sessions.Load(context.Background(), "CA4")
	if after.Booking != before.Booking {
		t.Fatalf("silence mutated the draft")
	}
	if len(after.History) != len(before.History) {
		t.Fatalf("silence mutated the history")
	}
}

func TestHandleTurn_ExtractorFailureKeepsCallOpen(t *testing.T) {
	ext := &scriptedExtractor{errs: []error{errors.New("model timeout")}}
	f := newFixture(ext)

	start(t, f, "CA5")
	out := speak(t, f, "CA5", "hello?")

	if out.Say != promptRetry || !out.GatherMore || out.EndCall {
		t.Fatalf("unexpected output: %+v", out)
	}

	var found bool
	for _, e := range f.events.Events() {
		if e.Type == audit.EventTypeExtractionFailed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected extraction_failed audit event")
	}
}

func TestHandleTurn_PersistFailureEndsCall(t *testing.T) {
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply("All set!", booking.BookingDraft{
			ArtistName:  "Ava",
			PhoneNumber: "+15551234567",
			Studio:      "Studio A",
			Date:        "tomorrow",
			Time:        "4 PM",
			Duration:    "2",
		}),
	}}
	f := newFixture(ext)
	f.bookings.CreateErr = errors.New("db down")

	start(t, f, "CA6")
	out := speak(t, f, "CA6", "book everything")

	if !out.EndCall || out.Say != promptPersistFailed {
		t.Fatalf("unexpected output: %+v", out)
	}
	if f.links.calls != 0 || f.sms.calls != 0 {
		t.Fatalf("side effects must not fire when persistence fails")
	}
}

func TestHandleTurn_PaymentAndSMSFailuresAreNonFatal(t *testing.T) {
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply("All set!", booking.BookingDraft{
			ArtistName:  "Ava",
			PhoneNumber: "+15551234567",
			Studio:      "Studio A",
			Date:        "tomorrow",
			Time:        "4 PM",
			Duration:    "2",
		}),
	}}
	f := newFixture(ext)
	f.links.err = errors.New("stripe down")

	start(t, f, "CA7")
	out := speak(t, f, "CA7", "book everything")

	if !out.EndCall {
		t.Fatalf("expected confirmation despite link failure, got %+v", out)
	}
	if got := len(f.bookings.Bookings()); got != 1 {
		t.Fatalf("booking must persist, got %d", got)
	}
	if f.sms.calls != 0 {
		t.Fatalf("sms must not fire without a link")
	}
}

func TestHandleTurn_ClosingReusesModelLineMentioningLink(t *testing.T) {
	modelLine := "Perfect! I'm sending you the deposit link now, goodbye!"
	ext := &scriptedExtractor{replies: []extract.TurnExtraction{
		reply(modelLine, booking.BookingDraft{
			ArtistName:  "Ava",
			PhoneNumber: "+15551234567",
			Studio:      "Studio A",
			Date:        "tomorrow",
			Time:        "4 PM",
			Duration:    "2",
		}),
	}}
	f := newFixture(ext)

	start(t, f, "CA8")
	out := speak(t, f, "CA8", "book everything")
	if out.Say != modelLine {
		t.Fatalf("expected model closing reused, got %q", out.Say)
	}
}

func TestHandleTurn_StoreFailureSpeaksApology(t *testing.T) {
	f := newFixture(&scriptedExtractor{})
	f.sessions.Fail = true

	out := speak(t, f, "CA9", "hello")
	if out.Say != promptStoreTrouble || !out.GatherMore || out.EndCall {
		t.Fatalf("unexpected output: %+v", out)
	}
}
