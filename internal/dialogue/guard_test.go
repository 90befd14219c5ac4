package dialogue

import (
	"strings"
	"testing"

	"studio-voice-backend/internal/booking"
)

func TestGuardFarewell_IncompleteDraftListsMissingSlots(t *testing.T) {
	draft := booking.BookingDraft{
		Studio:      "Studio A",
		Date:        "tomorrow",
		Time:        "4 PM",
		ArtistName:  "Ava",
		PhoneNumber: "+15551234567",
		// duration missing
	}

	got, guarded := GuardFarewell("Great, goodbye!", draft)
	if !guarded {
		t.Fatalf("expected guard to fire")
	}
	if !strings.Contains(got, "session duration") {
		t.Fatalf("expected missing slot named, got %q", got)
	}
}

func TestGuardFarewell_NamesEveryMissingSlot(t *testing.T) {
	got, guarded := GuardFarewell("Okay, see you then!", booking.BookingDraft{})
	if !guarded {
		t.Fatalf("expected guard to fire")
	}
	for _, want := range []string{"name", "phone number", "studio", "date", "time", "session duration"} {
		if !strings.Contains(got, want) {
			t.Fatalf("guarded response missing %q: %q", want, got)
		}
	}
}

func TestGuardFarewell_CompleteDraftPassesThrough(t *testing.T) {
	draft := booking.BookingDraft{
		Studio:      "Studio A",
		Date:        "tomorrow",
		Time:        "4 PM",
		Duration:    "2 hours",
		ArtistName:  "Ava",
		PhoneNumber: "+15551234567",
	}
	got, guarded := GuardFarewell("Great, goodbye!", draft)
	if guarded || got != "Great, goodbye!" {
		t.Fatalf("expected passthrough, got guarded=%v %q", guarded, got)
	}
}

func TestGuardFarewell_NonFarewellPassesThrough(t *testing.T) {
	got, guarded := GuardFarewell("What time works for you?", booking.BookingDraft{})
	if guarded || got != "What time works for you?" {
		t.Fatalf("expected passthrough, got guarded=%v %q", guarded, got)
	}
}

func TestHumanJoin(t *testing.T) {
	if got := humanJoin([]string{"date"}); got != "date" {
		t.Fatalf("got %q", got)
	}
	if got := humanJoin([]string{"date", "time"}); got != "date and time" {
		t.Fatalf("got %q", got)
	}
	if got := humanJoin([]string{"name", "date", "time"}); got != "name, date, and time" {
		t.Fatalf("got %q", got)
	}
}
