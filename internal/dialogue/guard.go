package dialogue

import (
	"strings"

	"studio-voice-backend/internal/booking"
)

// Farewell phrases the model uses when it believes the booking is done.
var farewellPhrases = []string{"goodbye", "see you then"}

// GuardFarewell is the deterministic backstop against the extractor
// hallucinating closure: if the response says farewell while the draft is
// incomplete, append a corrective clause naming every missing slot. The
// returned flag reports whether the guard fired; a guarded turn is never
// terminal.
func GuardFarewell(response string, draft booking.BookingDraft) (string, bool) {
	if booking.IsComplete(draft) {
		return response, false
	}

	lower := strings.ToLower(response)
	farewell := false
	for _, p := range farewellPhrases {
		if strings.Contains(lower, p) {
			farewell = true
			break
		}
	}
	if !farewell {
		return response, false
	}

	missing := booking.MissingSlots(draft)
	return strings.TrimSpace(response) + " Actually, before we finish, I still need your " + humanJoin(missing) + ".", true
}

func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
