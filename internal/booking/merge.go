package booking

import "strings"

// Slot labels in the order callers hear them when prompted for what is
// still missing.
var slotLabels = []struct {
	label string
	get   func(BookingDraft) string
}{
	{"name", func(d BookingDraft) string { return d.ArtistName }},
	{"phone number", func(d BookingDraft) string { return d.PhoneNumber }},
	{"studio", func(d BookingDraft) string { return d.Studio }},
	{"date", func(d BookingDraft) string { return d.Date }},
	{"time", func(d BookingDraft) string { return d.Time }},
	{"session duration", func(d BookingDraft) string { return d.Duration }},
}

// Merge folds extracted slot updates into the current draft.
//
// Per-slot rule: the incoming value wins only if it is non-empty after
// trimming and is not the literal string "null" (LLMs emit that for slots
// they were told not to touch). Merge is pure and idempotent: applying the
// same delta twice yields the same draft as applying it once.
func Merge(cur, delta BookingDraft) BookingDraft {
	out := cur
	out.Studio = pickSlot(cur.Studio, delta.Studio)
	out.Date = pickSlot(cur.Date, delta.Date)
	out.Time = pickSlot(cur.Time, delta.Time)
	out.Duration = pickSlot(cur.Duration, delta.Duration)
	out.ArtistName = pickSlot(cur.ArtistName, delta.ArtistName)
	out.PhoneNumber = pickSlot(cur.PhoneNumber, delta.PhoneNumber)
	return out
}

func pickSlot(cur, next string) string {
	next = strings.TrimSpace(next)
	if next == "" || strings.EqualFold(next, "null") {
		return cur
	}
	return next
}

// IsComplete reports whether every slot holds a value.
func IsComplete(d BookingDraft) bool {
	return len(MissingSlots(d)) == 0
}

// MissingSlots returns human-readable labels of the unfilled slots, in the
// fixed prompt order. The guardrail speaks these back to the caller.
func MissingSlots(d BookingDraft) []string {
	var missing []string
	for _, s := range slotLabels {
		if strings.TrimSpace(s.get(d)) == "" {
			missing = append(missing, s.label)
		}
	}
	return missing
}
