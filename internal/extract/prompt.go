package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/session"
)

// buildMessages assembles the per-turn chat context: system instructions
// with the current slot state, the recent history tail, and the new
// utterance.
func buildMessages(draft booking.BookingDraft, history []session.Turn, meta session.CallMetadata, utterance string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: systemPrompt(draft, meta)}}
	for _, t := range history {
		role := RoleUser
		if t.Role == session.RoleAgent {
			role = RoleAssistant
		}
		msgs = append(msgs, Message{Role: role, Content: t.Text})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: utterance})
	return msgs
}

func systemPrompt(draft booking.BookingDraft, meta session.CallMetadata) string {
	known, _ := json.Marshal(draft)

	var b strings.Builder
	b.WriteString("You are the phone receptionist for a recording studio. ")
	b.WriteString("You are collecting a session booking over a voice call, so keep every reply short, natural and speakable — one or two sentences, no lists, no markdown.\n\n")
	b.WriteString("Rooms and rates: Studio A is $75 per hour, Studio B is $65 per hour. A 50% deposit is required to confirm.\n\n")
	b.WriteString("You need all of: artist_name, phone_number, studio, date, time, duration. Ask for one or two missing details at a time.\n\n")
	fmt.Fprintf(&b, "Details already collected (never change a collected value to null or empty, and never re-ask for them): %s\n", known)
	if meta.CallerPhone != "" {
		fmt.Fprintf(&b, "The caller is dialing from %s", meta.CallerPhone)
		if meta.CallerCity != "" {
			fmt.Fprintf(&b, " in %s, %s", meta.CallerCity, meta.CallerState)
		}
		b.WriteString("; offer to use that number as the contact number.\n")
	}
	b.WriteString("\nDo not say goodbye or end the conversation until every detail is collected.\n\n")
	b.WriteString(`Reply with a single JSON object and nothing else, shaped exactly like:
{"response": "what you say next", "booking": {"studio": "", "date": "", "time": "", "duration": "", "artist_name": "", "phone_number": ""}}
Only put values in "booking" that the caller actually provided; leave unknown fields empty.`)
	return b.String()
}
