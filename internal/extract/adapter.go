package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/session"
)

// TurnExtraction is one extractor round trip: the line to speak next plus
// zero or more slot updates.
type TurnExtraction struct {
	Spoken string
	Delta  booking.BookingDraft

	// Structured is false when the model reply could not be parsed; the
	// raw text is then carried in Spoken and Delta is empty.
	Structured bool
}

// Extractor sends conversation context to the model and parses the reply.
// It isolates the rest of the engine from model-specific formatting.
type Extractor struct {
	client ChatClient
}

func NewExtractor(client ChatClient) *Extractor {
	return &Extractor{client: client}
}

// ExtractTurn runs one completion for the new utterance. A transport or
// model failure is returned as an error; a malformed reply is NOT an error,
// the raw text is spoken as-is and no slot update applies.
func (e *Extractor) ExtractTurn(ctx context.Context, draft booking.BookingDraft, history []session.Turn, meta session.CallMetadata, utterance string) (TurnExtraction, error) {
	if e.client == nil {
		return TurnExtraction{}, errors.New("extract: chat client is nil")
	}

	raw, err := e.client.Complete(ctx, buildMessages(draft, history, meta, utterance))
	if err != nil {
		return TurnExtraction{}, err
	}
	return parseReply(raw), nil
}

// flexString accepts a JSON string, number, bool or null. Models are told
// to reply with strings but drift (e.g. "duration": 2) must not drop the
// whole payload.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(s)
	return nil
}

type replyPayload struct {
	Response string `json:"response"`
	Booking  struct {
		Studio      flexString `json:"studio"`
		Date        flexString `json:"date"`
		Time        flexString `json:"time"`
		Duration    flexString `json:"duration"`
		ArtistName  flexString `json:"artist_name"`
		PhoneNumber flexString `json:"phone_number"`
	} `json:"booking"`
}

// parseReply tolerates prose and code-fence framing around the JSON object.
func parseReply(raw string) TurnExtraction {
	obj, ok := extractJSONObject(raw)
	if ok {
		var p replyPayload
		if err := json.Unmarshal([]byte(obj), &p); err == nil && strings.TrimSpace(p.Response) != "" {
			return TurnExtraction{
				Spoken: strings.TrimSpace(p.Response),
				Delta: booking.BookingDraft{
					Studio:      string(p.Booking.Studio),
					Date:        string(p.Booking.Date),
					Time:        string(p.Booking.Time),
					Duration:    string(p.Booking.Duration),
					ArtistName:  string(p.Booking.ArtistName),
					PhoneNumber: string(p.Booking.PhoneNumber),
				},
				Structured: true,
			}
		}
	}
	// Degrade: speak the raw text, apply nothing.
	return TurnExtraction{Spoken: strings.TrimSpace(stripFences(raw))}
}

func extractJSONObject(raw string) (string, bool) {
	s := stripFences(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{}") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
