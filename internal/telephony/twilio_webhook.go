package telephony

import (
	"net/http"
	"strings"

	"studio-voice-backend/internal/dialogue"
)

// VoiceWebhookForm captures the subset of Twilio voice webhook fields we
// care about. Twilio sends application/x-www-form-urlencoded by default;
// SpeechResult/Confidence appear on Gather action callbacks.
//
// Keep it minimal and provider-adapter-only. Dialogue decisions are not
// made here.

type VoiceWebhookForm struct {
	CallSid    string
	AccountSid string
	From       string
	To         string
	CallStatus string
	CallerName string

	FromCity    string
	FromState   string
	FromZip     string
	FromCountry string

	SpeechResult string
	Confidence   string
}

func ParseVoiceWebhook(r *http.Request) (VoiceWebhookForm, error) {
	if err := r.ParseForm(); err != nil {
		return VoiceWebhookForm{}, err
	}
	f := VoiceWebhookForm{
		CallSid:      r.PostFormValue("CallSid"),
		AccountSid:   r.PostFormValue("AccountSid"),
		From:         normalizePhone(r.PostFormValue("From")),
		To:           normalizePhone(r.PostFormValue("To")),
		CallStatus:   r.PostFormValue("CallStatus"),
		CallerName:   r.PostFormValue("CallerName"),
		FromCity:     r.PostFormValue("FromCity"),
		FromState:    r.PostFormValue("FromState"),
		FromZip:      r.PostFormValue("FromZip"),
		FromCountry:  r.PostFormValue("FromCountry"),
		SpeechResult: strings.TrimSpace(r.PostFormValue("SpeechResult")),
		Confidence:   r.PostFormValue("Confidence"),
	}
	return f, nil
}

func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	// Twilio sometimes sends "anonymous" or empty; keep as-is.
	return s
}

// ToTurnInput maps the provider form onto the engine's transport-agnostic
// turn event.
func (f VoiceWebhookForm) ToTurnInput(isRetry bool) dialogue.TurnInput {
	return dialogue.TurnInput{
		CallID:      f.CallSid,
		CallerPhone: f.From,
		CallerCity:  f.FromCity,
		CallerState: f.FromState,
		IsRetry:     isRetry,
		Utterance:   f.SpeechResult,
	}
}
