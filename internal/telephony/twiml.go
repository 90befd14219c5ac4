package telephony

import (
	"bytes"
	"encoding/xml"
	"errors"

	"studio-voice-backend/internal/dialogue"
)

// Minimal TwiML builder for the voice dialogue. It intentionally avoids any
// provider SDK dependency; only the verbs this engine speaks are modeled.

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any    `xml:",any"`
}

type twimlSay struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

type twimlGather struct {
	XMLName       xml.Name `xml:"Gather"`
	Input         string   `xml:"input,attr"`
	Action        string   `xml:"action,attr"`
	Method        string   `xml:"method,attr"`
	SpeechTimeout string   `xml:"speechTimeout,attr,omitempty"`
	Say           twimlSay `xml:"Say"`
}

type twimlRedirect struct {
	XMLName xml.Name `xml:"Redirect"`
	Method  string   `xml:"method,attr"`
	URL     string   `xml:",chardata"`
}

type twimlHangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// RenderTurnTwiML maps a dialogue turn result to TwiML. Open turns gather
// the next utterance and fall through to the silence redirect when nothing
// is heard; terminal turns say their line and hang up.
func RenderTurnTwiML(out dialogue.TurnOutput, gatherURL, silenceURL string) (string, error) {
	var r twimlResponse

	switch {
	case out.EndCall:
		r.Verbs = append(r.Verbs, twimlSay{Text: out.Say}, twimlHangup{})
	case out.GatherMore:
		if gatherURL == "" || silenceURL == "" {
			return "", errors.New("telephony: gather and silence urls are required")
		}
		r.Verbs = append(r.Verbs,
			twimlGather{
				Input:         "speech",
				Action:        gatherURL,
				Method:        "POST",
				SpeechTimeout: "auto",
				Say:           twimlSay{Text: out.Say},
			},
			twimlRedirect{Method: "POST", URL: silenceURL},
		)
	default:
		return "", errors.New("telephony: turn output is neither open nor terminal")
	}

	return encodeTwiML(r)
}

// RenderRejectTwiML is spoken when the concurrent-call cap is reached.
func RenderRejectTwiML(message string) (string, error) {
	var r twimlResponse
	r.Verbs = append(r.Verbs, twimlSay{Text: message}, twimlHangup{})
	return encodeTwiML(r)
}

func encodeTwiML(r twimlResponse) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
