package dialogue

// State is the explicit conversation stage. It is persisted on the session
// so transitions can be asserted independently of slot fill state.
type State string

const (
	StateInit       State = "init"
	StateCollecting State = "collecting"
	StateCompleting State = "completing"
	StateEnded      State = "ended"
)

// TurnInput is one inbound telephony event, transport-agnostic: a call
// start, a recognized utterance, or a silence retry.
type TurnInput struct {
	CallID      string
	CallerPhone string
	CallerCity  string
	CallerState string

	// IsRetry marks the silence redirect: resume the existing session and
	// re-prompt without touching the draft.
	IsRetry bool

	// Utterance is the recognized speech; empty on call start and silence.
	Utterance string
}

// TurnOutput is what the telephony gateway should do next. Exactly one of
// GatherMore/EndCall is set.
type TurnOutput struct {
	Say        string
	GatherMore bool
	EndCall    bool

	// State after this turn, for observability and tests.
	State State
}

// Caller-facing lines. Technical detail never leaks into these; operators
// get it from logs and the audit trail.
const (
	promptGreeting = "Thanks for calling the studio! I can help you book a recording session. Could I get your name to start?"

	promptStillThere = "Are you still there? Just let me know what you'd like to book and we'll pick up where we left off."

	promptRetry = "Sorry, I didn't catch that. Could you say it one more time?"

	promptStoreTrouble = "I'm sorry, I'm having a little trouble on my end. Could you say that once more?"

	promptPersistFailed = "I'm so sorry, something went wrong while saving your booking. Please call us back in a few minutes and we'll get you sorted out."

	promptAlreadyBooked = "You're all set — your session is already booked and your deposit link is on its way. See you then!"
)
