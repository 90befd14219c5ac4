package telephony

import (
	"context"
	"net/http"

	"studio-voice-backend/internal/dialogue"
	"studio-voice-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DialogueEngine is the slice of the dialogue controller these handlers
// drive.
type DialogueEngine interface {
	HandleTurn(ctx context.Context, in dialogue.TurnInput) dialogue.TurnOutput
}

// VoiceWebhookHandler converts Twilio voice webhooks to turn events,
// delegates to the dialogue engine, and writes TwiML.
//
// No dialogue logic here.
//
// NOTE: these endpoints should be protected by Twilio signature validation
// in production.
type VoiceWebhookHandler struct {
	Engine DialogueEngine

	// Gate is optional; nil means no concurrent-call cap.
	Gate CallGate

	// Paths the rendered TwiML points back at.
	TurnPath    string
	SilencePath string

	busyMessage string
}

func NewVoiceWebhookHandler(engine DialogueEngine, gate CallGate) *VoiceWebhookHandler {
	return &VoiceWebhookHandler{
		Engine:      engine,
		Gate:        gate,
		TurnPath:    "/webhooks/twilio/voice/turn",
		SilencePath: "/webhooks/twilio/voice?retry=1",
		busyMessage: "We're sorry, all of our lines are busy right now. Please call back in a few minutes.",
	}
}

// HandleCallStart answers the initial voice webhook and the silence
// redirect (retry=1).
func (h *VoiceWebhookHandler) HandleCallStart(c *gin.Context) {
	log := logger.FromGin(c)

	form, err := ParseVoiceWebhook(c.Request)
	if err != nil || form.CallSid == "" {
		log.Warn("voice webhook parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	isRetry := c.Query("retry") == "1"
	if !isRetry && h.Gate != nil {
		ok, err := h.Gate.Acquire(c.Request.Context())
		if err != nil {
			// Gate trouble must not drop the call; serve it.
			log.Warn("call gate acquire failed", "err", err)
		} else if !ok {
			log.Info("call rejected by gate", "call_sid", form.CallSid)
			h.writeTwiML(c, func() (string, error) { return RenderRejectTwiML(h.busyMessage) })
			return
		}
	}

	out := h.Engine.HandleTurn(c.Request.Context(), form.ToTurnInput(isRetry))
	h.writeTwiML(c, func() (string, error) { return RenderTurnTwiML(out, h.TurnPath, h.SilencePath) })
}

// HandleTurn answers the Gather action callback carrying recognized speech.
// An empty SpeechResult is routed through the silence path.
func (h *VoiceWebhookHandler) HandleTurn(c *gin.Context) {
	log := logger.FromGin(c)

	form, err := ParseVoiceWebhook(c.Request)
	if err != nil || form.CallSid == "" {
		log.Warn("voice webhook parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	out := h.Engine.HandleTurn(c.Request.Context(), form.ToTurnInput(form.SpeechResult == ""))
	h.writeTwiML(c, func() (string, error) { return RenderTurnTwiML(out, h.TurnPath, h.SilencePath) })
}

// HandleCallStatus receives Twilio status callbacks and releases the call
// gate when a call leaves the system.
func (h *VoiceWebhookHandler) HandleCallStatus(c *gin.Context) {
	log := logger.FromGin(c)

	form, err := ParseVoiceWebhook(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	switch form.CallStatus {
	case "completed", "failed", "busy", "no-answer", "canceled":
		if h.Gate != nil {
			if err := h.Gate.Release(c.Request.Context()); err != nil {
				log.Warn("call gate release failed", "err", err)
			}
		}
		log.Info("call ended", "call_sid", form.CallSid, "status", form.CallStatus)
	}
	c.Status(http.StatusNoContent)
}

func (h *VoiceWebhookHandler) writeTwiML(c *gin.Context, render func() (string, error)) {
	log := logger.FromGin(c)
	twiml, err := render()
	if err != nil {
		log.Error("twiml render failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "twiml failed"})
		return
	}
	c.Header("Content-Type", "application/xml")
	c.String(http.StatusOK, twiml)
}
