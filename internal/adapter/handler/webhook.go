package handler

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-copilot/errors"
	"github.com/johnquangdev/meeting-copilot/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-copilot/pkg/ai"
)

// Webhook handles incoming callbacks from AssemblyAI
type Webhook struct {
	svc    *meeting.Service
	secret string
	logger *zap.Logger
}

// NewWebhook creates a new webhook handler
func NewWebhook(svc *meeting.Service, secret string, logger *zap.Logger) *Webhook {
	return &Webhook{svc: svc, secret: secret, logger: logger}
}

// assemblyAIPayload is the subset of the webhook body we care about
type assemblyAIPayload struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
}

// AssemblyAI receives transcript status callbacks
// POST /v1/webhooks/assemblyai
func (h *Webhook) AssemblyAI(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if h.secret != "" {
		signature := c.Request().Header.Get("x-assemblyai-signature")
		if signature == "" {
			signature = c.Request().Header.Get("Authorization")
		}
		if !ai.VerifyHMAC(h.secret, body, signature) {
			h.logger.Warn("🚫 Webhook signature verification failed",
				zap.String("request_id", getRequestID(c)),
			)
			return HandleError(h.logger, c, errors.ErrUnauthenticated())
		}
	}

	var payload assemblyAIPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if payload.TranscriptID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("transcript_id is required"))
	}

	if err := h.svc.HandleTranscriptWebhook(c.Request().Context(), payload.TranscriptID, payload.Status); err != nil {
		h.logger.Error("❌ Webhook processing failed",
			zap.String("transcript_id", payload.TranscriptID),
			zap.Error(err),
		)
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "ok"})
}
