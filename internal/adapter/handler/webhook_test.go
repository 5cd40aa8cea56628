package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func TestWebhookRejectsBadSignature(t *testing.T) {
	h := NewWebhook(nil, "webhook-secret", zap.NewNop())

	e := echo.New()
	body := `{"transcript_id":"tr_1","status":"completed"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/assemblyai", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("x-assemblyai-signature", "deadbeef")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AssemblyAI(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookRejectsMissingTranscriptID(t *testing.T) {
	secret := "webhook-secret"
	h := NewWebhook(nil, secret, zap.NewNop())

	body := `{"status":"completed"}`
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	signature := hex.EncodeToString(mac.Sum(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/assemblyai", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("x-assemblyai-signature", signature)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AssemblyAI(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
