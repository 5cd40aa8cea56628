package handler

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-copilot/errors"
	authdto "github.com/johnquangdev/meeting-copilot/internal/adapter/dto/auth"
	"github.com/johnquangdev/meeting-copilot/pkg/config"
	"github.com/johnquangdev/meeting-copilot/pkg/jwt"
)

// Auth handles token issuance for API clients. There is no user store;
// callers authenticate with the configured client credentials.
type Auth struct {
	cfg    *config.AuthConfig
	tokens *jwt.Manager
	logger *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(cfg *config.AuthConfig, tokens *jwt.Manager, logger *zap.Logger) *Auth {
	return &Auth{
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}

// Token exchanges client credentials for a token pair
// POST /v1/auth/token
func (h *Auth) Token(c echo.Context) error {
	var req authdto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	idOK := subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(h.cfg.ClientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(req.ClientSecret), []byte(h.cfg.ClientSecret)) == 1
	if !idOK || !secretOK {
		return HandleError(h.logger, c, errors.ErrInvalidCredentials())
	}

	accessToken, err := h.tokens.GenerateAccessToken(req.ClientID, "client")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(req.ClientID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.tokens.GetAccessExpiry().Seconds()),
		TokenType:    "Bearer",
	})
}

// Refresh exchanges a refresh token for a new access token
// POST /v1/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	var req authdto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	clientID, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidToken())
	}

	accessToken, err := h.tokens.GenerateAccessToken(clientID, "client")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, authdto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(h.tokens.GetAccessExpiry().Seconds()),
		TokenType:   "Bearer",
	})
}
