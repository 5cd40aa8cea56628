package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-copilot/pkg/config"
	"github.com/johnquangdev/meeting-copilot/pkg/jwt"
	"github.com/johnquangdev/meeting-copilot/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	tokens         *jwt.Manager
	authHandler    *Auth
	meetingHandler *Meeting
	webhookHandler *Webhook
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, tokens *jwt.Manager, authHandler *Auth, meetingHandler *Meeting, webhookHandler *Webhook) *Router {
	return &Router{
		cfg:            cfg,
		tokens:         tokens,
		authHandler:    authHandler,
		meetingHandler: meetingHandler,
		webhookHandler: webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupAuthRoutes configures token issuance routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")
	authGroup.POST("/token", rt.authHandler.Token)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
}

// setupMeetingRoutes configures meeting and extraction routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	authed := middleware.RequireAuth(rt.tokens)

	meetingGroup := g.Group("/meetings", authed)
	meetingGroup.POST("", rt.meetingHandler.Create)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
	meetingGroup.POST("/:id/summarize", rt.meetingHandler.Summarize)
	meetingGroup.GET("/:id/summary", rt.meetingHandler.GetSummary)
	meetingGroup.POST("/:id/ask", rt.meetingHandler.Ask)

	// Stateless endpoints, no stored meeting involved
	g.POST("/summarize", rt.meetingHandler.SummarizeText, authed)
	g.POST("/ask", rt.meetingHandler.AskText, authed)
	g.POST("/transcribe", rt.meetingHandler.Transcribe, authed)
}

// setupWebhookRoutes configures provider callback routes. Webhooks are
// authenticated by HMAC signature, not bearer tokens.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhookGroup := g.Group("/webhooks")
	webhookGroup.POST("/assemblyai", rt.webhookHandler.AssemblyAI)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
