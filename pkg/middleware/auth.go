package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-copilot/pkg/jwt"
)

// RequireAuth middleware: validate the bearer token and stash the claims
// on the echo context under "client_id" and "client_role".
func RequireAuth(tokens *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c.Request().Header.Get("Authorization"))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "missing bearer token",
				})
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "invalid_token",
					"message": "token is invalid or expired",
				})
			}

			c.Set("client_id", claims.ClientID)
			c.Set("client_role", claims.Role)
			return next(c)
		}
	}
}

func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
