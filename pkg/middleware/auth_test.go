package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-copilot/pkg/jwt"
)

func TestRequireAuth(t *testing.T) {
	tokens := jwt.NewManager("access", "refresh", time.Minute, time.Hour)
	access, err := tokens.GenerateAccessToken("cli", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	e := echo.New()
	handler := RequireAuth(tokens)(func(c echo.Context) error {
		if got := c.Get("client_id"); got != "cli" {
			t.Fatalf("client_id = %v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + access, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
