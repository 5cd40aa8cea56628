package jwt

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("cli-client", "service")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.ClientID != "cli-client" || claims.Role != "service" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	other := NewManager("different-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("cli-client", "service")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected validation to fail with a different secret")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateRefreshToken("cli-client")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	subject, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
	if subject != "cli-client" {
		t.Fatalf("subject = %q, want cli-client", subject)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateRefreshToken("cli-client")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatalf("refresh token must not validate as access token")
	}
}
