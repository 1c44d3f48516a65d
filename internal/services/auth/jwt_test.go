package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("top-secret", 15*time.Minute)

	token, expiresAt, err := m.GenerateAccessToken("user-1", "CREATOR")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", expiresAt)
	}

	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user id: %q", claims.UserID)
	}
	if claims.Role != "CREATOR" {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("top-secret", 15*time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := m.GenerateAccessToken("user-1", "BRAND")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m.now = time.Now
	if _, err := m.ParseAccessToken(token); err != ErrUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("issuer-secret", 15*time.Minute)
	verifier := NewJWTManager("other-secret", 15*time.Minute)

	token, _, err := issuer.GenerateAccessToken("user-1", "CREATOR")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ParseAccessToken(token); err != ErrUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateRejectsEmptyUserID(t *testing.T) {
	m := NewJWTManager("top-secret", 15*time.Minute)

	if _, _, err := m.GenerateAccessToken("  ", "CREATOR"); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestParseRejectsEmptyToken(t *testing.T) {
	m := NewJWTManager("top-secret", 15*time.Minute)

	if _, err := m.ParseAccessToken(""); err != ErrUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}
