package apiapp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
)

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	mw := AuthMiddleware(authsvc.NewJWTManager("secret", 15*time.Minute), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	mw := AuthMiddleware(authsvc.NewJWTManager("secret", 15*time.Minute), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called on invalid token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareSetsIdentityContext(t *testing.T) {
	jwtManager := authsvc.NewJWTManager("secret", 15*time.Minute)
	token, _, err := jwtManager.GenerateAccessToken("user-42", "BRAND")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	mw := AuthMiddleware(jwtManager, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing in context")
		}
		if identity.UserID != "user-42" {
			t.Fatalf("user id mismatch: %q", identity.UserID)
		}
		if identity.Role != "BRAND" {
			t.Fatalf("role mismatch: %q", identity.Role)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "plain", header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{name: "lowercase scheme", header: "bearer abc", want: "abc", ok: true},
		{name: "missing scheme", header: "abc.def.ghi", ok: false},
		{name: "empty token", header: "Bearer ", ok: false},
		{name: "empty header", header: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractBearerToken(tc.header)
			if ok != tc.ok {
				t.Fatalf("ok mismatch: got %v want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("token mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}
