package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/auth"
	"github.com/cargodesk/cargodesk-backend/pkg/config"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

type stubSessions struct {
	live map[string]bool
	err  error
}

func (s *stubSessions) HasSession(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.live[jti], nil
}

func testIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "cargodesk-test",
		ExpirationMinutes: 5,
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
}

func runAuth(t *testing.T, issuer *auth.TokenIssuer, sessions sessionChecker, header string) (*httptest.ResponseRecorder, context.Context) {
	t.Helper()

	var captured context.Context
	handler := Auth(issuer, sessions, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context()
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	issuer := testIssuer(t)
	token, jti, err := issuer.Mint(uuid.New(), "Ольга")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	rec, ctx := runAuth(t, issuer, &stubSessions{live: map[string]bool{jti: true}}, "Bearer "+token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if UserIDFromContext(ctx) == "" {
		t.Fatal("expected user id seeded into context")
	}
	if UserNameFromContext(ctx) != "Ольга" {
		t.Fatalf("expected display name in context, got %q", UserNameFromContext(ctx))
	}
	if SessionJTIFromContext(ctx) != jti {
		t.Fatal("expected session jti in context")
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	issuer := testIssuer(t)
	token, _, err := issuer.Mint(uuid.New(), "Ольга")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	rec, _ := runAuth(t, issuer, &stubSessions{live: map[string]bool{}}, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	issuer := testIssuer(t)
	rec, _ := runAuth(t, issuer, &stubSessions{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	issuer := testIssuer(t)
	rec, _ := runAuth(t, issuer, &stubSessions{}, "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
