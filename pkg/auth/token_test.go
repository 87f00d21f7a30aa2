package auth

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "cargodesk-test",
		ExpirationMinutes: 5,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	issuer, err := NewTokenIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	userID := uuid.New()
	signed, jti, err := issuer.Mint(userID, "Ivan Petrov")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}

	claims, err := issuer.ParseAccessToken(signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.DisplayName != "Ivan Petrov" {
		t.Fatalf("unexpected display name %q", claims.DisplayName)
	}
	if claims.ID != jti {
		t.Fatalf("expected jti %q in claims, got %q", jti, claims.ID)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	signed, _, err := issuer.Mint(uuid.New(), "op")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	otherCfg := testJWTConfig()
	otherCfg.Secret = "different-secret"
	other, err := NewTokenIssuer(otherCfg)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	if _, err := other.ParseAccessToken(signed); err == nil {
		t.Fatal("expected signature mismatch error")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	issuer, err := NewTokenIssuer(cfg)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	signed, _, err := issuer.Mint(uuid.New(), "op")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	cfg.Issuer = "someone-else"
	other, err := NewTokenIssuer(cfg)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	if _, err := other.ParseAccessToken(signed); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestNewTokenIssuerValidatesConfig(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*config.JWTConfig)
	}{
		{"missing secret", func(c *config.JWTConfig) { c.Secret = "" }},
		{"missing issuer", func(c *config.JWTConfig) { c.Issuer = "" }},
		{"zero expiration", func(c *config.JWTConfig) { c.ExpirationMinutes = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testJWTConfig()
			tc.mut(&cfg)
			if _, err := NewTokenIssuer(cfg); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}
