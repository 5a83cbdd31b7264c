package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	username := "alice"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, username, duration, key, "")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Subject != username {
		t.Errorf("expected subject %s, got %s", username, token.Subject)
	}

	// Verify claims
	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != username {
		t.Errorf("expected subject %s, got %s", username, claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		username string
		key      string
	}{
		{"empty issuer", "", "alice", "key"},
		{"empty username", "iss", "", "key"},
		{"empty key", "iss", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.username, time.Hour, tt.key, "")
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestGenerateJWTToken_HonorsConfiguredAlgorithm(t *testing.T) {
	token, err := GenerateJWTToken("iss", "alice", time.Hour, "key", "HS512")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if alg := token.Token.Method.Alg(); alg != "HS512" {
		t.Errorf("expected alg HS512, got %s", alg)
	}
}

func TestGenerateJWTToken_UnsupportedAlgorithm(t *testing.T) {
	for _, algorithm := range []string{"RS256", "ES256", "none", "HS1024"} {
		t.Run(algorithm, func(t *testing.T) {
			if _, err := GenerateJWTToken("iss", "alice", time.Hour, "key", algorithm); err == nil {
				t.Error("expected error for non-HMAC algorithm, got nil")
			}
		})
	}
}

func TestGenerateJWTToken_ZeroDurationFallsBackToDefault(t *testing.T) {
	token, err := GenerateJWTToken("iss", "alice", 0, "key", "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != DefaultTokenDuration {
		t.Errorf("expected lifetime %v, got %v", DefaultTokenDuration, lifetime)
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	generated, err := GenerateJWTToken(issuer, "alice", time.Hour, key, "")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, key, issuer, "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.Subject != "alice" {
		t.Errorf("expected subject alice, got %s", parsed.Subject)
	}
}

func TestValidateAndParseJWTToken_AlgorithmMustMatchConfigured(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	hs512Token, err := GenerateJWTToken(issuer, "alice", time.Hour, key, "HS512")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(hs512Token.SignedString, key, issuer, "HS512")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.Subject != "alice" {
		t.Errorf("expected subject alice, got %s", parsed.Subject)
	}

	// a token signed under a different HMAC variant must not pass
	hs256Token, err := GenerateJWTToken(issuer, "alice", time.Hour, key, "HS256")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := ValidateAndParseJWTToken(hs256Token.SignedString, key, issuer, "HS512"); err == nil {
		t.Error("expected validation error for mismatched algorithm, got nil")
	}
}

func TestValidateAndParseJWTToken_Invalid(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	generated, err := GenerateJWTToken(issuer, "alice", time.Hour, key, "")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	expired, err := GenerateJWTToken(issuer, "alice", -time.Minute, key, "")
	if err != nil {
		t.Fatalf("failed to generate expired token: %v", err)
	}

	tests := []struct {
		name        string
		tokenString string
		key         string
		issuer      string
	}{
		{"garbage token", "not.a.token", key, issuer},
		{"wrong sign key", generated.SignedString, "other-key", issuer},
		{"wrong issuer", generated.SignedString, key, "other-issuer"},
		{"expired token", expired.SignedString, key, issuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAndParseJWTToken(tt.tokenString, tt.key, tt.issuer, ""); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"surrounding whitespace", "  Bearer abc.def.ghi  ", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", false},
		{"wrong scheme", "Basic abc.def.ghi", "", true},
		{"scheme only", "Bearer", "", true},
		{"empty token", "Bearer ", "", true},
		{"empty header", "", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
