package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := "0190c7e2-5f4c-7aaa-bbbb-0123456789ab"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, userID, duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.UserID != userID {
		t.Errorf("expected cached UserID %s, got %s", userID, token.UserID)
	}

	// Verify claims
	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != userID {
		t.Errorf("expected subject %s, got %s", userID, claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "id", time.Hour, "key"},
		{"empty user id", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "id", 0, "key"},
		{"empty key", "iss", "id", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issuer := "round-trip"
	userID := "user-42"
	key := "round-trip-key"

	generated, err := GenerateJWTToken(issuer, userID, time.Hour, key)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, key, issuer)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if parsed.UserID != userID {
		t.Errorf("expected UserID %s, got %s", userID, parsed.UserID)
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	generated, err := GenerateJWTToken("iss", "user-1", time.Hour, "right-key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err = ValidateAndParseJWTToken(generated.SignedString, "wrong-key", "iss"); err == nil {
		t.Error("expected signature verification error, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	generated, err := GenerateJWTToken("issuer-a", "user-1", time.Hour, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err = ValidateAndParseJWTToken(generated.SignedString, "key", "issuer-b"); err == nil {
		t.Error("expected issuer mismatch error, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	generated, err := GenerateJWTToken("iss", "user-1", time.Nanosecond, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err = ValidateAndParseJWTToken(generated.SignedString, "key", "iss"); err == nil {
		t.Error("expected expiration error, got nil")
	}
}
