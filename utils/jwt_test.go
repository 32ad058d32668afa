package utils

import (
	"testing"
	"time"

	"schedly/config"

	"github.com/golang-jwt/jwt"
)

func TestTokenLifecycle(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"
	secretKey = nil // force re-resolution from config

	token, err := GenerateToken("user-1", "u@example.com", "CLIENT", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := ValidateToken(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("ValidateToken: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["sub"] != "user-1" || claims["role"] != "CLIENT" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"
	secretKey = nil

	token, err := GenerateToken("user-1", "u@example.com", "CLIENT", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Error("expired token must fail validation")
	}
}

func TestHashTokenStable(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Error("hash must be deterministic")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Error("different tokens must hash differently")
	}
	if len(HashToken("abc")) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(HashToken("abc")))
	}
}
