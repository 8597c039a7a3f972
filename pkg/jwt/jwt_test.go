package jwt

import (
	"testing"
	"time"

	"clinic-scheduler/config"

	"github.com/google/uuid"
)

func testService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       secret,
		AccessExpiry: 15 * time.Minute,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := testService("test-secret")
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "doc@example.com", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if tokenID == "" {
		t.Fatal("GenerateAccessToken() returned empty token id")
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "doc@example.com" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "doc@example.com")
	}
	if claims.RoleID != 2 {
		t.Errorf("claims.RoleID = %d, want 2", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("claims.TokenType = %q, want %q", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("claims.TokenID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := testService("secret-a").GenerateAccessToken(uuid.New(), "a@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := testService("secret-b").ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := s.GenerateAccessToken(uuid.New(), "a@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := s.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := testService("test-secret").ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted a malformed token")
	}
}
