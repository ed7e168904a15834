package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newService()
	userID := uuid.New()

	token, err := s.GenerateAccessToken(userID, "ada@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Email != "ada@example.com" {
		t.Fatalf("claims wrong: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess || s.IsRefreshToken(claims) {
		t.Fatalf("token type wrong: %q", claims.TokenType)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := newService()

	token, err := s.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !s.IsRefreshToken(claims) {
		t.Fatal("expected a refresh token")
	}
	if claims.Email != "" {
		t.Fatalf("refresh token must not carry an email, got %q", claims.Email)
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	s := newService()
	other := NewHMACService("other-access", "other-refresh", time.Minute, time.Hour)

	token, err := other.GenerateAccessToken(uuid.New(), "x@y.dev")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateReportsExpiry(t *testing.T) {
	s := newService()
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := s.GenerateAccessToken(uuid.New(), "x@y.dev")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = time.Now
	if _, err := s.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	s := newService()
	if _, err := s.ValidateToken("definitely.not.a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
