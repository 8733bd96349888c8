package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
)

func TestTokenService_GenerateParseRoundtrip(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)
	user := domain.User{ID: "u1", Name: "Ana", Email: "a@x.com", Verified: true}

	token, err := svc.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@x.com" || claims.Name != "Ana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected issued-at and expiry claims")
	}
	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != 24*time.Hour {
		t.Fatalf("expected 24h validity window, got %v", window)
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)
	now := time.Now().UTC()
	claims := Claims{
		UserID: "u1",
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "settleup",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Parse(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_RejectsTamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)
	other := NewTokenService("other-secret", 24*time.Hour)

	token, err := other.Generate(domain.User{ID: "u1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)
	now := time.Now().UTC()
	claims := Claims{
		UserID: "u1",
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Parse(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
}

func TestTokenService_RejectsEmptySecretAndToken(t *testing.T) {
	svc := NewTokenService("", 24*time.Hour)
	if _, err := svc.Generate(domain.User{ID: "u1"}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid with empty secret, got %v", err)
	}

	svc = NewTokenService("secret", 24*time.Hour)
	if _, err := svc.Parse(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}
	if _, err := svc.Parse("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage token, got %v", err)
	}
}
