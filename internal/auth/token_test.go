package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "HS256", time.Hour)

	token, exp, err := tm.GenerateToken("alice", []domain.Role{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != domain.RoleUser || claims.Roles[1] != domain.RoleAdmin {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", "HS256", time.Millisecond)

	token, _, err := tm.GenerateToken("alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := tm.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "HS256", time.Hour)
	verifier := NewTokenManager("secret-b", "HS256", time.Hour)

	token, _, err := issuer.GenerateToken("alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestTokenManager_WrongAlgorithm(t *testing.T) {
	tm := NewTokenManager("secret", "HS256", time.Hour)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := tm.ParseToken(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for unexpected algorithm, got %v", err)
	}
}

func TestTokenManager_MissingSubject(t *testing.T) {
	tm := NewTokenManager("secret", "HS256", time.Hour)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := anonymous.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := tm.ParseToken(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("secret", "HS256", time.Hour)
	if _, err := tm.ParseToken("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
