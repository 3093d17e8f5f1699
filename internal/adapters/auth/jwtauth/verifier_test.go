package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("s3cret")

	tok, err := v.Issue("user-1", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	c, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if c.UserID != "user-1" || c.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestVerifier_RejectsWrongSecret(t *testing.T) {
	tok, _ := NewVerifier("one").Issue("user-1", "", time.Hour)

	if _, err := NewVerifier("two").Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected error for token signed with another secret")
	}
}

func TestVerifier_RejectsExpired(t *testing.T) {
	v := NewVerifier("s3cret")
	issuedAt := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return issuedAt }

	tok, err := v.Issue("user-1", "", time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	v.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = v.Verify(context.Background(), tok)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifier_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := NewVerifier("s3cret").Verify(context.Background(), s); err == nil {
		t.Fatalf("expected error for alg=none")
	}
}

func TestVerifier_NotConfigured(t *testing.T) {
	if _, err := NewVerifier("  ").Verify(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewVerifier("s").Verify(context.Background(), " "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestVerifier_RequiresSubject(t *testing.T) {
	v := NewVerifier("s3cret")
	if _, err := v.Issue(" ", "", time.Hour); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}
