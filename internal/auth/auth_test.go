package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhisek/lessonloop/internal/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func newTokens(t *testing.T, now *time.Time) *Tokens {
	t.Helper()
	tk, err := New(config.AuthConfig{JWTSecret: secret, TokenLifetime: time.Hour})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	tk.now = func() time.Time { return *now }
	return tk
}

func TestNewRejectsShortSecret(t *testing.T) {
	if _, err := New(config.AuthConfig{JWTSecret: "short", TokenLifetime: time.Hour}); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestIssueAndValidate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tk := newTokens(t, &now)

	token, exp, err := tk.Issue("learner-1", "ada")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Errorf("expiry = %v, want %v", exp, now.Add(time.Hour))
	}

	c, err := tk.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if c.LearnerID != "learner-1" || c.Username != "ada" {
		t.Errorf("claims = %+v", c)
	}
}

func TestValidateExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tk := newTokens(t, &now)
	token, _, err := tk.Issue("learner-1", "ada")
	if err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := tk.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tk := newTokens(t, &now)
	token, _, err := tk.Issue("learner-1", "ada")
	if err != nil {
		t.Fatal(err)
	}

	other, err := New(config.AuthConfig{JWTSecret: strings.Repeat("x", 32), TokenLifetime: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	other.now = tk.now

	tests := []struct {
		name  string
		tk    *Tokens
		token string
		want  error
	}{
		{"empty", tk, "", ErrMissingToken},
		{"garbage", tk, "not.a.token", ErrInvalidToken},
		{"other secret", other, token, ErrInvalidToken},
		{"none alg", tk, unsigned(t, now), ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tk.Validate(tt.token); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func unsigned(t *testing.T, now time.Time) string {
	t.Helper()
	claims := tokenClaims{
		LearnerID: "learner-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
