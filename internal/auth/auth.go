// Package auth issues and validates the bearer tokens the API accepts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abhisek/lessonloop/internal/config"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and wrong
	// signing methods.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken is returned when no bearer token was sent.
	ErrMissingToken = errors.New("authentication token is missing")
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

const issuer = "lessonloop"

// Claims identifies the learner a token was issued to.
type Claims struct {
	LearnerID string    `json:"lid"`
	Username  string    `json:"usr"`
	ExpiresAt time.Time `json:"-"`
}

type tokenClaims struct {
	LearnerID string `json:"lid"`
	Username  string `json:"usr"`
	jwt.RegisteredClaims
}

// Tokens signs learner tokens with HMAC-SHA256.
type Tokens struct {
	key       []byte
	lifetime  time.Duration
	clockSkew time.Duration
	now       func() time.Time
}

// New creates a token service from the auth configuration.
func New(cfg config.AuthConfig) (*Tokens, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	return &Tokens{
		key:       []byte(cfg.JWTSecret),
		lifetime:  cfg.TokenLifetime,
		clockSkew: time.Minute,
		now:       time.Now,
	}, nil
}

// Issue returns a signed token for a learner.
func (t *Tokens) Issue(learnerID, username string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.lifetime)
	claims := tokenClaims{
		LearnerID: learnerID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   learnerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Validate parses a token and returns its claims.
func (t *Tokens) Validate(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	now := t.now()
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{},
		func(tok *jwt.Token) (any, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
			}
			return t.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(t.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	c, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || c.LearnerID == "" {
		return nil, ErrInvalidToken
	}
	out := &Claims{LearnerID: c.LearnerID, Username: c.Username}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
