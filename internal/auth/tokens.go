package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// Tokens issues and verifies HS256 signed JWTs.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	// injectable clock, for tests
	Now func() time.Time
}

func NewTokens(secret, issuer string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		Now:    time.Now,
	}, nil
}

func (t *Tokens) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id empty")
	}

	now := t.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) Parse(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
