// Package token issues and validates the JWT bearer tokens used by the API.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tradefair/src/core/domain"
)

// Claims defines the custom claims carried by issued tokens.
type Claims struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and validates HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer with the given signing secret and token lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Generate creates a signed token for a user. Implements ports.TokenIssuer.
func (i *Issuer) Generate(userID int64, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   domain.Role(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Validate parses a token string and returns the actor it represents.
func (i *Issuer) Validate(tokenString string) (domain.Actor, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Guest(), domain.NewUnauthorizedError("invalid token")
	}
	if !tok.Valid {
		return domain.Guest(), domain.NewUnauthorizedError("invalid token")
	}
	return domain.Actor{UserID: claims.UserID, Role: claims.Role}, nil
}
