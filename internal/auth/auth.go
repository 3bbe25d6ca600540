// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth provides password hashing and signed session tokens.
// Tokens are stateless HS256 JWTs carrying the user's id and name;
// nothing is persisted server-side.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued session token remains valid.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail signature, format,
// or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller derived from a valid token.
type Identity struct {
	ID   uuid.UUID
	Name string
}

// Claims is the JWT payload for a session token.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// Service issues and validates session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New creates a token service signing with the given secret.
func New(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: TokenTTL}
}

// IssueToken creates a signed token for the user, expiring in 7 days.
func (s *Service) IssueToken(userID uuid.UUID, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the caller identity.
func (s *Service) ParseToken(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: claims.UserID, Name: claims.Name}, nil
}

// HashPassword returns a bcrypt hash of the password with a per-call
// random salt at the default cost (10 rounds).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
