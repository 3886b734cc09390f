// Package auth issues and verifies access tokens, handles candidate and admin login,
// and decides whether a blocked candidate may pass.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

// Claims is the payload of an access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal returns the caller the claims identify.
func (c *Claims) Principal() (model.Principal, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid token subject: %w", err)
	}
	return model.Principal{ID: id, Role: c.Role}, nil
}

// Verifier turns a bearer token into claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// JWTService issues and verifies HS256 access tokens.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTService creates a JWTService signing with secret.
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue signs an access token for p.
func (s *JWTService) Issue(p model.Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an access token.
func (s *JWTService) Verify(encoded string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(encoded, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Invalid token")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.NewError(apperror.CodeUnauthorized, "Access token expired", err)
		}
		return nil, apperror.NewError(apperror.CodeUnauthorized, "Invalid access token", err)
	}
	if !token.Valid {
		return nil, apperror.NewError(apperror.CodeUnauthorized, "Invalid access token", nil)
	}
	if claims.Issuer != s.issuer {
		return nil, apperror.NewError(apperror.CodeUnauthorized, "Invalid token issuer", nil)
	}
	return claims, nil
}
