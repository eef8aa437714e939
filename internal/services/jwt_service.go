// Package services holds the business logic between handlers and stores.
package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Aradhik11/task-management-api/internal/config"
	"github.com/Aradhik11/task-management-api/internal/models"
)

// JWTService signs and verifies the stateless bearer tokens.
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

// tokenClaims is the wire form of the identity embedded in a token.
type tokenClaims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService creates a JWTService from the loaded configuration. Config
// loading already guarantees a non-empty secret.
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret:    []byte(cfg.JWTSecret),
		expiresIn: cfg.JWTExpiresIn,
	}
}

// GenerateToken issues a signed HS256 token carrying the user's identity,
// valid for the configured lifetime.
func (s *JWTService) GenerateToken(id uint, email, role string) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		ID:    id,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiry and returns the embedded
// identity. Errors are returned as-is so callers can distinguish expired
// from malformed tokens.
func (s *JWTService) ValidateToken(tokenString string) (*models.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &models.AuthClaims{
		UserID: claims.ID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
