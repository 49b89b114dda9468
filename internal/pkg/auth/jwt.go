// Package auth validates bearer tokens issued by the external identity
// provider. The backend never issues sessions itself; it only checks the
// shared-secret HS256 signature and lifts the student id into the request
// context.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

// JWTConfig defines token validation settings
type JWTConfig struct {
	SecretKey   string
	TokenIssuer string
}

// JWTService handles JWT validation
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// Claims defines the token content shared with the identity provider
type Claims struct {
	StudentID uuid.UUID `json:"studentId"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}

// ValidateToken parses and validates a token, returning its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	if s.config.TokenIssuer != "" {
		issuer, err := claims.GetIssuer()
		if err != nil || issuer != s.config.TokenIssuer {
			return nil, apperrors.ErrTokenInvalid
		}
	}

	if claims.StudentID == uuid.Nil {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

// SignToken creates a token for the given student. Production tokens come
// from the identity provider; this exists for local development and tests.
func (s *JWTService) SignToken(studentID uuid.UUID, email string, ttl time.Duration) (string, error) {
	claims := &Claims{
		StudentID: studentID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.TokenIssuer,
			Subject:   studentID.String(),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractBearerToken extracts the token from an Authorization header value
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrInvalidFormat
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidFormat
	}

	return parts[1], nil
}
