package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/b4uspend/b4uspend-api/config"
)

// Token types carried in the signed payload. Every authenticated endpoint
// requires an access token; refresh tokens are only valid at /auth/refresh.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines JWT claims used in the application.
type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived access token for the user.
func GenerateAccessToken(cfg config.AppConfig, userID uint) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute)
	return signToken(cfg, userID, TokenTypeAccess, expiresAt, "")
}

// GenerateRefreshToken issues a long-lived refresh token with a unique JTI so
// two tokens for the same user never collide.
func GenerateRefreshToken(cfg config.AppConfig, userID uint) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.RefreshTokenExpireDays) * 24 * time.Hour)
	return signToken(cfg, userID, TokenTypeRefresh, expiresAt, uuid.NewString())
}

func signToken(cfg config.AppConfig, userID uint, tokenType string, expiresAt time.Time, jti string) (string, time.Time, error) {
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(cfg config.AppConfig, tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
