package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"careerbridge/internal/models"
)

var (
	// ErrInvalidToken is returned when a token fails parsing or signature checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is well-formed but expired.
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the JWT payload for access tokens. The role claim lets
// middleware authorize requests without a database round trip.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken signs a short-lived access token for the given user.
func NewAccessToken(secret string, ttl time.Duration, userID uuid.UUID, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates the token signature and expiry and returns
// the user ID and role embedded in it.
func ParseAccessToken(secret, tokenString string) (uuid.UUID, models.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", ErrExpiredToken
		}
		return uuid.Nil, "", ErrInvalidToken
	}
	if !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	role := models.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", ErrInvalidToken
	}
	return userID, role, nil
}
