package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for both session and impersonation tokens.
// For impersonation tokens UserID is the impersonated tutor and
// ActorID the relationship manager who minted it; for session tokens
// ActorID is nil.
type Claims struct {
	UserID  uuid.UUID   `json:"uid"`
	Role    models.Role `json:"role"`
	ActorID *uuid.UUID  `json:"actor_id,omitempty"`
	jwt.RegisteredClaims
}

// Impersonated reports whether the token was minted on behalf of
// another user.
func (c *Claims) Impersonated() bool { return c.ActorID != nil }

// Mint signs a session token for user.
func Mint(secret string, user *models.User, ttl time.Duration) (string, error) {
	return sign(secret, &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// MintImpersonation signs a token letting actor (a relationship
// manager) act as tutor without ending their own session.
func MintImpersonation(secret string, actor, tutor *models.User, ttl time.Duration) (string, error) {
	actorID := actor.ID
	return sign(secret, &Claims{
		UserID:  tutor.ID,
		Role:    tutor.Role,
		ActorID: &actorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tutor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func sign(secret string, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify parses and validates a token produced by Mint or
// MintImpersonation.
func Verify(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
