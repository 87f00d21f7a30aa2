package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access token payload for back-office operators.
type Claims struct {
	UserID      uuid.UUID `json:"uid"`
	DisplayName string    `json:"name"`
	jwt.RegisteredClaims
}
