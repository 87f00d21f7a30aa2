package auth

import "github.com/cargodesk/cargodesk-backend/internal/users"

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed access token together with the
// operator profile.
type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	User        users.UserView `json:"user"`
}
