package auth

import (
	"github.com/neardeal/neardeal-backend/internal/users"
)

// RegisterRequest captures the payload for creating a new account.
type RegisterRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Nickname   string  `json:"nickname" validate:"required"`
	Role       string  `json:"role" validate:"omitempty,oneof=student owner"`
	University *string `json:"university,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token and user produced by a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// RegisterResponse returns the freshly created account.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}
