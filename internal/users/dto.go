package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	Nickname   string         `json:"nickname"`
	Role       enums.UserRole `json:"role"`
	University *string        `json:"university,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Nickname     string
	Role         enums.UserRole
	University   *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		Nickname:   u.Nickname,
		Role:       u.Role,
		University: u.University,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleStudent
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Nickname:     c.Nickname,
		Role:         role,
		University:   c.University,
	}
}
