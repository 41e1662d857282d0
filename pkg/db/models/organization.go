package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// Organization is a campus affiliation (college, department, club) that
// partnership coupons can target.
type Organization struct {
	ID         uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string                     `gorm:"column:name;not null"`
	Category   enums.OrganizationCategory `gorm:"column:category;type:organization_category;not null"`
	University string                     `gorm:"column:university;not null"`
	ExpiresAt  *time.Time                 `gorm:"column:expires_at"`
	CreatedAt  time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// UserOrganization links a user to an organization they belong to.
type UserOrganization struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_org"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_user_org"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
