package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store represents a merchant around campus.
type Store struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	Address        string         `gorm:"column:address;not null"`
	Latitude       *float64       `gorm:"column:latitude"`
	Longitude      *float64       `gorm:"column:longitude"`
	Phone          *string        `gorm:"column:phone"`
	Introduction   *string        `gorm:"column:introduction"`
	OperatingHours *string        `gorm:"column:operating_hours"`
	Categories     pq.StringArray `gorm:"column:categories;type:text[]"`
	Moods          pq.StringArray `gorm:"column:moods;type:text[]"`
	OwnerID        uuid.UUID      `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
