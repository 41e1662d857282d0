package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// Event is a campus happening shown on the map.
type Event struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string            `gorm:"column:title;not null"`
	Description *string           `gorm:"column:description"`
	EventTypes  pq.StringArray    `gorm:"column:event_types;type:text[]"`
	Latitude    *float64          `gorm:"column:latitude"`
	Longitude   *float64          `gorm:"column:longitude"`
	StartsAt    time.Time         `gorm:"column:starts_at;not null"`
	EndsAt      time.Time         `gorm:"column:ends_at;not null"`
	Status      enums.EventStatus `gorm:"column:status;type:event_status;not null;default:'upcoming'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
