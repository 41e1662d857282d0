package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a store a user bookmarked.
type Favorite struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_store_favorite"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_user_store_favorite"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
