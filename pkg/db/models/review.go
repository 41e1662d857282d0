package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer review on a store. A row with ParentReviewID set is
// an owner reply and carries no rating.
type Review struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID        uuid.UUID  `gorm:"column:store_id;type:uuid;not null"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	ParentReviewID *uuid.UUID `gorm:"column:parent_review_id;type:uuid"`
	Content        string     `gorm:"column:content;not null"`
	Rating         *int       `gorm:"column:rating"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
