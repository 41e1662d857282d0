package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a menu entry on a store page.
type Item struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID          uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	Name             string    `gorm:"column:name;not null"`
	Price            int       `gorm:"column:price;not null"`
	Description      *string   `gorm:"column:description"`
	ImageURL         *string   `gorm:"column:image_url"`
	IsSoldOut        bool      `gorm:"column:is_sold_out;not null;default:false"`
	IsRepresentative bool      `gorm:"column:is_representative;not null;default:false"`
	IsHidden         bool      `gorm:"column:is_hidden;not null;default:false"`
	Position         *int      `gorm:"column:position"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
