package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// ItemDTO exposes menu item data in API responses.
type ItemDTO struct {
	ID               uuid.UUID `json:"id"`
	StoreID          uuid.UUID `json:"store_id"`
	Name             string    `json:"name"`
	Price            int       `json:"price"`
	Description      *string   `json:"description,omitempty"`
	ImageURL         *string   `json:"image_url,omitempty"`
	IsSoldOut        bool      `json:"is_sold_out"`
	IsRepresentative bool      `json:"is_representative"`
	IsHidden         bool      `json:"is_hidden"`
	Position         *int      `json:"position,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateItemDTO holds the fields needed to persist a menu item.
type CreateItemDTO struct {
	StoreID          uuid.UUID
	Name             string
	Price            int
	Description      *string
	ImageURL         *string
	IsRepresentative bool
	Position         *int
}

// FromModel maps the persisted item into a DTO.
func FromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}

	return &ItemDTO{
		ID:               m.ID,
		StoreID:          m.StoreID,
		Name:             m.Name,
		Price:            m.Price,
		Description:      m.Description,
		ImageURL:         m.ImageURL,
		IsSoldOut:        m.IsSoldOut,
		IsRepresentative: m.IsRepresentative,
		IsHidden:         m.IsHidden,
		Position:         m.Position,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateItemDTO) ToModel() *models.Item {
	return &models.Item{
		StoreID:          c.StoreID,
		Name:             c.Name,
		Price:            c.Price,
		Description:      c.Description,
		ImageURL:         c.ImageURL,
		IsRepresentative: c.IsRepresentative,
		Position:         c.Position,
	}
}
