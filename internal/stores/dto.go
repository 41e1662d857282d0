package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Introduction   *string   `json:"introduction,omitempty"`
	OperatingHours *string   `json:"operating_hours,omitempty"`
	Categories     []string  `json:"categories"`
	Moods          []string  `json:"moods"`
	OwnerID        uuid.UUID `json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateStoreDTO holds creation-time data for a new store.
type CreateStoreDTO struct {
	Name           string
	Address        string
	Latitude       *float64
	Longitude      *float64
	Phone          *string
	Introduction   *string
	OperatingHours *string
	Categories     []string
	Moods          []string
	OwnerID        uuid.UUID
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}

	return &StoreDTO{
		ID:             m.ID,
		Name:           m.Name,
		Address:        m.Address,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		Phone:          m.Phone,
		Introduction:   m.Introduction,
		OperatingHours: m.OperatingHours,
		Categories:     append([]string{}, m.Categories...),
		Moods:          append([]string{}, m.Moods...),
		OwnerID:        m.OwnerID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		Name:           c.Name,
		Address:        c.Address,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		Phone:          c.Phone,
		Introduction:   c.Introduction,
		OperatingHours: c.OperatingHours,
		Categories:     pq.StringArray(append([]string{}, c.Categories...)),
		Moods:          pq.StringArray(append([]string{}, c.Moods...)),
		OwnerID:        c.OwnerID,
	}
}
