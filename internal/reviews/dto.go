package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// ReviewDTO exposes review data in API responses.
type ReviewDTO struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"store_id"`
	UserID         uuid.UUID  `json:"user_id"`
	ParentReviewID *uuid.UUID `json:"parent_review_id,omitempty"`
	Content        string     `json:"content"`
	Rating         *int       `json:"rating,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FromModel maps the persisted review into a DTO.
func FromModel(m *models.Review) *ReviewDTO {
	if m == nil {
		return nil
	}

	return &ReviewDTO{
		ID:             m.ID,
		StoreID:        m.StoreID,
		UserID:         m.UserID,
		ParentReviewID: m.ParentReviewID,
		Content:        m.Content,
		Rating:         m.Rating,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
