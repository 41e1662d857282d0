package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// ListFilter narrows the event listing.
type ListFilter struct {
	Type string
	// From/To bound the event window; zero values mean unbounded.
	From time.Time
	To   time.Time
}

// Repository encapsulates event persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an events repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event and returns the persisted model.
func (r *Repository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// FindByID loads an event by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update persists the full event row.
func (r *Repository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes the event.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Event{}).Error
}

// List returns events matching the filter, soonest-first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.Type != "" {
		query = query.Where("? = ANY (event_types)", filter.Type)
	}
	if !filter.From.IsZero() {
		query = query.Where("ends_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("starts_at <= ?", filter.To)
	}

	var records []models.Event
	if err := query.Order("starts_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
