package items

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// Repository encapsulates menu item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an items repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new item and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateItemDTO) (*models.Item, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an item by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update persists the full item row.
func (r *Repository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the item.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Item{}).Error
}

// ListByStore returns a store's menu ordered by position then recency.
// Hidden items are only included when includeHidden is set.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, includeHidden bool) ([]models.Item, error) {
	query := r.db.WithContext(ctx).
		Where("store_id = ?", storeID)
	if !includeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	var records []models.Item
	if err := query.
		Order("position ASC NULLS LAST").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
