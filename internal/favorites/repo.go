package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// Repository encapsulates favorite-store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add marks a store as favorite, ignoring duplicates.
func (r *Repository) Add(ctx context.Context, userID, storeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO favorites (user_id, store_id) VALUES (?, ?) ON CONFLICT (user_id, store_id) DO NOTHING`, userID, storeID).
		Error
}

// Remove drops the favorite if present.
func (r *Repository) Remove(ctx context.Context, userID, storeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&models.Favorite{}).
		Error
}

// Exists reports whether the user already favorited the store.
func (r *Repository) Exists(ctx context.Context, userID, storeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListStores returns the stores the user favorited, newest first.
func (r *Repository) ListStores(ctx context.Context, userID uuid.UUID) ([]models.Store, error) {
	var records []models.Store
	if err := r.db.WithContext(ctx).
		Table("stores s").
		Select("s.*").
		Joins("JOIN favorites f ON f.store_id = s.id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC").
		Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
