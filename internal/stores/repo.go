package stores

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/pagination"
)

// ListFilter narrows the store listing.
type ListFilter struct {
	Category string
	Search   string
}

// StoresPageDTO is a cursor page of stores.
type StoresPageDTO struct {
	Stores     []StoreDTO `json:"stores"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// Repository encapsulates store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stores repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new store and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Update persists the full store row.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes the store; items, reviews and coupons cascade in Postgres.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Store{}).Error
}

// List returns a cursor page of stores matching the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) (StoresPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return StoresPageDTO{}, err
	}

	query := r.db.WithContext(ctx).Model(&models.Store{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("? = ANY (categories)", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Store
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&records).Error; err != nil {
		return StoresPageDTO{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	items := make([]StoreDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}

	return StoresPageDTO{Stores: items, NextCursor: nextCursor}, nil
}

// ListByOwner returns every store owned by the given user.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var records []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
