package organizations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
)

// Repository encapsulates organization and membership persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an organizations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an organization by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List returns organizations, optionally scoped to a university.
func (r *Repository) List(ctx context.Context, university string) ([]models.Organization, error) {
	query := r.db.WithContext(ctx).Model(&models.Organization{})
	if university != "" {
		query = query.Where("university = ?", university)
	}

	var records []models.Organization
	if err := query.Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// AddMember joins a user to an organization, ignoring duplicates.
func (r *Repository) AddMember(ctx context.Context, orgID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO user_organizations (user_id, organization_id) VALUES (?, ?) ON CONFLICT (user_id, organization_id) DO NOTHING`, userID, orgID).
		Error
}

// RemoveMember drops the user's membership if present.
func (r *Repository) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.UserOrganization{}).
		Error
}

// IsMember reports whether the user belongs to the organization.
func (r *Repository) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserOrganization{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the organizations a user belongs to.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error) {
	var records []models.Organization
	if err := r.db.WithContext(ctx).
		Table("organizations o").
		Select("o.*").
		Joins("JOIN user_organizations uo ON uo.organization_id = o.id").
		Where("uo.user_id = ?", userID).
		Order("o.name ASC").
		Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
