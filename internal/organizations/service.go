package organizations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type organizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	List(ctx context.Context, university string) ([]models.Organization, error)
	AddMember(ctx context.Context, orgID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error)
}

// OrganizationDTO exposes organization data in API responses.
type OrganizationDTO struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	Category   enums.OrganizationCategory `json:"category"`
	University string                     `json:"university"`
	ExpiresAt  *time.Time                 `json:"expires_at,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// Service exposes organization membership operations.
type Service interface {
	List(ctx context.Context, university string) ([]OrganizationDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]OrganizationDTO, error)
	Join(ctx context.Context, orgID, userID uuid.UUID, now time.Time) error
	Leave(ctx context.Context, orgID, userID uuid.UUID) error
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
}

type service struct {
	repo organizationRepository
}

// NewService builds an organization service with the provided repository.
func NewService(repo organizationRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("organization repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, university string) ([]OrganizationDTO, error) {
	records, err := s.repo.List(ctx, university)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list organizations")
	}
	return toDTOs(records), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]OrganizationDTO, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user organizations")
	}
	return toDTOs(records), nil
}

func (s *service) Join(ctx context.Context, orgID, userID uuid.UUID, now time.Time) error {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}
	if org.ExpiresAt != nil && now.After(*org.ExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeExpired, "organization membership window closed")
	}

	if err := s.repo.AddMember(ctx, orgID, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "join organization")
	}
	return nil
}

func (s *service) Leave(ctx context.Context, orgID, userID uuid.UUID) error {
	if err := s.repo.RemoveMember(ctx, orgID, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "leave organization")
	}
	return nil
}

func (s *service) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	member, err := s.repo.IsMember(ctx, orgID, userID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	return member, nil
}

func toDTOs(records []models.Organization) []OrganizationDTO {
	items := make([]OrganizationDTO, 0, len(records))
	for _, record := range records {
		items = append(items, OrganizationDTO{
			ID:         record.ID,
			Name:       record.Name,
			Category:   record.Category,
			University: record.University,
			ExpiresAt:  record.ExpiresAt,
			CreatedAt:  record.CreatedAt,
		})
	}
	return items
}
