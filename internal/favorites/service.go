package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/internal/stores"
	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type favoriteRepository interface {
	Add(ctx context.Context, userID, storeID uuid.UUID) error
	Remove(ctx context.Context, userID, storeID uuid.UUID) error
	Exists(ctx context.Context, userID, storeID uuid.UUID) (bool, error)
	ListStores(ctx context.Context, userID uuid.UUID) ([]models.Store, error)
}

type storeLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes favorite-store operations.
type Service interface {
	Toggle(ctx context.Context, userID, storeID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]stores.StoreDTO, error)
}

type service struct {
	repo   favoriteRepository
	stores storeLookup
}

// NewService builds a favorites service with the provided dependencies.
func NewService(repo favoriteRepository, storeRepo storeLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("favorite repository required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store lookup required")
	}
	return &service{repo: repo, stores: storeRepo}, nil
}

// Toggle flips the favorite flag and reports the new state.
func (s *service) Toggle(ctx context.Context, userID, storeID uuid.UUID) (bool, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	exists, err := s.repo.Exists(ctx, userID, storeID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, storeID); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
		}
		return false, nil
	}
	if err := s.repo.Add(ctx, userID, storeID); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return true, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]stores.StoreDTO, error) {
	records, err := s.repo.ListStores(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	items := make([]stores.StoreDTO, 0, len(records))
	for i := range records {
		items = append(items, *stores.FromModel(&records[i]))
	}
	return items, nil
}
