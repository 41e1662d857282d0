package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/pagination"
)

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) (StoresPageDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
}

// Service exposes store operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input CreateStoreInput) (*StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	Update(ctx context.Context, actorID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, actorID, storeID uuid.UUID) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) (StoresPageDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	RequireOwnership(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

// CreateStoreInput captures the fields accepted when registering a store.
type CreateStoreInput struct {
	Name           string
	Address        string
	Latitude       *float64
	Longitude      *float64
	Phone          *string
	Introduction   *string
	OperatingHours *string
	Categories     []string
	Moods          []string
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name           *string
	Address        *string
	Latitude       *float64
	Longitude      *float64
	Phone          *string
	Introduction   *string
	OperatingHours *string
	Categories     *[]string
	Moods          *[]string
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input CreateStoreInput) (*StoreDTO, error) {
	if actorRole != enums.UserRoleOwner && actorRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner account required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	store, err := s.repo.Create(ctx, CreateStoreDTO{
		Name:           name,
		Address:        strings.TrimSpace(input.Address),
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Phone:          input.Phone,
		Introduction:   input.Introduction,
		OperatingHours: input.OperatingHours,
		Categories:     input.Categories,
		Moods:          input.Moods,
		OwnerID:        actorID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, actorID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.RequireOwnership(ctx, actorID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		store.Address = strings.TrimSpace(*input.Address)
	}
	if input.Latitude != nil {
		store.Latitude = cloneFloatPtr(input.Latitude)
	}
	if input.Longitude != nil {
		store.Longitude = cloneFloatPtr(input.Longitude)
	}
	if input.Phone != nil {
		store.Phone = cloneStringPtr(input.Phone)
	}
	if input.Introduction != nil {
		store.Introduction = cloneStringPtr(input.Introduction)
	}
	if input.OperatingHours != nil {
		store.OperatingHours = cloneStringPtr(input.OperatingHours)
	}
	if input.Categories != nil {
		store.Categories = pq.StringArray(append([]string{}, (*input.Categories)...))
	}
	if input.Moods != nil {
		store.Moods = pq.StringArray(append([]string{}, (*input.Moods)...))
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, actorID, storeID uuid.UUID) error {
	if _, err := s.RequireOwnership(ctx, actorID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (StoresPageDTO, error) {
	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return StoresPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return page, nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned stores")
	}
	items := make([]StoreDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}
	return items, nil
}

// RequireOwnership loads the store and verifies the actor owns it.
func (s *service) RequireOwnership(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store ownership required")
	}
	return store, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneFloatPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
