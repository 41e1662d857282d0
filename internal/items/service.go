package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type itemRepository interface {
	Create(ctx context.Context, dto CreateItemDTO) (*models.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID, includeHidden bool) ([]models.Item, error)
}

type ownershipChecker interface {
	RequireOwnership(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error)
}

// Service exposes menu item operations.
type Service interface {
	Create(ctx context.Context, actorID, storeID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, actorID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, actorID, itemID uuid.UUID) error
	ListByStore(ctx context.Context, actorID *uuid.UUID, storeID uuid.UUID) ([]ItemDTO, error)
}

type service struct {
	repo   itemRepository
	stores ownershipChecker
}

// NewService builds an item service with the provided dependencies.
func NewService(repo itemRepository, stores ownershipChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store ownership checker required")
	}
	return &service{repo: repo, stores: stores}, nil
}

// CreateItemInput captures the fields accepted when adding a menu item.
type CreateItemInput struct {
	Name             string
	Price            int
	Description      *string
	ImageURL         *string
	IsRepresentative bool
	Position         *int
}

// UpdateItemInput captures the allowed item fields for mutation.
type UpdateItemInput struct {
	Name             *string
	Price            *int
	Description      *string
	ImageURL         *string
	IsSoldOut        *bool
	IsRepresentative *bool
	IsHidden         *bool
	Position         *int
}

func (s *service) Create(ctx context.Context, actorID, storeID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	if _, err := s.stores.RequireOwnership(ctx, actorID, storeID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	item, err := s.repo.Create(ctx, CreateItemDTO{
		StoreID:          storeID,
		Name:             name,
		Price:            input.Price,
		Description:      input.Description,
		ImageURL:         input.ImageURL,
		IsRepresentative: input.IsRepresentative,
		Position:         input.Position,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return FromModel(item), nil
}

func (s *service) Update(ctx context.Context, actorID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.loadOwned(ctx, actorID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		item.Name = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.IsSoldOut != nil {
		item.IsSoldOut = *input.IsSoldOut
	}
	if input.IsRepresentative != nil {
		item.IsRepresentative = *input.IsRepresentative
	}
	if input.IsHidden != nil {
		item.IsHidden = *input.IsHidden
	}
	if input.Position != nil {
		item.Position = input.Position
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	return FromModel(item), nil
}

func (s *service) Delete(ctx context.Context, actorID, itemID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actorID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}

// ListByStore returns the store menu. The owner sees hidden items too.
func (s *service) ListByStore(ctx context.Context, actorID *uuid.UUID, storeID uuid.UUID) ([]ItemDTO, error) {
	includeHidden := false
	if actorID != nil {
		if _, err := s.stores.RequireOwnership(ctx, *actorID, storeID); err == nil {
			includeHidden = true
		}
	}

	records, err := s.repo.ListByStore(ctx, storeID, includeHidden)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	items := make([]ItemDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}
	return items, nil
}

func (s *service) loadOwned(ctx context.Context, actorID, itemID uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if _, err := s.stores.RequireOwnership(ctx, actorID, item.StoreID); err != nil {
		return nil, err
	}
	return item, nil
}
