package items

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

func TestServiceCreateRejectsNegativePrice(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc := buildTestService(t, &stubItemRepo{}, &stubOwnership{ownerID: ownerID, storeID: storeID})

	_, err := svc.Create(context.Background(), ownerID, storeID, CreateItemInput{
		Name:  "Americano",
		Price: -100,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateRequiresOwnership(t *testing.T) {
	storeID := uuid.New()
	svc := buildTestService(t, &stubItemRepo{}, &stubOwnership{ownerID: uuid.New(), storeID: storeID})

	_, err := svc.Create(context.Background(), uuid.New(), storeID, CreateItemInput{
		Name:  "Americano",
		Price: 3000,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestServiceUpdateTogglesSoldOut(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	item := &models.Item{ID: uuid.New(), StoreID: storeID, Name: "Americano", Price: 3000}
	repo := &stubItemRepo{item: item}
	svc := buildTestService(t, repo, &stubOwnership{ownerID: ownerID, storeID: storeID})

	soldOut := true
	dto, err := svc.Update(context.Background(), ownerID, item.ID, UpdateItemInput{IsSoldOut: &soldOut})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !dto.IsSoldOut {
		t.Fatalf("expected sold-out flag to be set")
	}
	if dto.Price != 3000 {
		t.Fatalf("expected price untouched, got %d", dto.Price)
	}
}

func TestServiceListHidesHiddenItemsFromCustomers(t *testing.T) {
	storeID := uuid.New()
	repo := &stubItemRepo{
		visible: []models.Item{{ID: uuid.New(), StoreID: storeID, Name: "Americano"}},
		hidden:  []models.Item{{ID: uuid.New(), StoreID: storeID, Name: "Secret Menu", IsHidden: true}},
	}
	svc := buildTestService(t, repo, &stubOwnership{ownerID: uuid.New(), storeID: storeID})

	listed, err := svc.ListByStore(context.Background(), nil, storeID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Americano" {
		t.Fatalf("expected only visible items, got %+v", listed)
	}
}

func buildTestService(t *testing.T, repo itemRepository, stores ownershipChecker) Service {
	t.Helper()
	svc, err := NewService(repo, stores)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubItemRepo struct {
	item    *models.Item
	visible []models.Item
	hidden  []models.Item
}

func (s *stubItemRepo) Create(ctx context.Context, dto CreateItemDTO) (*models.Item, error) {
	item := dto.ToModel()
	item.ID = uuid.New()
	s.item = item
	return item, nil
}

func (s *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.item == nil || s.item.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.item
	return &cpy, nil
}

func (s *stubItemRepo) Update(ctx context.Context, item *models.Item) error {
	s.item = item
	return nil
}

func (s *stubItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.item = nil
	return nil
}

func (s *stubItemRepo) ListByStore(ctx context.Context, storeID uuid.UUID, includeHidden bool) ([]models.Item, error) {
	records := append([]models.Item{}, s.visible...)
	if includeHidden {
		records = append(records, s.hidden...)
	}
	return records, nil
}

type stubOwnership struct {
	ownerID uuid.UUID
	storeID uuid.UUID
}

func (s *stubOwnership) RequireOwnership(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error) {
	if storeID != s.storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if actorID != s.ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store ownership required")
	}
	return &models.Store{ID: storeID, OwnerID: actorID}, nil
}
