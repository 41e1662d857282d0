package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/pagination"
)

func TestServiceCreateRequiresOwnerRole(t *testing.T) {
	svc := buildTestService(t, &stubStoreRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), enums.UserRoleStudent, CreateStoreInput{
		Name:    "Campus Cafe",
		Address: "1 University Way",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestServiceCreateSetsOwner(t *testing.T) {
	repo := &stubStoreRepo{}
	svc := buildTestService(t, repo)
	ownerID := uuid.New()

	dto, err := svc.Create(context.Background(), ownerID, enums.UserRoleOwner, CreateStoreInput{
		Name:       "  Campus Cafe  ",
		Address:    "1 University Way",
		Categories: []string{"cafe"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.OwnerID != ownerID {
		t.Fatalf("expected owner %s, got %s", ownerID, dto.OwnerID)
	}
	if dto.Name != "Campus Cafe" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
}

func TestServiceUpdateRejectsNonOwner(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Name: "Campus Cafe", OwnerID: uuid.New()}
	svc := buildTestService(t, &stubStoreRepo{store: store})

	newName := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), store.ID, UpdateStoreInput{Name: &newName})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestServiceUpdateAppliesPartialFields(t *testing.T) {
	ownerID := uuid.New()
	phone := "555-0100"
	store := &models.Store{ID: uuid.New(), Name: "Campus Cafe", Address: "1 University Way", Phone: &phone, OwnerID: ownerID}
	repo := &stubStoreRepo{store: store}
	svc := buildTestService(t, repo)

	newName := "Late Night Cafe"
	dto, err := svc.Update(context.Background(), ownerID, store.ID, UpdateStoreInput{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if dto.Name != "Late Night Cafe" {
		t.Fatalf("expected updated name, got %q", dto.Name)
	}
	if dto.Phone == nil || *dto.Phone != "555-0100" {
		t.Fatalf("expected untouched phone, got %v", dto.Phone)
	}
	if !repo.updated {
		t.Fatalf("expected repo update to be called")
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc := buildTestService(t, &stubStoreRepo{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func buildTestService(t *testing.T, repo storeRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubStoreRepo struct {
	store   *models.Store
	updated bool
}

func (s *stubStoreRepo) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	store.ID = uuid.New()
	s.store = store
	return store, nil
}

func (s *stubStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if s.store == nil || s.store.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.store
	return &cpy, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error {
	s.store = store
	s.updated = true
	return nil
}

func (s *stubStoreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.store = nil
	return nil
}

func (s *stubStoreRepo) List(ctx context.Context, filter ListFilter, params pagination.Params) (StoresPageDTO, error) {
	return StoresPageDTO{}, nil
}

func (s *stubStoreRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	if s.store == nil || s.store.OwnerID != ownerID {
		return nil, nil
	}
	return []models.Store{*s.store}, nil
}
