package favorites

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

func TestServiceToggleUnknownStore(t *testing.T) {
	svc := buildTestService(t, &stubFavoriteRepo{}, &stubStoreLookup{})

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceToggleFlipsState(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Name: "Campus Cafe"}
	repo := &stubFavoriteRepo{}
	svc := buildTestService(t, repo, &stubStoreLookup{store: store})
	userID := uuid.New()

	on, err := svc.Toggle(context.Background(), userID, store.ID)
	if err != nil || !on {
		t.Fatalf("expected favorite on, got on=%v err=%v", on, err)
	}

	on, err = svc.Toggle(context.Background(), userID, store.ID)
	if err != nil || on {
		t.Fatalf("expected favorite off, got on=%v err=%v", on, err)
	}
}

func buildTestService(t *testing.T, repo favoriteRepository, stores storeLookup) Service {
	t.Helper()
	svc, err := NewService(repo, stores)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubFavoriteRepo struct {
	favorites map[uuid.UUID]bool
}

func (s *stubFavoriteRepo) Add(ctx context.Context, userID, storeID uuid.UUID) error {
	if s.favorites == nil {
		s.favorites = map[uuid.UUID]bool{}
	}
	s.favorites[userID] = true
	return nil
}

func (s *stubFavoriteRepo) Remove(ctx context.Context, userID, storeID uuid.UUID) error {
	delete(s.favorites, userID)
	return nil
}

func (s *stubFavoriteRepo) Exists(ctx context.Context, userID, storeID uuid.UUID) (bool, error) {
	return s.favorites[userID], nil
}

func (s *stubFavoriteRepo) ListStores(ctx context.Context, userID uuid.UUID) ([]models.Store, error) {
	return nil, nil
}

type stubStoreLookup struct {
	store *models.Store
}

func (s *stubStoreLookup) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if s.store == nil || s.store.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}
