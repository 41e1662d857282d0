package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type stubProfileRepo struct {
	user    *models.User
	updated *struct {
		nickname   string
		university *string
	}
}

func (s *stubProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubProfileRepo) UpdateProfile(ctx context.Context, id uuid.UUID, nickname string, university *string) error {
	s.updated = &struct {
		nickname   string
		university *string
	}{nickname: nickname, university: university}
	return nil
}

func seededRepo() (*stubProfileRepo, uuid.UUID) {
	id := uuid.New()
	uni := "Hanyang University"
	return &stubProfileRepo{user: &models.User{
		ID:         id,
		Email:      "jin@example.com",
		Nickname:   "jin",
		Role:       enums.UserRoleStudent,
		University: &uni,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}}, id
}

func TestMeReturnsProfileWithoutCredentials(t *testing.T) {
	repo, id := seededRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	dto, err := svc.Me(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Email != "jin@example.com" || dto.Nickname != "jin" {
		t.Fatalf("unexpected profile %+v", dto)
	}
}

func TestMeUnknownUserNotFound(t *testing.T) {
	repo, _ := seededRepo()
	svc, _ := NewService(repo)

	_, err := svc.Me(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileTrimsNickname(t *testing.T) {
	repo, id := seededRepo()
	svc, _ := NewService(repo)

	nickname := "  jinnie  "
	dto, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Nickname: &nickname})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Nickname != "jinnie" {
		t.Fatalf("expected trimmed nickname, got %q", dto.Nickname)
	}
	if repo.updated == nil || repo.updated.nickname != "jinnie" {
		t.Fatalf("expected persisted nickname, got %+v", repo.updated)
	}
	if repo.updated.university == nil || *repo.updated.university != "Hanyang University" {
		t.Fatalf("expected university untouched, got %+v", repo.updated.university)
	}
}

func TestUpdateProfileRejectsBlankNickname(t *testing.T) {
	repo, id := seededRepo()
	svc, _ := NewService(repo)

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Nickname: &blank})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no write on invalid input")
	}
}

func TestUpdateProfileChangesUniversity(t *testing.T) {
	repo, id := seededRepo()
	svc, _ := NewService(repo)

	uni := "Korea University"
	dto, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{University: &uni})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.University == nil || *dto.University != "Korea University" {
		t.Fatalf("unexpected university %+v", dto.University)
	}
	if dto.Nickname != "jin" {
		t.Fatalf("expected nickname untouched, got %q", dto.Nickname)
	}
}
