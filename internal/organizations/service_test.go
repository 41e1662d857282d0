package organizations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

func TestServiceJoinUnknownOrganization(t *testing.T) {
	svc := buildTestService(t, &stubOrgRepo{})

	err := svc.Join(context.Background(), uuid.New(), uuid.New(), time.Now().UTC())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceJoinExpiredOrganization(t *testing.T) {
	now := time.Now().UTC()
	expired := now.Add(-time.Hour)
	org := &models.Organization{ID: uuid.New(), Name: "Chess Club", ExpiresAt: &expired}
	svc := buildTestService(t, &stubOrgRepo{org: org})

	err := svc.Join(context.Background(), org.ID, uuid.New(), now)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeExpired {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestServiceJoinAndLeave(t *testing.T) {
	org := &models.Organization{ID: uuid.New(), Name: "Chess Club"}
	repo := &stubOrgRepo{org: org}
	svc := buildTestService(t, repo)
	userID := uuid.New()

	if err := svc.Join(context.Background(), org.ID, userID, time.Now().UTC()); err != nil {
		t.Fatalf("join: %v", err)
	}
	member, err := svc.IsMember(context.Background(), org.ID, userID)
	if err != nil || !member {
		t.Fatalf("expected membership, got member=%v err=%v", member, err)
	}

	if err := svc.Leave(context.Background(), org.ID, userID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	member, err = svc.IsMember(context.Background(), org.ID, userID)
	if err != nil || member {
		t.Fatalf("expected no membership, got member=%v err=%v", member, err)
	}
}

func buildTestService(t *testing.T, repo organizationRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubOrgRepo struct {
	org     *models.Organization
	members map[uuid.UUID]bool
}

func (s *stubOrgRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	if s.org == nil || s.org.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.org, nil
}

func (s *stubOrgRepo) List(ctx context.Context, university string) ([]models.Organization, error) {
	if s.org == nil {
		return nil, nil
	}
	return []models.Organization{*s.org}, nil
}

func (s *stubOrgRepo) AddMember(ctx context.Context, orgID, userID uuid.UUID) error {
	if s.members == nil {
		s.members = map[uuid.UUID]bool{}
	}
	s.members[userID] = true
	return nil
}

func (s *stubOrgRepo) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	delete(s.members, userID)
	return nil
}

func (s *stubOrgRepo) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	return s.members[userID], nil
}

func (s *stubOrgRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error) {
	if s.members[userID] && s.org != nil {
		return []models.Organization{*s.org}, nil
	}
	return nil, nil
}
