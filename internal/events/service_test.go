package events

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

func TestServiceCreateValidatesWindow(t *testing.T) {
	svc := buildTestService(t, &stubEventRepo{})
	now := time.Now().UTC()

	_, err := svc.Create(context.Background(), CreateEventInput{
		Title:    "Spring Festival",
		StartsAt: now.Add(48 * time.Hour),
		EndsAt:   now.Add(24 * time.Hour),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateRejectsUnknownType(t *testing.T) {
	svc := buildTestService(t, &stubEventRepo{})
	now := time.Now().UTC()

	_, err := svc.Create(context.Background(), CreateEventInput{
		Title:      "Spring Festival",
		EventTypes: []string{"rave"},
		StartsAt:   now,
		EndsAt:     now.Add(time.Hour),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatusAtDerivesFromWindow(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	event := &models.Event{
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}

	if got := StatusAt(event, now); got != enums.EventStatusOngoing {
		t.Fatalf("expected ongoing, got %s", got)
	}
	if got := StatusAt(event, now.Add(-2*time.Hour)); got != enums.EventStatusUpcoming {
		t.Fatalf("expected upcoming, got %s", got)
	}
	if got := StatusAt(event, now.Add(2*time.Hour)); got != enums.EventStatusEnded {
		t.Fatalf("expected ended, got %s", got)
	}
}

func TestServiceUpdateRevalidatesWindow(t *testing.T) {
	now := time.Now().UTC()
	event := &models.Event{
		ID:       uuid.New(),
		Title:    "Spring Festival",
		StartsAt: now,
		EndsAt:   now.Add(2 * time.Hour),
	}
	svc := buildTestService(t, &stubEventRepo{event: event})

	badEnd := now.Add(-time.Hour)
	_, err := svc.Update(context.Background(), event.ID, UpdateEventInput{EndsAt: &badEnd})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func buildTestService(t *testing.T, repo eventRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubEventRepo struct {
	event *models.Event
}

func (s *stubEventRepo) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	event.ID = uuid.New()
	s.event = event
	return event, nil
}

func (s *stubEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if s.event == nil || s.event.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.event
	return &cpy, nil
}

func (s *stubEventRepo) Update(ctx context.Context, event *models.Event) error {
	s.event = event
	return nil
}

func (s *stubEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.event = nil
	return nil
}

func (s *stubEventRepo) List(ctx context.Context, filter ListFilter) ([]models.Event, error) {
	if s.event == nil {
		return nil, nil
	}
	return []models.Event{*s.event}, nil
}
