package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type eventRepository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.Event, error)
}

// Service exposes campus event operations. Mutations are admin-only; the
// controller enforces the role before calling in.
type Service interface {
	Create(ctx context.Context, input CreateEventInput) (*EventDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EventDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]EventDTO, error)
}

type service struct {
	repo eventRepository
	now  func() time.Time
}

// NewService builds an event service with the provided repository.
func NewService(repo eventRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

// CreateEventInput captures the fields accepted when announcing an event.
type CreateEventInput struct {
	Title       string
	Description *string
	EventTypes  []string
	Latitude    *float64
	Longitude   *float64
	StartsAt    time.Time
	EndsAt      time.Time
}

// UpdateEventInput captures the allowed event fields for mutation.
type UpdateEventInput struct {
	Title       *string
	Description *string
	EventTypes  *[]string
	Latitude    *float64
	Longitude   *float64
	StartsAt    *time.Time
	EndsAt      *time.Time
}

func (s *service) Create(ctx context.Context, input CreateEventInput) (*EventDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := validateWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}
	if err := validateTypes(input.EventTypes); err != nil {
		return nil, err
	}

	event, err := s.repo.Create(ctx, &models.Event{
		Title:       title,
		Description: input.Description,
		EventTypes:  pq.StringArray(append([]string{}, input.EventTypes...)),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
	}
	return FromModel(event, s.now()), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	event, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(event, s.now()), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventDTO, error) {
	event, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
		}
		event.Title = title
	}
	if input.Description != nil {
		event.Description = input.Description
	}
	if input.EventTypes != nil {
		if err := validateTypes(*input.EventTypes); err != nil {
			return nil, err
		}
		event.EventTypes = pq.StringArray(append([]string{}, (*input.EventTypes)...))
	}
	if input.Latitude != nil {
		event.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		event.Longitude = input.Longitude
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = *input.EndsAt
	}
	if err := validateWindow(event.StartsAt, event.EndsAt); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update event")
	}
	return FromModel(event, s.now()), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadEvent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event")
	}
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]EventDTO, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}

	now := s.now()
	items := make([]EventDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i], now))
	}
	return items, nil
}

func (s *service) loadEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return event, nil
}

func validateWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "starts_at and ends_at are required")
	}
	if !endsAt.After(startsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}
	return nil
}

func validateTypes(values []string) error {
	for _, value := range values {
		if _, err := enums.ParseEventType(value); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid event type %q", value))
		}
	}
	return nil
}
