package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// EventDTO exposes campus event data in API responses.
type EventDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	EventTypes  []string          `json:"event_types"`
	Latitude    *float64          `json:"latitude,omitempty"`
	Longitude   *float64          `json:"longitude,omitempty"`
	StartsAt    time.Time         `json:"starts_at"`
	EndsAt      time.Time         `json:"ends_at"`
	Status      enums.EventStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FromModel maps the persisted event into a DTO. The status reflects the
// provided clock, not the stored column.
func FromModel(m *models.Event, now time.Time) *EventDTO {
	if m == nil {
		return nil
	}

	return &EventDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		EventTypes:  append([]string{}, m.EventTypes...),
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		Status:      StatusAt(m, now),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// StatusAt derives the event status from its window.
func StatusAt(m *models.Event, now time.Time) enums.EventStatus {
	switch {
	case now.Before(m.StartsAt):
		return enums.EventStatusUpcoming
	case now.After(m.EndsAt):
		return enums.EventStatusEnded
	default:
		return enums.EventStatusOngoing
	}
}
