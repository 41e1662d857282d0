package enums

import "fmt"

// EventType categorizes a campus event.
type EventType string

const (
	EventTypeFood        EventType = "food_event"
	EventTypePopupStore  EventType = "popup_store"
	EventTypeSchool      EventType = "school_event"
	EventTypeFleaMarket  EventType = "flea_market"
	EventTypePerformance EventType = "performance"
	EventTypeCommunity   EventType = "community"
)

var validEventTypes = []EventType{
	EventTypeFood,
	EventTypePopupStore,
	EventTypeSchool,
	EventTypeFleaMarket,
	EventTypePerformance,
	EventTypeCommunity,
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventType.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

// EventStatus tracks whether an event is upcoming, running or finished.
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusOngoing  EventStatus = "ongoing"
	EventStatusEnded    EventStatus = "ended"
)

var validEventStatuses = []EventStatus{
	EventStatusUpcoming,
	EventStatusOngoing,
	EventStatusEnded,
}

// String implements fmt.Stringer.
func (e EventStatus) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventStatus.
func (e EventStatus) IsValid() bool {
	for _, candidate := range validEventStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventStatus converts raw input into an EventStatus.
func ParseEventStatus(value string) (EventStatus, error) {
	for _, candidate := range validEventStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event status %q", value)
}
