package incident

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType tags an entry in the `incident_events` audit trail.
type EventType string

const (
	EventCreated      EventType = "created"
	EventCreatedSMS   EventType = "created_sms"
	EventStatusChange EventType = "status_change"
)

var ErrInvalidEventType = errors.New("invalid incident event type")

// Valid reports whether eventType is one of the known event type constants.
func (eventType EventType) Valid() bool {
	switch eventType {
	case EventCreated, EventCreatedSMS, EventStatusChange:
		return true
	default:
		return false
	}
}

// String returns the string representation of the EventType.
func (eventType EventType) String() string {
	return string(eventType)
}

// Event is an immutable audit record on an incident. Rows are created once and
// never updated or deleted; ordering is created_at ascending, ties broken by id.
type Event struct {
	ID         int64
	IncidentID uuid.UUID
	ActorID    *uuid.UUID
	FromStatus *Status
	ToStatus   *Status
	Type       EventType
	Note       *string
	CreatedAt  time.Time
}

var ErrIncidentIDRequired = errors.New("incident id is required")

// NewEvent constructs an audit event for the given incident.
func NewEvent(incidentID uuid.UUID, eventType EventType, actorID *uuid.UUID, from, to *Status, note string) (*Event, error) {
	if incidentID == uuid.Nil {
		return nil, ErrIncidentIDRequired
	}
	if !eventType.Valid() {
		return nil, ErrInvalidEventType
	}

	event := &Event{
		IncidentID: incidentID,
		ActorID:    actorID,
		FromStatus: from,
		ToStatus:   to,
		Type:       eventType,
		CreatedAt:  time.Now().UTC(),
	}
	if note = strings.TrimSpace(note); note != "" {
		event.Note = &note
	}
	return event, nil
}
