package assignment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Assignment pairs one incident with one responder, corresponding to the
// `assignments` table. Score and ETA are frozen at creation time.
type Assignment struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	IncidentID  uuid.UUID
	ResponderID uuid.UUID

	Status     Status
	Score      float64
	ETAMinutes float64
}

var (
	ErrIncidentIDRequired  = errors.New("assignment incident id is required")
	ErrResponderIDRequired = errors.New("assignment responder id is required")
	ErrTerminalStatus      = errors.New("assignment is in a terminal status")
)

// New creates a pending assignment carrying the dispatch score and ETA computed
// for it.
func New(incidentID, responderID uuid.UUID, score, etaMinutes float64) (*Assignment, error) {
	if incidentID == uuid.Nil {
		return nil, ErrIncidentIDRequired
	}
	if responderID == uuid.Nil {
		return nil, ErrResponderIDRequired
	}

	now := time.Now().UTC()
	return &Assignment{
		CreatedAt:   now,
		UpdatedAt:   now,
		IncidentID:  incidentID,
		ResponderID: responderID,
		Status:      StatusPending,
		Score:       score,
		ETAMinutes:  etaMinutes,
	}, nil
}

// Transition moves the assignment to next. Terminal assignments stay put.
func (a *Assignment) Transition(next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if a.Status.Terminal() {
		return ErrTerminalStatus
	}
	a.Status = next
	a.UpdatedAt = time.Now().UTC()
	return nil
}
