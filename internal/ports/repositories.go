package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/domain/responder"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// IncidentRepository defines the methods for managing incident rows. Mutating
// methods and GetByIDForUpdate must run within a UnitOfWork transaction; plain
// reads may run outside one.
type IncidentRepository interface {
	Create(ctx context.Context, inc *incident.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*incident.Incident, error)
	// GetByIDForUpdate locks the incident row, serializing concurrent status
	// updates and dispatch calls against the same incident.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*incident.Incident, error)
	SetStatus(ctx context.Context, id uuid.UUID, status incident.Status) error
	List(ctx context.Context, limit, offset int) ([]*incident.Incident, error)
	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[incident.Status]int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	// Hotspots groups incidents by rounded coordinates, busiest cells first.
	Hotspots(ctx context.Context, limit int) ([]Hotspot, error)
}

// IncidentEventRepository appends to and reads the append-only audit trail.
type IncidentEventRepository interface {
	Append(ctx context.Context, event *incident.Event) error
	// ListByIncident returns events ordered by created_at, ties broken by id.
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*incident.Event, error)
}

// ResponderRepository defines the methods for managing responder rows.
type ResponderRepository interface {
	Create(ctx context.Context, r *responder.Responder) error
	GetByID(ctx context.Context, id uuid.UUID) (*responder.Responder, error)
	List(ctx context.Context) ([]*responder.Responder, error)
	ListAvailable(ctx context.Context) ([]*responder.Responder, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	UpdateLocation(ctx context.Context, id uuid.UUID, location geo.Point) error
}

// AssignmentRepository defines the methods for managing assignment rows.
type AssignmentRepository interface {
	// Create inserts a pending assignment. A second active assignment for the
	// same (incident, responder) pair fails with ErrConflict.
	Create(ctx context.Context, a *assignment.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error)
	// SetStatus transitions the assignment, failing with ErrInvalidTransition
	// when the current status is terminal.
	SetStatus(ctx context.Context, id uuid.UUID, status assignment.Status) error
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*assignment.Assignment, error)
}

// IncidentCache is a best-effort read cache in front of IncidentRepository.
// Misses and cache errors fall through to the store.
type IncidentCache interface {
	Get(ctx context.Context, id uuid.UUID) (*incident.Incident, error)
	Set(ctx context.Context, inc *incident.Incident) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
