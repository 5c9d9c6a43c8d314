package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/domain/responder"
)

// ----- DTOs for Dispatch Service -----

// AutoDispatchInput is the validated input for POST /dispatch/auto.
type AutoDispatchInput struct {
	IncidentID  uuid.UUID
	MaxRadiusKM float64    // 0 means "use configured default"
	Limit       int        // 0 means "use configured default"
	ActorID     *uuid.UUID // acting admin, for attribution only
}

// ----- Dispatch Service Interface -----

// DispatchService ranks responders against an incident and manages the
// resulting assignments.
type DispatchService interface {
	// AutoDispatch creates up to Limit pending assignments for the best-ranked
	// responders within MaxRadiusKM. All-or-nothing: a failure mid-creation
	// rolls back every assignment created in the call.
	AutoDispatch(ctx context.Context, in AutoDispatchInput) ([]*assignment.Assignment, error)

	AcceptAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error)
	RejectAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error)
	CancelAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error)
	CompleteAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error)
	ListAssignments(ctx context.Context, incidentID uuid.UUID) ([]*assignment.Assignment, error)
}

// ----- DTOs for Incident Service -----

// CreateIncidentInput carries a citizen-submitted report. Optional fields left
// nil are filled from the classifier when text is available.
type CreateIncidentInput struct {
	ReporterID   *uuid.UUID
	Description  string
	RawText      *string
	Category     *string
	Urgency      *string
	InjuredCount *int
	Trapped      *bool
	WaterLevelM  *float64
	Latitude     float64
	Longitude    float64
	Address      *string
}

// InboundSMSInput is a raw inbound message, body format "URGENT;lat;lng;description".
type InboundSMSInput struct {
	FromNumber string
	Body       string
	ReceivedAt time.Time
}

// UpdateIncidentStatusInput is the validated input for PATCH /incidents/{id}/status.
type UpdateIncidentStatusInput struct {
	IncidentID uuid.UUID
	NewStatus  incident.Status
	Note       string
	ActorID    *uuid.UUID
}

// IncidentSummary aggregates incident counts for the operations dashboard.
type IncidentSummary struct {
	TotalIncidents    int            `json:"total_incidents"`
	IncidentsByStatus map[string]int `json:"incidents_by_status"`
	IncidentsLast24h  int            `json:"incidents_last_24h"`
}

// Hotspot is one cell of the incident density aggregation: incidents grouped
// by their location rounded to ~110m.
type Hotspot struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Count     int     `json:"count"`
}

// ----- Incident Service Interface -----

// IncidentService owns incident intake, the status state machine, and the
// audit trail.
type IncidentService interface {
	Create(ctx context.Context, in CreateIncidentInput) (*incident.Incident, error)
	CreateFromSMS(ctx context.Context, in InboundSMSInput) (*incident.Incident, error)
	Get(ctx context.Context, id uuid.UUID) (*incident.Incident, error)
	List(ctx context.Context, limit, offset int) ([]*incident.Incident, error)
	UpdateStatus(ctx context.Context, in UpdateIncidentStatusInput) (*incident.Incident, error)
	ListEvents(ctx context.Context, incidentID uuid.UUID) ([]*incident.Event, error)
	Summary(ctx context.Context) (IncidentSummary, error)
	Hotspots(ctx context.Context, limit int) ([]Hotspot, error)
}

// ----- DTOs for Responder Service -----

// CreateResponderInput registers a field unit for dispatch.
type CreateResponderInput struct {
	UserID      uuid.UUID
	DisplayName string
	Skills      []string
	VehicleType string
	Latitude    float64
	Longitude   float64
}

// ----- Responder Service Interface -----

// ResponderService manages the responder registry.
type ResponderService interface {
	Create(ctx context.Context, in CreateResponderInput) (*responder.Responder, error)
	List(ctx context.Context) ([]*responder.Responder, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*responder.Responder, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) (*responder.Responder, error)
}
