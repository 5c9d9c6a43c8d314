package incident

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/geo"
)

// Urgency labels recognized by the dispatch scorer. Urgency is a free-form
// string column; anything else weighs as a routine incident.
const (
	UrgencyCritical = "critical"
	UrgencyUrgent   = "urgent"
	UrgencyLow      = "low"
)

// Incident is the domain entity corresponding to the `incidents` table.
type Incident struct {
	// Identity & audit
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	// Reporter (nil for anonymous SMS intake)
	ReporterID *uuid.UUID

	// Report content
	Description string
	RawText     *string

	// Classification (caller-supplied or filled by the classifier)
	Category *string
	Urgency  *string

	// Structured hints
	InjuredCount *int
	Trapped      *bool
	WaterLevelM  *float64

	// Place
	Location geo.Point
	Address  *string

	// Lifecycle
	Status Status
}

var ErrDescriptionRequired = errors.New("incident description is required")

// New creates an incident in `requested` state at the given location.
func New(reporterID *uuid.UUID, description string, location geo.Point) (*Incident, error) {
	if description = strings.TrimSpace(description); description == "" {
		return nil, ErrDescriptionRequired
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Incident{
		CreatedAt:   now,
		UpdatedAt:   now,
		ReporterID:  reporterID,
		Description: description,
		Location:    location,
		Status:      StatusRequested,
	}, nil
}

// UrgencyLabel returns the urgency string, or "" when unset.
func (incident *Incident) UrgencyLabel() string {
	if incident.Urgency == nil {
		return ""
	}
	return *incident.Urgency
}

// SetStatus overwrites the status and stamps UpdatedAt. Callers are responsible
// for recording the matching audit event; the repository layer does both in one
// transaction.
func (incident *Incident) SetStatus(status Status) {
	incident.Status = status
	incident.UpdatedAt = time.Now().UTC()
}
