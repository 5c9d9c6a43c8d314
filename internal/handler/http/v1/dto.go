package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest carries a citizen-submitted report. Classification
// fields left out are filled by the intake classifier.
type CreateIncidentRequest struct {
	Description  string   `json:"description" validate:"required,min=2"`
	RawText      *string  `json:"raw_text,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Urgency      *string  `json:"urgency,omitempty" validate:"omitempty,oneof=critical urgent low"`
	InjuredCount *int     `json:"injured_count,omitempty" validate:"omitempty,gte=0"`
	Trapped      *bool    `json:"trapped,omitempty"`
	WaterLevelM  *float64 `json:"water_level_m,omitempty" validate:"omitempty,gte=0"`
	Latitude     float64  `json:"latitude" validate:"latitude"`
	Longitude    float64  `json:"longitude" validate:"longitude"`
	Address      *string  `json:"address,omitempty"`
}

// SMSInboundRequest is the webhook payload from the SMS gateway.
type SMSInboundRequest struct {
	From       string    `json:"from" validate:"required"`
	Body       string    `json:"body" validate:"required"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// UpdateIncidentStatusRequest moves an incident through its lifecycle.
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty" validate:"max=1024"`
}

// AutoDispatchRequest triggers a dispatch run for an incident.
type AutoDispatchRequest struct {
	IncidentID  string  `json:"incident_id" validate:"required,uuid"`
	MaxRadiusKM float64 `json:"max_radius_km,omitempty"`
	Limit       int     `json:"limit,omitempty"`
}

// CreateResponderRequest registers a field unit.
type CreateResponderRequest struct {
	UserID      string   `json:"user_id" validate:"required,uuid"`
	DisplayName string   `json:"display_name" validate:"required,min=2,max=255"`
	Skills      []string `json:"skills,omitempty"`
	VehicleType string   `json:"vehicle_type,omitempty"`
	Latitude    float64  `json:"latitude" validate:"latitude"`
	Longitude   float64  `json:"longitude" validate:"longitude"`
}

// UpdateAvailabilityRequest flips dispatch eligibility.
type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// UpdateLocationRequest records a fresh position report.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// IncidentResponse is the wire form of an incident.
type IncidentResponse struct {
	ID           uuid.UUID  `json:"id"`
	ReporterID   *uuid.UUID `json:"reporter_id,omitempty"`
	Description  string     `json:"description"`
	Category     *string    `json:"category,omitempty"`
	Urgency      *string    `json:"urgency,omitempty"`
	InjuredCount *int       `json:"injured_count,omitempty"`
	Trapped      *bool      `json:"trapped,omitempty"`
	WaterLevelM  *float64   `json:"water_level_m,omitempty"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	Address      *string    `json:"address,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EventResponse is one audit trail entry.
type EventResponse struct {
	ID         int64      `json:"id"`
	IncidentID uuid.UUID  `json:"incident_id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	FromStatus *string    `json:"from_status,omitempty"`
	ToStatus   *string    `json:"to_status,omitempty"`
	Type       string     `json:"type"`
	Note       *string    `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AssignmentResponse is the wire form of an assignment.
type AssignmentResponse struct {
	ID          uuid.UUID `json:"id"`
	IncidentID  uuid.UUID `json:"incident_id"`
	ResponderID uuid.UUID `json:"responder_id"`
	Status      string    `json:"status"`
	Score       float64   `json:"score"`
	ETAMinutes  float64   `json:"eta_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResponderResponse is the wire form of a responder.
type ResponderResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Skills      []string  `json:"skills,omitempty"`
	VehicleType *string   `json:"vehicle_type,omitempty"`
	TrustScore  float64   `json:"trust_score"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
