package contracts

import "time"

// WSOpsIncidentUpdate mirrors incident lifecycle messages pushed to the
// operations dashboard WebSocket feed.
type WSOpsIncidentUpdate struct {
	Type       string    `json:"type"` // "incident_update"
	IncidentID string    `json:"incident_id"`
	Status     string    `json:"status"`
	Urgency    string    `json:"urgency,omitempty"`
	Location   *GeoPoint `json:"location,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Envelope
}

// WSOpsAssignmentUpdate mirrors assignment messages on the dashboard feed.
type WSOpsAssignmentUpdate struct {
	Type         string    `json:"type"` // "assignment_update"
	AssignmentID string    `json:"assignment_id"`
	IncidentID   string    `json:"incident_id"`
	ResponderID  string    `json:"responder_id"`
	Status       string    `json:"status"`
	ETAMinutes   float64   `json:"eta_minutes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Envelope
}
