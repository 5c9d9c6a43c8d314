package contracts

import "time"

// AssignmentCreatedMessage is published for each assignment created by a
// dispatch run. Routing key: "assignment.created" on ExchangeDispatchTopic.
type AssignmentCreatedMessage struct {
	AssignmentID string    `json:"assignment_id"`
	IncidentID   string    `json:"incident_id"`
	ResponderID  string    `json:"responder_id"`
	Score        float64   `json:"score"`
	ETAMinutes   float64   `json:"eta_minutes"`
	DispatchedBy string    `json:"dispatched_by,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Envelope
}

// AssignmentStatusMessage is published when a responder or coordinator moves
// an assignment. Routing key: "assignment.status.{status}".
type AssignmentStatusMessage struct {
	AssignmentID string    `json:"assignment_id"`
	IncidentID   string    `json:"incident_id"`
	ResponderID  string    `json:"responder_id"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Envelope
}
