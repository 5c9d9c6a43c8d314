package contracts

import "time"

// IncidentCreatedMessage is published when a new incident enters the system.
// Routing key: "incident.created.{channel}" on ExchangeDispatchTopic.
type IncidentCreatedMessage struct {
	IncidentID  string   `json:"incident_id"`
	Channel     string   `json:"channel"` // api|sms
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Urgency     string   `json:"urgency,omitempty"`
	Location    GeoPoint `json:"location"`
	Envelope
}

// IncidentStatusMessage is published on every incident status update.
// Routing key: "incident.status.{status}" on ExchangeDispatchTopic.
type IncidentStatusMessage struct {
	IncidentID string    `json:"incident_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id,omitempty"`
	Note       string    `json:"note,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Envelope
}
