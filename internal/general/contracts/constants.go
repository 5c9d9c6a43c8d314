package contracts

// Exchanges
const (
	ExchangeDispatchTopic = "dispatch_topic"
)

// Queues
const (
	QueueIncidentStatus   = "incident_status"
	QueueIncidentCreated  = "incident_created"
	QueueAssignmentEvents = "assignment_events"
)

// Routing patterns
const (
	RouteIncidentCreatedPrefix  = "incident.created."  // {channel}: api|sms
	RouteIncidentStatusPrefix   = "incident.status."   // {status}
	RouteAssignmentCreatedKey   = "assignment.created" // fixed key
	RouteAssignmentStatusPrefix = "assignment.status." // {status}
)
