package ports

// MessagePublisher publishes a message to a broker exchange. Publishing is
// best-effort from the caller's point of view: services log failures and move
// on, state changes never roll back over a broker hiccup.
type MessagePublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OpsNotifier pushes an event to connected operations dashboard clients.
type OpsNotifier interface {
	Broadcast(message []byte)
}
