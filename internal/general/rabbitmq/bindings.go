package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"relief-dispatch/internal/general/contracts"
)

func declareTopology(ch *amqp.Channel) error {
	// 1. Exchange
	if err := ch.ExchangeDeclare(contracts.ExchangeDispatchTopic, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", contracts.ExchangeDispatchTopic, err)
	}

	// 2. Queues
	queues := []string{
		contracts.QueueIncidentCreated,
		contracts.QueueIncidentStatus,
		contracts.QueueAssignmentEvents,
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	// 3. Bindings
	bindings := []struct {
		queue      string
		routingKey string
	}{
		{contracts.QueueIncidentCreated, contracts.RouteIncidentCreatedPrefix + "*"},
		{contracts.QueueIncidentStatus, contracts.RouteIncidentStatusPrefix + "*"},
		{contracts.QueueAssignmentEvents, contracts.RouteAssignmentCreatedKey},
		{contracts.QueueAssignmentEvents, contracts.RouteAssignmentStatusPrefix + "*"},
	}

	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.routingKey, contracts.ExchangeDispatchTopic, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", b.queue, err)
		}
	}

	return nil
}
