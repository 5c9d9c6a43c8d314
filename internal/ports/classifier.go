package ports

import (
	"context"

	"relief-dispatch/internal/domain/incident"
)

// Classifier infers category, urgency, and structured hints from free text.
// The intake path only fills fields the caller left unset; implementations may
// be local rules or a remote model, so the context is part of the contract.
type Classifier interface {
	Classify(ctx context.Context, text string) (incident.Hints, error)
}
