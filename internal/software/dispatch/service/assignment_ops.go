package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/general/contracts"
)

// AcceptAssignment marks the assignment accepted by its responder.
func (s *Service) AcceptAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	return s.transition(ctx, id, assignment.StatusAccepted)
}

// RejectAssignment marks the assignment rejected by its responder.
func (s *Service) RejectAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	return s.transition(ctx, id, assignment.StatusRejected)
}

// CancelAssignment cancels the assignment from the coordinator side.
func (s *Service) CancelAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	return s.transition(ctx, id, assignment.StatusCancelled)
}

// CompleteAssignment marks the work done.
func (s *Service) CompleteAssignment(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	return s.transition(ctx, id, assignment.StatusCompleted)
}

// ListAssignments returns the assignments of an incident in creation order,
// which matches the rank order of the dispatch run that created them.
func (s *Service) ListAssignments(ctx context.Context, incidentID uuid.UUID) ([]*assignment.Assignment, error) {
	return s.assignments.ListByIncident(ctx, incidentID)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next assignment.Status) (*assignment.Assignment, error) {
	var updated *assignment.Assignment

	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.assignments.SetStatus(txCtx, id, next); err != nil {
			return err
		}
		a, err := s.assignments.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"assignment_id": id,
		"status":        next.String(),
	}).Info("Assignment transitioned")

	s.announceAssignmentStatus(updated)

	return updated, nil
}

func (s *Service) announceAssignmentStatus(a *assignment.Assignment) {
	now := time.Now().UTC()

	msg := contracts.AssignmentStatusMessage{
		AssignmentID: a.ID.String(),
		IncidentID:   a.IncidentID.String(),
		ResponderID:  a.ResponderID.String(),
		Status:       a.Status.String(),
		Timestamp:    now,
		Envelope:     contracts.Envelope{Producer: "dispatch-service", SentAt: now},
	}
	if body, err := json.Marshal(msg); err == nil {
		key := contracts.RouteAssignmentStatusPrefix + a.Status.String()
		if err := s.pub.Publish(contracts.ExchangeDispatchTopic, key, body); err != nil {
			s.log.WithError(err).WithField("assignment_id", a.ID).Warn("Failed to publish assignment status")
		}
	}

	ws := contracts.WSOpsAssignmentUpdate{
		Type:         "assignment_update",
		AssignmentID: a.ID.String(),
		IncidentID:   a.IncidentID.String(),
		ResponderID:  a.ResponderID.String(),
		Status:       a.Status.String(),
		ETAMinutes:   a.ETAMinutes,
		Timestamp:    now,
	}
	if body, err := json.Marshal(ws); err == nil {
		s.ops.Broadcast(body)
	}
}
