package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/domain/dispatch"
	"relief-dispatch/internal/general/contracts"
	"relief-dispatch/internal/ports"
)

// AutoDispatch ranks available responders against the incident and creates up
// to Limit pending assignments in rank order. The incident row is locked for
// the duration, so concurrent dispatch runs against the same incident
// serialize; any failure rolls back every assignment created in the call.
func (s *Service) AutoDispatch(ctx context.Context, in ports.AutoDispatchInput) ([]*assignment.Assignment, error) {
	radius := in.MaxRadiusKM
	if radius == 0 {
		radius = s.cfg.DefaultMaxRadiusKM
	}
	limit := in.Limit
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	if radius <= 0 {
		return nil, fmt.Errorf("max radius must be positive, got %v: %w", radius, ports.ErrValidation)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d: %w", limit, ports.ErrValidation)
	}

	var created []*assignment.Assignment

	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		inc, err := s.incidents.GetByIDForUpdate(txCtx, in.IncidentID)
		if err != nil {
			return err
		}

		available, err := s.responders.ListAvailable(txCtx)
		if err != nil {
			return err
		}

		candidates, err := dispatch.Rank(inc, available, dispatch.ScoreConfig{
			MaxRadiusKM: radius,
			AvgSpeedKmh: s.cfg.AvgSpeedKmh,
		})
		if err != nil {
			return err
		}
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}

		created = make([]*assignment.Assignment, 0, len(candidates))
		for _, c := range candidates {
			a, err := assignment.New(inc.ID, c.ResponderID, c.Score, c.ETAMinutes)
			if err != nil {
				return err
			}
			if err := s.assignments.Create(txCtx, a); err != nil {
				return err
			}
			created = append(created, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	actor := ""
	if in.ActorID != nil {
		actor = in.ActorID.String()
	}
	s.log.WithFields(logrus.Fields{
		"incident_id": in.IncidentID,
		"assignments": len(created),
		"radius_km":   radius,
		"actor_id":    actor,
	}).Info("Auto dispatch completed")

	for _, a := range created {
		s.announceAssignmentCreated(a, actor)
	}

	return created, nil
}

// announceAssignmentCreated pushes the new assignment to the broker and the
// dashboard feed. Best-effort: failures are logged, never returned.
func (s *Service) announceAssignmentCreated(a *assignment.Assignment, dispatchedBy string) {
	now := time.Now().UTC()

	msg := contracts.AssignmentCreatedMessage{
		AssignmentID: a.ID.String(),
		IncidentID:   a.IncidentID.String(),
		ResponderID:  a.ResponderID.String(),
		Score:        a.Score,
		ETAMinutes:   a.ETAMinutes,
		DispatchedBy: dispatchedBy,
		Timestamp:    now,
		Envelope:     contracts.Envelope{Producer: "dispatch-service", SentAt: now},
	}
	if body, err := json.Marshal(msg); err == nil {
		if err := s.pub.Publish(contracts.ExchangeDispatchTopic, contracts.RouteAssignmentCreatedKey, body); err != nil {
			s.log.WithError(err).WithField("assignment_id", a.ID).Warn("Failed to publish assignment created")
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
