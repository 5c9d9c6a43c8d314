package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/general/contracts"
	"relief-dispatch/internal/ports"
)

// UpdateStatus moves the incident to a new status and appends exactly one
// status_change event in the same transaction. Repeating the current status is
// allowed and still audited: a duplicate report from the field is a fact worth
// keeping. With strict transitions enabled, only forward moves pass.
func (s *Service) UpdateStatus(ctx context.Context, in ports.UpdateIncidentStatusInput) (*incident.Incident, error) {
	if !in.NewStatus.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", in.NewStatus, ports.ErrValidation)
	}

	var (
		updated *incident.Incident
		from    incident.Status
	)

	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		inc, err := s.incidents.GetByIDForUpdate(txCtx, in.IncidentID)
		if err != nil {
			return err
		}
		from = inc.Status

		if s.cfg.StrictTransitions && from != in.NewStatus && !from.ForwardOf(in.NewStatus) {
			return fmt.Errorf("cannot move incident from %s to %s: %w",
				from, in.NewStatus, ports.ErrInvalidTransition)
		}

		if err := s.incidents.SetStatus(txCtx, inc.ID, in.NewStatus); err != nil {
			return err
		}
		inc.SetStatus(in.NewStatus)

		to := in.NewStatus
		event, err := incident.NewEvent(inc.ID, incident.EventStatusChange, in.ActorID, &from, &to, in.Note)
		if err != nil {
			return err
		}
		if err := s.events.Append(txCtx, event); err != nil {
			return err
		}

		updated = inc
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, updated.ID); err != nil {
		s.log.WithError(err).WithField("incident_id", updated.ID).Warn("Failed to invalidate incident cache")
	}

	s.log.WithFields(logrus.Fields{
		"incident_id": updated.ID,
		"from":        from.String(),
		"to":          updated.Status.String(),
	}).Info("Incident status updated")

	s.announceStatus(updated, from, in)

	return updated, nil
}

func (s *Service) announceStatus(inc *incident.Incident, from incident.Status, in ports.UpdateIncidentStatusInput) {
	now := time.Now().UTC()

	msg := contracts.IncidentStatusMessage{
		IncidentID: inc.ID.String(),
		FromStatus: from.String(),
		ToStatus:   inc.Status.String(),
		Note:       in.Note,
		Timestamp:  now,
		Envelope:   contracts.Envelope{Producer: "dispatch-service", SentAt: now},
	}
	if in.ActorID != nil {
		msg.ActorID = in.ActorID.String()
	}
	if body, err := json.Marshal(msg); err == nil {
		key := contracts.RouteIncidentStatusPrefix + inc.Status.String()
		if err := s.pub.Publish(contracts.ExchangeDispatchTopic, key, body); err != nil {
			s.log.WithError(err).WithField("incident_id", inc.ID).Warn("Failed to publish incident status")
		}
	}

	ws := contracts.WSOpsIncidentUpdate{
		Type:       "incident_update",
		IncidentID: inc.ID.String(),
		Status:     inc.Status.String(),
		Urgency:    inc.UrgencyLabel(),
		Timestamp:  now,
	}
	if body, err := json.Marshal(ws); err == nil {
		s.ops.Broadcast(body)
	}
}
