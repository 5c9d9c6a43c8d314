package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/general/contracts"
	"relief-dispatch/internal/ports"
	"relief-dispatch/internal/sms"
)

// Create files a citizen-submitted incident. Classification only fills fields
// the caller left unset; the incident and its `created` audit event commit in
// one transaction.
func (s *Service) Create(ctx context.Context, in ports.CreateIncidentInput) (*incident.Incident, error) {
	location, err := geo.NewPoint(in.Latitude, in.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}

	inc, err := incident.New(in.ReporterID, in.Description, location)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}
	inc.RawText = in.RawText
	inc.Category = in.Category
	inc.Urgency = in.Urgency
	inc.InjuredCount = in.InjuredCount
	inc.Trapped = in.Trapped
	inc.WaterLevelM = in.WaterLevelM
	inc.Address = in.Address

	s.enrich(ctx, inc)

	if err := s.persistNew(ctx, inc, incident.EventCreated, in.ReporterID, ""); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"incident_id": inc.ID,
		"urgency":     inc.UrgencyLabel(),
	}).Info("Incident created")

	s.announceCreated(inc, "api")

	return inc, nil
}

// CreateFromSMS files an anonymous incident from a raw inbound message. The
// audit event records the sender and receive time instead of a reporter id.
func (s *Service) CreateFromSMS(ctx context.Context, in ports.InboundSMSInput) (*incident.Incident, error) {
	report, err := sms.Parse(in.Body)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}

	inc, err := incident.New(nil, report.Description, report.Location)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}
	inc.RawText = &in.Body
	if report.Urgency != "" {
		urgency := report.Urgency
		inc.Urgency = &urgency
	}

	s.enrich(ctx, inc)

	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	note := fmt.Sprintf("SMS from %s at %s", in.FromNumber, receivedAt.UTC().Format(time.RFC3339))

	if err := s.persistNew(ctx, inc, incident.EventCreatedSMS, nil, note); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"incident_id": inc.ID,
		"from_number": in.FromNumber,
	}).Info("Incident created from SMS")

	s.announceCreated(inc, "sms")

	return inc, nil
}

// enrich fills unset classification fields from the text classifier. A
// classifier failure is logged and ignored; intake never blocks on it.
func (s *Service) enrich(ctx context.Context, inc *incident.Incident) {
	text := inc.Description
	if inc.RawText != nil && *inc.RawText != "" {
		text = *inc.RawText
	}

	hints, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.log.WithError(err).Warn("Classifier failed, filing incident unclassified")
		return
	}
	inc.ApplyHints(hints)
}

// persistNew writes the incident and its creation event in one transaction.
func (s *Service) persistNew(ctx context.Context, inc *incident.Incident, kind incident.EventType, actorID *uuid.UUID, note string) error {
	return s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.incidents.Create(txCtx, inc); err != nil {
			return err
		}

		to := inc.Status
		event, err := incident.NewEvent(inc.ID, kind, actorID, nil, &to, note)
		if err != nil {
			return err
		}
		return s.events.Append(txCtx, event)
	})
}

func (s *Service) announceCreated(inc *incident.Incident, channel string) {
	now := time.Now().UTC()

	msg := contracts.IncidentCreatedMessage{
		IncidentID:  inc.ID.String(),
		Channel:     channel,
		Description: inc.Description,
		Urgency:     inc.UrgencyLabel(),
		Location: contracts.GeoPoint{
			Lat: inc.Location.Latitude,
			Lng: inc.Location.Longitude,
		},
		Envelope: contracts.Envelope{Producer: "dispatch-service", SentAt: now},
	}
	if inc.Category != nil {
		msg.Category = *inc.Category
	}
	if body, err := json.Marshal(msg); err == nil {
		key := contracts.RouteIncidentCreatedPrefix + channel
		if err := s.pub.Publish(contracts.ExchangeDispatchTopic, key, body); err != nil {
			s.log.WithError(err).WithField("incident_id", inc.ID).Warn("Failed to publish incident created")
		}
	}

	ws := contracts.WSOpsIncidentUpdate{
		Type:       "incident_update",
		IncidentID: inc.ID.String(),
		Status:     inc.Status.String(),
		Urgency:    inc.UrgencyLabel(),
		Location: &contracts.GeoPoint{
			Lat: inc.Location.Latitude,
			Lng: inc.Location.Longitude,
		},
		Timestamp: now,
	}
	if body, err := json.Marshal(ws); err == nil {
		s.ops.Broadcast(body)
	}
}
