package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/ports"
)

const (
	defaultListLimit    = 50
	maxListLimit        = 200
	defaultHotspotLimit = 20
)

// Get returns one incident, serving repeat reads from the cache.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*incident.Incident, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil {
		return cached, nil
	} else if !errors.Is(err, ports.ErrNotFound) {
		s.log.WithError(err).WithField("incident_id", id).Warn("Incident cache read failed")
	}

	inc, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, inc); err != nil {
		s.log.WithError(err).WithField("incident_id", id).Warn("Incident cache write failed")
	}
	return inc, nil
}

// List returns incidents newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*incident.Incident, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.incidents.List(ctx, limit, offset)
}

// ListEvents returns the audit trail of an incident in insertion order.
func (s *Service) ListEvents(ctx context.Context, incidentID uuid.UUID) ([]*incident.Event, error) {
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.events.ListByIncident(ctx, incidentID)
}

// Summary aggregates incident counts for the operations dashboard.
func (s *Service) Summary(ctx context.Context) (ports.IncidentSummary, error) {
	total, err := s.incidents.CountTotal(ctx)
	if err != nil {
		return ports.IncidentSummary{}, err
	}

	byStatus, err := s.incidents.CountByStatus(ctx)
	if err != nil {
		return ports.IncidentSummary{}, err
	}

	last24h, err := s.incidents.CountCreatedSince(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		return ports.IncidentSummary{}, err
	}

	summary := ports.IncidentSummary{
		TotalIncidents:    total,
		IncidentsByStatus: make(map[string]int, len(byStatus)),
		IncidentsLast24h:  last24h,
	}
	for status, n := range byStatus {
		summary.IncidentsByStatus[status.String()] = n
	}
	return summary, nil
}

// Hotspots returns the busiest incident grid cells for the dashboard map.
func (s *Service) Hotspots(ctx context.Context, limit int) ([]ports.Hotspot, error) {
	if limit <= 0 {
		limit = defaultHotspotLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.incidents.Hotspots(ctx, limit)
}
