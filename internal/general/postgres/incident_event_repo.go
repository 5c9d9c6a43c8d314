package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/ports"
)

type incidentEventRepository struct {
	pool *pgxpool.Pool
}

func NewIncidentEventRepository(pool *pgxpool.Pool) ports.IncidentEventRepository {
	return &incidentEventRepository{pool: pool}
}

func (r *incidentEventRepository) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *incidentEventRepository) Append(ctx context.Context, event *incident.Event) error {
	tx := MustTxFromContext(ctx)

	query := `
		INSERT INTO incident_events (incident_id, actor_id, from_status, to_status, event_type, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		event.IncidentID,
		event.ActorID,
		statusPtr(event.FromStatus),
		statusPtr(event.ToStatus),
		event.Type.String(),
		event.Note,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return storeErr("event append", err)
	}
	return nil
}

func (r *incidentEventRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*incident.Event, error) {
	query := `
		SELECT id, incident_id, actor_id, from_status, to_status, event_type, note, created_at
		FROM incident_events
		WHERE incident_id = $1
		ORDER BY created_at, id`

	rows, err := r.db(ctx).Query(ctx, query, incidentID)
	if err != nil {
		return nil, storeErr("event list", err)
	}
	defer rows.Close()

	events := make([]*incident.Event, 0)
	for rows.Next() {
		var (
			event    incident.Event
			from, to *string
			kind     string
		)
		err := rows.Scan(
			&event.ID,
			&event.IncidentID,
			&event.ActorID,
			&from,
			&to,
			&kind,
			&event.Note,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, storeErr("event list", err)
		}
		event.Type = incident.EventType(kind)
		event.FromStatus = statusFromPtr(from)
		event.ToStatus = statusFromPtr(to)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("event list", err)
	}
	return events, nil
}

func statusPtr(s *incident.Status) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func statusFromPtr(s *string) *incident.Status {
	if s == nil {
		return nil
	}
	v := incident.Status(*s)
	return &v
}
