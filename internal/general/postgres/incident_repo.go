package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/ports"
)

// querier is satisfied by both pgxpool.Pool and pgx.Tx; reads pick whichever
// the context carries.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

func NewIncidentRepository(pool *pgxpool.Pool) ports.IncidentRepository {
	return &incidentRepository{pool: pool}
}

func (r *incidentRepository) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const incidentColumns = `id, reporter_id, description, raw_text, category, urgency,
	injured_count, trapped, water_level_m, ST_AsText(location::geometry), address,
	status, created_at, updated_at`

func (r *incidentRepository) Create(ctx context.Context, inc *incident.Incident) error {
	tx := MustTxFromContext(ctx)

	query := `
		INSERT INTO incidents (reporter_id, description, raw_text, category, urgency,
			injured_count, trapped, water_level_m, location, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ST_GeogFromText($9), $10, $11)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		inc.ReporterID,
		inc.Description,
		inc.RawText,
		inc.Category,
		inc.Urgency,
		inc.InjuredCount,
		inc.Trapped,
		inc.WaterLevelM,
		geogWKT(inc.Location),
		inc.Address,
		inc.Status.String(),
	).Scan(&inc.ID, &inc.CreatedAt, &inc.UpdatedAt)
	if err != nil {
		return storeErr("incident create", err)
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*incident.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	return r.scanOne(ctx, "incident get", r.db(ctx).QueryRow(ctx, query, id))
}

func (r *incidentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*incident.Incident, error) {
	tx := MustTxFromContext(ctx)

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, "incident lock", tx.QueryRow(ctx, query, id))
}

func (r *incidentRepository) SetStatus(ctx context.Context, id uuid.UUID, status incident.Status) error {
	tx := MustTxFromContext(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE incidents SET status = $1, updated_at = now() WHERE id = $2`,
		status.String(), id)
	if err != nil {
		return storeErr("incident set status", err)
	}
	if tag.RowsAffected() == 0 {
		return storeErr("incident set status", pgx.ErrNoRows)
	}
	return nil
}

func (r *incidentRepository) List(ctx context.Context, limit, offset int) ([]*incident.Incident, error) {
	query := `SELECT ` + incidentColumns + `
		FROM incidents
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, storeErr("incident list", err)
	}
	defer rows.Close()

	incidents := make([]*incident.Incident, 0)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, storeErr("incident list", err)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("incident list", err)
	}
	return incidents, nil
}

func (r *incidentRepository) CountTotal(ctx context.Context) (int, error) {
	var n int
	if err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&n); err != nil {
		return 0, storeErr("incident count", err)
	}
	return n, nil
}

func (r *incidentRepository) CountByStatus(ctx context.Context) (map[incident.Status]int, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT status, COUNT(*) FROM incidents GROUP BY status`)
	if err != nil {
		return nil, storeErr("incident count by status", err)
	}
	defer rows.Close()

	counts := make(map[incident.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, storeErr("incident count by status", err)
		}
		counts[incident.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("incident count by status", err)
	}
	return counts, nil
}

// Hotspots aggregates incident density by location rounded to three decimal
// places, roughly a 110m grid cell.
func (r *incidentRepository) Hotspots(ctx context.Context, limit int) ([]ports.Hotspot, error) {
	query := `
		SELECT
			ROUND(ST_Y(ST_Centroid(location::geometry))::numeric, 3)::float8 AS lat,
			ROUND(ST_X(ST_Centroid(location::geometry))::numeric, 3)::float8 AS lng,
			COUNT(*) AS cnt
		FROM incidents
		GROUP BY lat, lng
		ORDER BY cnt DESC, lat, lng
		LIMIT $1`

	rows, err := r.db(ctx).Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("incident hotspots", err)
	}
	defer rows.Close()

	hotspots := make([]ports.Hotspot, 0)
	for rows.Next() {
		var h ports.Hotspot
		if err := rows.Scan(&h.Latitude, &h.Longitude, &h.Count); err != nil {
			return nil, storeErr("incident hotspots", err)
		}
		hotspots = append(hotspots, h)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("incident hotspots", err)
	}
	return hotspots, nil
}

func (r *incidentRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM incidents WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, storeErr("incident count since", err)
	}
	return n, nil
}

func (r *incidentRepository) scanOne(ctx context.Context, op string, row pgx.Row) (*incident.Incident, error) {
	inc, err := scanIncident(row)
	if err != nil {
		return nil, storeErr(op, err)
	}
	return inc, nil
}

func scanIncident(row pgx.Row) (*incident.Incident, error) {
	var (
		inc    incident.Incident
		wkt    string
		status string
	)
	err := row.Scan(
		&inc.ID,
		&inc.ReporterID,
		&inc.Description,
		&inc.RawText,
		&inc.Category,
		&inc.Urgency,
		&inc.InjuredCount,
		&inc.Trapped,
		&inc.WaterLevelM,
		&wkt,
		&inc.Address,
		&status,
		&inc.CreatedAt,
		&inc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	location, err := geo.ParsePointWKT(wkt)
	if err != nil {
		return nil, err
	}
	inc.Location = location
	inc.Status = incident.Status(status)
	return &inc, nil
}

// geogWKT renders a point as EWKT for ST_GeogFromText.
func geogWKT(p geo.Point) string {
	return "SRID=4326;" + p.WKT()
}
