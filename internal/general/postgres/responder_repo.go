package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/responder"
	"relief-dispatch/internal/ports"
)

type responderRepository struct {
	pool *pgxpool.Pool
}

func NewResponderRepository(pool *pgxpool.Pool) ports.ResponderRepository {
	return &responderRepository{pool: pool}
}

func (r *responderRepository) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const responderColumns = `id, user_id, display_name, skills, vehicle_type, trust_score,
	ST_AsText(location::geometry), is_available, created_at, updated_at`

func (r *responderRepository) Create(ctx context.Context, res *responder.Responder) error {
	tx := MustTxFromContext(ctx)

	query := `
		INSERT INTO responders (user_id, display_name, skills, vehicle_type, trust_score, location, is_available)
		VALUES ($1, $2, $3, $4, $5, ST_GeogFromText($6), $7)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		res.UserID,
		res.DisplayName,
		res.Skills,
		res.VehicleType,
		res.TrustScore,
		geogWKT(res.Location),
		res.IsAvailable,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return storeErr("responder create", err)
	}
	return nil
}

func (r *responderRepository) GetByID(ctx context.Context, id uuid.UUID) (*responder.Responder, error) {
	query := `SELECT ` + responderColumns + ` FROM responders WHERE id = $1`

	res, err := scanResponder(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeErr("responder get", err)
	}
	return res, nil
}

func (r *responderRepository) List(ctx context.Context) ([]*responder.Responder, error) {
	query := `SELECT ` + responderColumns + ` FROM responders ORDER BY created_at, id`
	return r.queryMany(ctx, "responder list", query)
}

func (r *responderRepository) ListAvailable(ctx context.Context) ([]*responder.Responder, error) {
	query := `SELECT ` + responderColumns + ` FROM responders WHERE is_available ORDER BY created_at, id`
	return r.queryMany(ctx, "responder list available", query)
}

func (r *responderRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	tx := MustTxFromContext(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE responders SET is_available = $1, updated_at = now() WHERE id = $2`,
		available, id)
	if err != nil {
		return storeErr("responder set availability", err)
	}
	if tag.RowsAffected() == 0 {
		return storeErr("responder set availability", pgx.ErrNoRows)
	}
	return nil
}

func (r *responderRepository) UpdateLocation(ctx context.Context, id uuid.UUID, location geo.Point) error {
	tx := MustTxFromContext(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE responders SET location = ST_GeogFromText($1), updated_at = now() WHERE id = $2`,
		geogWKT(location), id)
	if err != nil {
		return storeErr("responder update location", err)
	}
	if tag.RowsAffected() == 0 {
		return storeErr("responder update location", pgx.ErrNoRows)
	}
	return nil
}

func (r *responderRepository) queryMany(ctx context.Context, op, query string, args ...any) ([]*responder.Responder, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	responders := make([]*responder.Responder, 0)
	for rows.Next() {
		res, err := scanResponder(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		responders = append(responders, res)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return responders, nil
}

func scanResponder(row pgx.Row) (*responder.Responder, error) {
	var (
		res responder.Responder
		wkt string
	)
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.DisplayName,
		&res.Skills,
		&res.VehicleType,
		&res.TrustScore,
		&wkt,
		&res.IsAvailable,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	location, err := geo.ParsePointWKT(wkt)
	if err != nil {
		return nil, err
	}
	res.Location = location
	return &res, nil
}
