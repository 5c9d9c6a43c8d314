package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/ports"
)

type assignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) ports.AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const assignmentColumns = `id, incident_id, responder_id, status, score, eta_minutes, created_at, updated_at`

func (r *assignmentRepository) Create(ctx context.Context, a *assignment.Assignment) error {
	tx := MustTxFromContext(ctx)

	// The partial unique index on active (incident_id, responder_id) pairs
	// turns a duplicate dispatch into a unique violation here.
	query := `
		INSERT INTO assignments (incident_id, responder_id, status, score, eta_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		a.IncidentID,
		a.ResponderID,
		a.Status.String(),
		a.Score,
		a.ETAMinutes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return storeErr("assignment create", err)
	}
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	a, err := scanAssignment(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeErr("assignment get", err)
	}
	return a, nil
}

func (r *assignmentRepository) SetStatus(ctx context.Context, id uuid.UUID, status assignment.Status) error {
	tx := MustTxFromContext(ctx)

	var current string
	err := tx.QueryRow(ctx,
		`SELECT status FROM assignments WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		return storeErr("assignment set status", err)
	}

	if assignment.Status(current).Terminal() {
		return fmt.Errorf("assignment set status: %s is terminal: %w", current, ports.ErrInvalidTransition)
	}
	if assignment.Status(current) == status {
		return nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE assignments SET status = $1, updated_at = now() WHERE id = $2`,
		status.String(), id)
	if err != nil {
		return storeErr("assignment set status", err)
	}
	return nil
}

func (r *assignmentRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*assignment.Assignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE incident_id = $1
		ORDER BY created_at, id`

	rows, err := r.db(ctx).Query(ctx, query, incidentID)
	if err != nil {
		return nil, storeErr("assignment list", err)
	}
	defer rows.Close()

	assignments := make([]*assignment.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, storeErr("assignment list", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("assignment list", err)
	}
	return assignments, nil
}

func scanAssignment(row pgx.Row) (*assignment.Assignment, error) {
	var (
		a      assignment.Assignment
		status string
	)
	err := row.Scan(
		&a.ID,
		&a.IncidentID,
		&a.ResponderID,
		&status,
		&a.Score,
		&a.ETAMinutes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = assignment.Status(status)
	return &a, nil
}
