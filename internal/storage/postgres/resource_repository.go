package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ResourceRepository) CreateResource(ctx context.Context, res domain.Resource) error {
	const stmt = `
INSERT INTO resources (id, capacity, booked, state)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, res.ID.String(), res.Capacity.Int(), res.Booked, string(res.State))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrResourceExists
		}
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	const query = `SELECT id, capacity, booked, state FROM resources WHERE id = $1`
	return r.scanResource(r.queryRow(ctx, query, id))
}

func (r *ResourceRepository) GetResourceForUpdate(ctx context.Context, id string) (domain.Resource, error) {
	const query = `SELECT id, capacity, booked, state FROM resources WHERE id = $1 FOR UPDATE`
	return r.scanResource(r.queryRow(ctx, query, id))
}

func (r *ResourceRepository) UpdateResource(ctx context.Context, res domain.Resource) error {
	const stmt = `UPDATE resources SET capacity = $2, booked = $3, state = $4 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, res.ID.String(), res.Capacity.Int(), res.Booked, string(res.State))
	if err != nil {
		// The booked bounds are also enforced by check constraints, so a
		// racing writer cannot oversell even if it skipped the entity.
		if isCheckViolation(err) {
			return domain.ErrCapacityExceeded
		}
		return fmt.Errorf("update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *ResourceRepository) ListResources(ctx context.Context) ([]domain.Resource, error) {
	const query = `SELECT id, capacity, booked, state FROM resources ORDER BY id`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		res, err := scanResourceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list resources: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return out, nil
}

func (r *ResourceRepository) AppendEvents(ctx context.Context, events []domain.DomainEvent) error {
	return appendEvents(ctx, r.exec, events)
}

func (r *ResourceRepository) scanResource(row pgx.Row) (domain.Resource, error) {
	res, err := scanResourceRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

func scanResourceRow(row pgx.Row) (domain.Resource, error) {
	var (
		id       string
		capacity int
		booked   int
		state    string
	)
	if err := row.Scan(&id, &capacity, &booked, &state); err != nil {
		return domain.Resource{}, err
	}
	return domain.Resource{
		ID:       domain.ResourceID(id),
		Capacity: domain.Quantity(capacity),
		Booked:   booked,
		State:    domain.ResourceState(state),
	}, nil
}

func (r *ResourceRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ResourceRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ResourceRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
