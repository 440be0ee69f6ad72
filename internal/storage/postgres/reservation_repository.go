package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ReservationRepository) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	const query = `SELECT id, capacity, booked, state FROM resources WHERE id = $1`
	return r.resourceFrom(r.queryRow(ctx, query, id))
}

// GetResourceForUpdate locks the resource row for the rest of the
// transaction. All confirm/cancel flows lock the resource this way, which
// serializes capacity accounting per resource.
func (r *ReservationRepository) GetResourceForUpdate(ctx context.Context, id string) (domain.Resource, error) {
	const query = `SELECT id, capacity, booked, state FROM resources WHERE id = $1 FOR UPDATE`
	return r.resourceFrom(r.queryRow(ctx, query, id))
}

func (r *ReservationRepository) UpdateResource(ctx context.Context, res domain.Resource) error {
	const stmt = `UPDATE resources SET capacity = $2, booked = $3, state = $4 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, res.ID.String(), res.Capacity.Int(), res.Booked, string(res.State))
	if err != nil {
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

func (r *ReservationRepository) CreateReservation(ctx context.Context, rsv domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, resource_id, client_id, quantity, status, rejection_reason, server_ts, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		rsv.ID.String(),
		rsv.ResourceID.String(),
		rsv.ClientID.String(),
		rsv.Quantity.Int(),
		string(rsv.Status),
		rejectionReasonParam(rsv),
		rsv.ServerTimestamp.UnixMilli(),
		rsv.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReservationExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrResourceNotFound
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	return r.reservationFrom(r.queryRow(ctx, reservationQuery, id))
}

func (r *ReservationRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	return r.reservationFrom(r.queryRow(ctx, reservationQuery+` FOR UPDATE`, id))
}

const reservationQuery = `
SELECT id, resource_id, client_id, quantity, status, rejection_reason, server_ts, created_at
FROM reservations
WHERE id = $1`

func (r *ReservationRepository) UpdateReservation(ctx context.Context, rsv domain.Reservation) error {
	const stmt = `
UPDATE reservations
SET status = $2, rejection_reason = $3, server_ts = $4
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		rsv.ID.String(),
		string(rsv.Status),
		rejectionReasonParam(rsv),
		rsv.ServerTimestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// ListReservationsByResource returns reservations for one resource ordered by
// server timestamp, matching the (resource_id, server_ts) index.
func (r *ReservationRepository) ListReservationsByResource(ctx context.Context, resourceID string) ([]domain.Reservation, error) {
	const query = `
SELECT id, resource_id, client_id, quantity, status, rejection_reason, server_ts, created_at
FROM reservations
WHERE resource_id = $1
ORDER BY server_ts`

	rows, err := r.query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		rsv, err := scanReservationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list reservations: %w", err)
		}
		out = append(out, rsv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

func (r *ReservationRepository) AppendEvents(ctx context.Context, events []domain.DomainEvent) error {
	return appendEvents(ctx, r.exec, events)
}

func (r *ReservationRepository) resourceFrom(row pgx.Row) (domain.Resource, error) {
	res, err := scanResourceRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) reservationFrom(row pgx.Row) (domain.Reservation, error) {
	rsv, err := scanReservationRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return rsv, nil
}

func scanReservationRow(row pgx.Row) (domain.Reservation, error) {
	var (
		id         string
		resourceID string
		clientID   string
		quantity   int
		status     string
		reason     *string
		serverTS   int64
		createdAt  int64
	)
	if err := row.Scan(&id, &resourceID, &clientID, &quantity, &status, &reason, &serverTS, &createdAt); err != nil {
		return domain.Reservation{}, err
	}

	rsv := domain.Reservation{
		ID:              domain.ReservationID(id),
		ResourceID:      domain.ResourceID(resourceID),
		ClientID:        domain.ClientID(clientID),
		Quantity:        domain.Quantity(quantity),
		Status:          domain.ReservationStatus(status),
		ServerTimestamp: time.UnixMilli(serverTS).UTC(),
		CreatedAt:       time.UnixMilli(createdAt).UTC(),
	}
	if reason != nil {
		rsv.RejectionReason = domain.RejectionReason(*reason)
	}
	return rsv, nil
}

func rejectionReasonParam(rsv domain.Reservation) *string {
	if rsv.Status != domain.ReservationStatusRejected {
		return nil
	}
	reason := string(rsv.RejectionReason)
	return &reason
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
