package app

import (
	"context"
	"time"

	"github.com/sderosiaux/reservo-sub001/internal/clock"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetResource(ctx context.Context, id string) (domain.Resource, error)
	GetResourceForUpdate(ctx context.Context, id string) (domain.Resource, error)
	UpdateResource(ctx context.Context, res domain.Resource) error
	CreateReservation(ctx context.Context, rsv domain.Reservation) error
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, rsv domain.Reservation) error
	ListReservationsByResource(ctx context.Context, resourceID string) ([]domain.Reservation, error)
	AppendEvents(ctx context.Context, events []domain.DomainEvent) error
}

// ReservationService orchestrates the reservation lifecycle against the
// domain entities. Capacity is only booked at confirmation time; the
// check-then-act around CanAccommodate/UpdateBookings is serialized per
// resource by locking the resource row (SELECT ... FOR UPDATE) inside the
// transaction.
type ReservationService struct {
	repo     ReservationRepository
	clock    clock.Clock
	newID    IDGenerator
	settings SettingsStore
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:  repo,
		clock: clk,
		newID: NewUUID,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ReservationServiceOption func(*ReservationService)

// WithReservationIDGenerator overrides the generator used when no id is
// supplied.
func WithReservationIDGenerator(gen IDGenerator) ReservationServiceOption {
	return func(s *ReservationService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithReservationSettings enables maintenance-mode checks on mutating
// operations.
func WithReservationSettings(store SettingsStore) ReservationServiceOption {
	return func(s *ReservationService) {
		s.settings = store
	}
}

type CreateReservationInput struct {
	ID         string // optional, generated when empty
	ResourceID string
	ClientID   string
	Quantity   int
}

// CreateReservation validates the input and persists a pending reservation.
// No capacity is checked or booked here: a pending reservation holds no
// units.
func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (domain.Reservation, error) {
	if err := checkMaintenance(ctx, s.settings); err != nil {
		return domain.Reservation{}, err
	}

	raw := in.ID
	if raw == "" {
		raw = s.newID()
	}
	id, err := domain.ParseReservationID(raw)
	if err != nil {
		return domain.Reservation{}, err
	}
	resourceID, err := domain.ParseResourceID(in.ResourceID)
	if err != nil {
		return domain.Reservation{}, err
	}
	clientID, err := domain.ParseClientID(in.ClientID)
	if err != nil {
		return domain.Reservation{}, err
	}
	qty, err := domain.ParseQuantity(in.Quantity)
	if err != nil {
		return domain.Reservation{}, err
	}

	rsv, err := domain.NewReservation(id, resourceID, clientID, qty, s.clock.Now())
	if err != nil {
		return domain.Reservation{}, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// The resource must exist before a reservation can target it.
		if _, err := s.repo.GetResource(txCtx, rsv.ResourceID.String()); err != nil {
			return err
		}
		return s.repo.CreateReservation(txCtx, rsv)
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return rsv, nil
}

// ConfirmReservation books the reservation's units against its resource.
// When the resource is closed or lacks capacity the reservation is rejected
// instead, with the matching reason persisted, and the corresponding domain
// error is returned so callers can tell the outcomes apart.
func (s *ReservationService) ConfirmReservation(ctx context.Context, id string) (domain.Reservation, error) {
	if err := checkMaintenance(ctx, s.settings); err != nil {
		return domain.Reservation{}, err
	}

	now := s.clock.Now()
	var result domain.Reservation
	var outcome error

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rsv, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		// Locks the resource row and serializes concurrent confirms.
		res, err := s.repo.GetResourceForUpdate(txCtx, rsv.ResourceID.String())
		if err != nil {
			return err
		}

		if res.State == domain.ResourceStateClosed {
			result, err = s.rejectLocked(txCtx, rsv, domain.RejectionResourceClosed, now)
			outcome = domain.ErrResourceClosed
			return err
		}
		if !res.CanAccommodate(rsv.Quantity) {
			result, err = s.rejectLocked(txCtx, rsv, domain.RejectionCapacityExceeded, now)
			outcome = domain.ErrCapacityExceeded
			return err
		}

		confirmed, events, err := rsv.Confirm(now)
		if err != nil {
			return err
		}
		booked, err := res.UpdateBookings(confirmed.Quantity.Int())
		if err != nil {
			return err
		}

		if err := s.repo.UpdateReservation(txCtx, confirmed); err != nil {
			return err
		}
		if err := s.repo.UpdateResource(txCtx, booked); err != nil {
			return err
		}
		if err := s.repo.AppendEvents(txCtx, events); err != nil {
			return err
		}
		result = confirmed
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, outcome
}

// RejectReservation rejects a pending reservation with an explicit reason,
// e.g. when a policy layer blocks the client.
func (s *ReservationService) RejectReservation(ctx context.Context, id string, reason domain.RejectionReason) (domain.Reservation, error) {
	if err := checkMaintenance(ctx, s.settings); err != nil {
		return domain.Reservation{}, err
	}

	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rsv, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		result, err = s.rejectLocked(txCtx, rsv, reason, now)
		return err
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}

// CancelReservation cancels a pending or confirmed reservation. Units are
// released back to the resource only when the reservation actually held them
// (it was confirmed).
func (s *ReservationService) CancelReservation(ctx context.Context, id string) (domain.Reservation, error) {
	if err := checkMaintenance(ctx, s.settings); err != nil {
		return domain.Reservation{}, err
	}

	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rsv, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		wasConfirmed := rsv.Status == domain.ReservationStatusConfirmed

		cancelled, events, err := rsv.Cancel(now)
		if err != nil {
			return err
		}

		if wasConfirmed {
			res, err := s.repo.GetResourceForUpdate(txCtx, rsv.ResourceID.String())
			if err != nil {
				return err
			}
			released, err := res.UpdateBookings(-cancelled.Quantity.Int())
			if err != nil {
				return err
			}
			if err := s.repo.UpdateResource(txCtx, released); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateReservation(txCtx, cancelled); err != nil {
			return err
		}
		if err := s.repo.AppendEvents(txCtx, events); err != nil {
			return err
		}
		result = cancelled
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}

// ExpireReservation moves a pending reservation to expired, e.g. driven by a
// sweeper that times out stale pending requests. Expired reservations never
// held units, so the resource is untouched.
func (s *ReservationService) ExpireReservation(ctx context.Context, id string) (domain.Reservation, error) {
	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rsv, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		expired, err := rsv.Expire(now)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateReservation(txCtx, expired); err != nil {
			return err
		}
		result = expired
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	if id == "" {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return s.repo.GetReservation(ctx, id)
}

// ListReservationsByResource returns a resource's reservations ordered by
// server timestamp. The resource must exist.
func (s *ReservationService) ListReservationsByResource(ctx context.Context, resourceID string) ([]domain.Reservation, error) {
	if _, err := s.repo.GetResource(ctx, resourceID); err != nil {
		return nil, err
	}
	return s.repo.ListReservationsByResource(ctx, resourceID)
}

func (s *ReservationService) rejectLocked(txCtx context.Context, rsv domain.Reservation, reason domain.RejectionReason, now time.Time) (domain.Reservation, error) {
	rejected, events, err := rsv.Reject(reason, now)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := s.repo.UpdateReservation(txCtx, rejected); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.repo.AppendEvents(txCtx, events); err != nil {
		return domain.Reservation{}, err
	}
	return rejected, nil
}
