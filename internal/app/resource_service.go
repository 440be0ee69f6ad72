package app

import (
	"context"

	"github.com/sderosiaux/reservo-sub001/internal/clock"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

type ResourceRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateResource(ctx context.Context, res domain.Resource) error
	GetResource(ctx context.Context, id string) (domain.Resource, error)
	GetResourceForUpdate(ctx context.Context, id string) (domain.Resource, error)
	UpdateResource(ctx context.Context, res domain.Resource) error
	ListResources(ctx context.Context) ([]domain.Resource, error)
	AppendEvents(ctx context.Context, events []domain.DomainEvent) error
}

// ResourceService owns the resource lifecycle: creation, open/close flips and
// capacity queries. Every mutation persists the entity and its emitted events
// in one transaction.
type ResourceService struct {
	repo     ResourceRepository
	clock    clock.Clock
	newID    IDGenerator
	settings SettingsStore
}

func NewResourceService(repo ResourceRepository, clk clock.Clock, opts ...ResourceServiceOption) *ResourceService {
	svc := &ResourceService{
		repo:  repo,
		clock: clk,
		newID: NewUUID,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ResourceServiceOption func(*ResourceService)

// WithResourceIDGenerator overrides the generator used when no id is supplied.
func WithResourceIDGenerator(gen IDGenerator) ResourceServiceOption {
	return func(s *ResourceService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithResourceSettings enables maintenance-mode checks on mutating operations.
func WithResourceSettings(store SettingsStore) ResourceServiceOption {
	return func(s *ResourceService) {
		s.settings = store
	}
}

type CreateResourceInput struct {
	ID       string // optional, generated when empty
	Capacity int
}

func (s *ResourceService) CreateResource(ctx context.Context, in CreateResourceInput) (domain.Resource, error) {
	if err := checkMaintenance(ctx, s.settings); err != nil {
		return domain.Resource{}, err
	}

	raw := in.ID
	if raw == "" {
		raw = s.newID()
	}
	id, err := domain.ParseResourceID(raw)
	if err != nil {
		return domain.Resource{}, err
	}
	capacity, err := domain.ParseQuantity(in.Capacity)
	if err != nil {
		return domain.Resource{}, err
	}

	res, events, err := domain.NewResource(id, capacity, s.clock.Now())
	if err != nil {
		return domain.Resource{}, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateResource(txCtx, res); err != nil {
			return err
		}
		return s.repo.AppendEvents(txCtx, events)
	})
	if err != nil {
		return domain.Resource{}, err
	}
	return res, nil
}

func (s *ResourceService) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	if id == "" {
		return domain.Resource{}, domain.ErrResourceNotFound
	}
	return s.repo.GetResource(ctx, id)
}

func (s *ResourceService) ListResources(ctx context.Context) ([]domain.Resource, error) {
	return s.repo.ListResources(ctx)
}

// CloseResource flips the resource to closed. Idempotent: closing a closed
// resource succeeds without a new event. Existing reservations are untouched.
func (s *ResourceService) CloseResource(ctx context.Context, id string) (domain.Resource, error) {
	return s.flipState(ctx, id, func(res domain.Resource) (domain.Resource, []domain.DomainEvent) {
		return res.Close(s.clock.Now())
	})
}

// OpenResource flips the resource back to open. Idempotent.
func (s *ResourceService) OpenResource(ctx context.Context, id string) (domain.Resource, error) {
	return s.flipState(ctx, id, func(res domain.Resource) (domain.Resource, []domain.DomainEvent) {
		return res.Open(s.clock.Now())
	})
}

func (s *ResourceService) flipState(ctx context.Context, id string, flip func(domain.Resource) (domain.Resource, []domain.DomainEvent)) (domain.Resource, error) {
	if err := checkMaintenance(ctx, s.settings); err != nil {
		return domain.Resource{}, err
	}

	var result domain.Resource
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetResourceForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		next, events := flip(res)
		if len(events) == 0 {
			result = next
			return nil
		}
		if err := s.repo.UpdateResource(txCtx, next); err != nil {
			return err
		}
		if err := s.repo.AppendEvents(txCtx, events); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		return domain.Resource{}, err
	}
	return result, nil
}
