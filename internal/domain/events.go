package domain

import "time"

// DomainEvent is an immutable record of a completed state transition.
// The set of event types is closed: dispatchers switch on EventType (or use
// the Is* predicates) and can rely on no other kinds existing.
// Events are outputs of entity operations only; the core never consumes or
// replays them.
type DomainEvent interface {
	EventType() string
	HasOccurredAt() time.Time
}

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

const (
	ResourceCreatedEventType      = "ResourceCreated"
	ResourceClosedEventType       = "ResourceClosed"
	ResourceOpenedEventType       = "ResourceOpened"
	ReservationConfirmedEventType = "ReservationConfirmed"
	ReservationRejectedEventType  = "ReservationRejected"
	ReservationCancelledEventType = "ReservationCancelled"
)

// ResourceCreated records that a resource entered the system.
type ResourceCreated struct {
	ResourceID string    `json:"resource_id"`
	Capacity   int       `json:"capacity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BuildResourceCreated creates a new ResourceCreated event.
func BuildResourceCreated(id ResourceID, capacity Quantity, occurredAt time.Time) ResourceCreated {
	return ResourceCreated{
		ResourceID: id.String(),
		Capacity:   capacity.Int(),
		OccurredAt: occurredAt.UTC(),
	}
}

func (e ResourceCreated) EventType() string        { return ResourceCreatedEventType }
func (e ResourceCreated) HasOccurredAt() time.Time { return e.OccurredAt }

// ResourceClosed records that a resource stopped accepting reservations.
type ResourceClosed struct {
	ResourceID string    `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BuildResourceClosed creates a new ResourceClosed event.
func BuildResourceClosed(id ResourceID, occurredAt time.Time) ResourceClosed {
	return ResourceClosed{
		ResourceID: id.String(),
		OccurredAt: occurredAt.UTC(),
	}
}

func (e ResourceClosed) EventType() string        { return ResourceClosedEventType }
func (e ResourceClosed) HasOccurredAt() time.Time { return e.OccurredAt }

// ResourceOpened records that a resource accepts reservations again.
type ResourceOpened struct {
	ResourceID string    `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BuildResourceOpened creates a new ResourceOpened event.
func BuildResourceOpened(id ResourceID, occurredAt time.Time) ResourceOpened {
	return ResourceOpened{
		ResourceID: id.String(),
		OccurredAt: occurredAt.UTC(),
	}
}

func (e ResourceOpened) EventType() string        { return ResourceOpenedEventType }
func (e ResourceOpened) HasOccurredAt() time.Time { return e.OccurredAt }

// ReservationConfirmed records that a reservation now holds units against its
// resource.
type ReservationConfirmed struct {
	ReservationID string    `json:"reservation_id"`
	ResourceID    string    `json:"resource_id"`
	ClientID      string    `json:"client_id"`
	Quantity      int       `json:"quantity"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BuildReservationConfirmed creates a new ReservationConfirmed event.
func BuildReservationConfirmed(id ReservationID, resourceID ResourceID, clientID ClientID, qty Quantity, occurredAt time.Time) ReservationConfirmed {
	return ReservationConfirmed{
		ReservationID: id.String(),
		ResourceID:    resourceID.String(),
		ClientID:      clientID.String(),
		Quantity:      qty.Int(),
		OccurredAt:    occurredAt.UTC(),
	}
}

func (e ReservationConfirmed) EventType() string        { return ReservationConfirmedEventType }
func (e ReservationConfirmed) HasOccurredAt() time.Time { return e.OccurredAt }

// ReservationRejected records that a pending reservation was turned down,
// carrying the reason so consumers can reconstruct the transition.
type ReservationRejected struct {
	ReservationID string    `json:"reservation_id"`
	ResourceID    string    `json:"resource_id"`
	ClientID      string    `json:"client_id"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BuildReservationRejected creates a new ReservationRejected event.
func BuildReservationRejected(id ReservationID, resourceID ResourceID, clientID ClientID, qty Quantity, reason RejectionReason, occurredAt time.Time) ReservationRejected {
	return ReservationRejected{
		ReservationID: id.String(),
		ResourceID:    resourceID.String(),
		ClientID:      clientID.String(),
		Quantity:      qty.Int(),
		Reason:        string(reason),
		OccurredAt:    occurredAt.UTC(),
	}
}

func (e ReservationRejected) EventType() string        { return ReservationRejectedEventType }
func (e ReservationRejected) HasOccurredAt() time.Time { return e.OccurredAt }

// ReservationCancelled records that a pending or confirmed reservation was
// cancelled.
type ReservationCancelled struct {
	ReservationID string    `json:"reservation_id"`
	ResourceID    string    `json:"resource_id"`
	Quantity      int       `json:"quantity"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BuildReservationCancelled creates a new ReservationCancelled event.
func BuildReservationCancelled(id ReservationID, resourceID ResourceID, qty Quantity, occurredAt time.Time) ReservationCancelled {
	return ReservationCancelled{
		ReservationID: id.String(),
		ResourceID:    resourceID.String(),
		Quantity:      qty.Int(),
		OccurredAt:    occurredAt.UTC(),
	}
}

func (e ReservationCancelled) EventType() string        { return ReservationCancelledEventType }
func (e ReservationCancelled) HasOccurredAt() time.Time { return e.OccurredAt }

// Predicates for tag dispatch without structural coupling.

func IsResourceCreated(e DomainEvent) bool      { _, ok := e.(ResourceCreated); return ok }
func IsResourceClosed(e DomainEvent) bool       { _, ok := e.(ResourceClosed); return ok }
func IsResourceOpened(e DomainEvent) bool       { _, ok := e.(ResourceOpened); return ok }
func IsReservationConfirmed(e DomainEvent) bool { _, ok := e.(ReservationConfirmed); return ok }
func IsReservationRejected(e DomainEvent) bool  { _, ok := e.(ReservationRejected); return ok }
func IsReservationCancelled(e DomainEvent) bool { _, ok := e.(ReservationCancelled); return ok }
