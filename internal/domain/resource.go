package domain

import "time"

type ResourceState string

const (
	ResourceStateOpen   ResourceState = "open"
	ResourceStateClosed ResourceState = "closed"
)

// Resource is a finite-capacity bookable entity. Booked counts the units held
// by confirmed reservations and stays within [0, Capacity] at all times.
// Operations return a new value; the receiver is never mutated.
type Resource struct {
	ID       ResourceID
	Capacity Quantity
	Booked   int
	State    ResourceState
}

// NewResource creates an open resource with no bookings and emits
// ResourceCreated.
func NewResource(id ResourceID, capacity Quantity, now time.Time) (Resource, []DomainEvent, error) {
	if !id.IsValid() {
		return Resource{}, nil, newValidationError("resource_id", "malformed identifier")
	}
	if !capacity.IsValid() {
		return Resource{}, nil, newValidationError("capacity", "must be at least 1")
	}

	res := Resource{
		ID:       id,
		Capacity: capacity,
		Booked:   0,
		State:    ResourceStateOpen,
	}
	return res, []DomainEvent{BuildResourceCreated(id, capacity, now)}, nil
}

// CanAccommodate reports whether q more units fit: the resource must be open
// and the booked total must stay within capacity.
func (r Resource) CanAccommodate(q Quantity) bool {
	if r.State != ResourceStateOpen {
		return false
	}
	return r.Booked+q.Int() <= r.Capacity.Int()
}

// RemainingCapacity returns how many units are still bookable.
func (r Resource) RemainingCapacity() int {
	return r.Capacity.Int() - r.Booked
}

// UpdateBookings applies a signed delta to the booked total. It is the single
// point of truth for capacity accounting: confirming routes +quantity through
// here, releasing routes -quantity. Fails with ErrCapacityExceeded when the
// result would leave [0, Capacity].
func (r Resource) UpdateBookings(delta int) (Resource, error) {
	next := r.Booked + delta
	if next < 0 || next > r.Capacity.Int() {
		return Resource{}, ErrCapacityExceeded
	}
	r.Booked = next
	return r, nil
}

// Close stops the resource from accepting new reservations. Existing
// reservations stay valid until individually resolved. Closing an already
// closed resource succeeds without emitting an event.
func (r Resource) Close(now time.Time) (Resource, []DomainEvent) {
	if r.State == ResourceStateClosed {
		return r, nil
	}
	r.State = ResourceStateClosed
	return r, []DomainEvent{BuildResourceClosed(r.ID, now)}
}

// Open makes the resource accept reservations again. Idempotent.
func (r Resource) Open(now time.Time) (Resource, []DomainEvent) {
	if r.State == ResourceStateOpen {
		return r, nil
	}
	r.State = ResourceStateOpen
	return r, []DomainEvent{BuildResourceOpened(r.ID, now)}
}
