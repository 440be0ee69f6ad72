package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusExpired   ReservationStatus = "expired"
	ReservationStatusRejected  ReservationStatus = "rejected"
)

// RejectionReason is the closed set of reasons a reservation can be rejected.
type RejectionReason string

const (
	RejectionCapacityExceeded RejectionReason = "capacity_exceeded"
	RejectionResourceClosed   RejectionReason = "resource_closed"
	RejectionClientBlocked    RejectionReason = "client_blocked"
	RejectionMaintenance      RejectionReason = "maintenance"
)

func (r RejectionReason) IsValid() bool {
	switch r {
	case RejectionCapacityExceeded, RejectionResourceClosed, RejectionClientBlocked, RejectionMaintenance:
		return true
	}
	return false
}

// Reservation is a request to book Quantity units of a Resource by a Client.
//
// Status lifecycle: every reservation starts pending. Pending may move to
// confirmed, rejected or expired; pending and confirmed may move to
// cancelled. Cancelled, expired and rejected are terminal.
// RejectionReason is set exactly when Status is rejected.
//
// A reservation never reaches across to mutate its Resource: the orchestrator
// applies UpdateBookings(+q) when confirming and UpdateBookings(-q) when
// cancelling a previously confirmed reservation.
type Reservation struct {
	ID              ReservationID
	ResourceID      ResourceID
	ClientID        ClientID
	Quantity        Quantity
	Status          ReservationStatus
	RejectionReason RejectionReason
	ServerTimestamp time.Time
	CreatedAt       time.Time
}

// NewReservation creates a pending reservation. It validates its inputs
// defensively but does not check resource capacity: units are only booked at
// confirmation time, so callers check CanAccommodate before confirming.
func NewReservation(id ReservationID, resourceID ResourceID, clientID ClientID, qty Quantity, now time.Time) (Reservation, error) {
	if !id.IsValid() {
		return Reservation{}, newValidationError("reservation_id", "malformed identifier")
	}
	if !resourceID.IsValid() {
		return Reservation{}, newValidationError("resource_id", "malformed identifier")
	}
	if !clientID.IsValid() {
		return Reservation{}, newValidationError("client_id", "malformed identifier")
	}
	if !qty.IsValid() {
		return Reservation{}, newValidationError("quantity", "must be at least 1")
	}

	return Reservation{
		ID:              id,
		ResourceID:      resourceID,
		ClientID:        clientID,
		Quantity:        qty,
		Status:          ReservationStatusPending,
		ServerTimestamp: now,
		CreatedAt:       now,
	}, nil
}

// Confirm moves a pending reservation to confirmed and emits
// ReservationConfirmed. The caller must apply UpdateBookings(+Quantity) on
// the resource in the same unit of work.
func (r Reservation) Confirm(now time.Time) (Reservation, []DomainEvent, error) {
	if r.Status != ReservationStatusPending {
		return Reservation{}, nil, ErrInvalidTransition
	}
	r.Status = ReservationStatusConfirmed
	r.ServerTimestamp = now
	return r, []DomainEvent{BuildReservationConfirmed(r.ID, r.ResourceID, r.ClientID, r.Quantity, now)}, nil
}

// Reject moves a pending reservation to rejected with a mandatory reason and
// emits ReservationRejected.
func (r Reservation) Reject(reason RejectionReason, now time.Time) (Reservation, []DomainEvent, error) {
	if r.Status != ReservationStatusPending {
		return Reservation{}, nil, ErrInvalidTransition
	}
	if !reason.IsValid() {
		return Reservation{}, nil, newValidationError("rejection_reason", "unknown reason")
	}
	r.Status = ReservationStatusRejected
	r.RejectionReason = reason
	r.ServerTimestamp = now
	return r, []DomainEvent{BuildReservationRejected(r.ID, r.ResourceID, r.ClientID, r.Quantity, reason, now)}, nil
}

// Expire moves a pending reservation to expired. Expiry holds no units, so
// there is no side effect on the resource.
func (r Reservation) Expire(now time.Time) (Reservation, error) {
	if r.Status != ReservationStatusPending {
		return Reservation{}, ErrInvalidTransition
	}
	r.Status = ReservationStatusExpired
	r.ServerTimestamp = now
	return r, nil
}

// Cancel moves a pending or confirmed reservation to cancelled and emits
// ReservationCancelled. Terminal statuses are not cancellable. If the
// reservation was confirmed, the caller must apply UpdateBookings(-Quantity)
// on the resource.
func (r Reservation) Cancel(now time.Time) (Reservation, []DomainEvent, error) {
	if r.Status != ReservationStatusPending && r.Status != ReservationStatusConfirmed {
		return Reservation{}, nil, ErrInvalidTransition
	}
	r.Status = ReservationStatusCancelled
	r.ServerTimestamp = now
	return r, []DomainEvent{BuildReservationCancelled(r.ID, r.ResourceID, r.Quantity, now)}, nil
}

// IsActive reports whether the reservation still counts against the resource
// from the client's point of view (pending or confirmed).
func (r Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

func (r Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}

// IsTerminal reports whether no further transition is permitted.
func (r Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationStatusCancelled, ReservationStatusExpired, ReservationStatusRejected:
		return true
	}
	return false
}
