package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypes(t *testing.T) {
	t.Parallel()

	events := []DomainEvent{
		BuildResourceCreated("R1", 10, testNow),
		BuildResourceClosed("R1", testNow),
		BuildResourceOpened("R1", testNow),
		BuildReservationConfirmed("rsv-1", "R1", "c1", 2, testNow),
		BuildReservationRejected("rsv-1", "R1", "c1", 2, RejectionResourceClosed, testNow),
		BuildReservationCancelled("rsv-1", "R1", 2, testNow),
	}

	wantTypes := []string{
		ResourceCreatedEventType,
		ResourceClosedEventType,
		ResourceOpenedEventType,
		ReservationConfirmedEventType,
		ReservationRejectedEventType,
		ReservationCancelledEventType,
	}

	require.Len(t, events, len(wantTypes))
	for i, e := range events {
		assert.Equal(t, wantTypes[i], e.EventType())
		assert.Equal(t, testNow, e.HasOccurredAt())
	}
}

func TestEventPredicates(t *testing.T) {
	t.Parallel()

	confirmed := BuildReservationConfirmed("rsv-1", "R1", "c1", 2, testNow)
	rejected := BuildReservationRejected("rsv-1", "R1", "c1", 2, RejectionClientBlocked, testNow)

	assert.True(t, IsReservationConfirmed(confirmed))
	assert.False(t, IsReservationConfirmed(rejected))
	assert.True(t, IsReservationRejected(rejected))
	assert.False(t, IsReservationRejected(confirmed))
	assert.True(t, IsResourceCreated(BuildResourceCreated("R1", 1, testNow)))
	assert.True(t, IsResourceClosed(BuildResourceClosed("R1", testNow)))
	assert.True(t, IsResourceOpened(BuildResourceOpened("R1", testNow)))
	assert.True(t, IsReservationCancelled(BuildReservationCancelled("rsv-1", "R1", 2, testNow)))
	assert.False(t, IsResourceCreated(confirmed))
}

func TestRejectedEventCarriesReason(t *testing.T) {
	t.Parallel()

	ev := BuildReservationRejected("rsv-1", "R1", "c1", 5, RejectionMaintenance, testNow)
	assert.Equal(t, "maintenance", ev.Reason)
	assert.Equal(t, 5, ev.Quantity)
	assert.Equal(t, "rsv-1", ev.ReservationID)
}
