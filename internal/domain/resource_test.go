package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func mustResource(t *testing.T, id string, capacity int) Resource {
	t.Helper()
	rid, err := ParseResourceID(id)
	require.NoError(t, err)
	capQty, err := ParseQuantity(capacity)
	require.NoError(t, err)
	res, _, err := NewResource(rid, capQty, testNow)
	require.NoError(t, err)
	return res
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	t.Run("starts open with no bookings", func(t *testing.T) {
		res, events, err := NewResource("R1", 10, testNow)
		require.NoError(t, err)

		assert.Equal(t, ResourceID("R1"), res.ID)
		assert.Equal(t, 0, res.Booked)
		assert.Equal(t, ResourceStateOpen, res.State)
		assert.Equal(t, 10, res.RemainingCapacity())

		require.Len(t, events, 1)
		assert.True(t, IsResourceCreated(events[0]))
		created := events[0].(ResourceCreated)
		assert.Equal(t, "R1", created.ResourceID)
		assert.Equal(t, 10, created.Capacity)
	})

	t.Run("fails for invalid capacity", func(t *testing.T) {
		_, _, err := NewResource("R1", 0, testNow)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("fails for invalid id", func(t *testing.T) {
		_, _, err := NewResource("", 5, testNow)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestResource_UpdateBookings(t *testing.T) {
	t.Parallel()

	t.Run("bounds hold over any successful sequence", func(t *testing.T) {
		res := mustResource(t, "R1", 10)

		for _, delta := range []int{6, -2, 4, -8, 10} {
			next, err := res.UpdateBookings(delta)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, next.Booked, 0)
			assert.LessOrEqual(t, next.Booked, next.Capacity.Int())
			res = next
		}
		assert.Equal(t, 10, res.Booked)
	})

	t.Run("fails when result exceeds capacity", func(t *testing.T) {
		res := mustResource(t, "R1", 10)
		res, err := res.UpdateBookings(6)
		require.NoError(t, err)

		_, err = res.UpdateBookings(5)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 6, res.Booked, "failed call must not mutate")
	})

	t.Run("fails when result goes negative", func(t *testing.T) {
		res := mustResource(t, "R1", 10)
		_, err := res.UpdateBookings(-1)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})
}

func TestResource_CanAccommodate(t *testing.T) {
	t.Parallel()

	res := mustResource(t, "R1", 10)
	res, err := res.UpdateBookings(6)
	require.NoError(t, err)

	assert.True(t, res.CanAccommodate(4))
	assert.False(t, res.CanAccommodate(5))
	assert.Equal(t, 4, res.RemainingCapacity())

	closed, _ := res.Close(testNow)
	assert.False(t, closed.CanAccommodate(1), "closed resource accepts nothing regardless of capacity")
}

func TestResource_CloseAndOpen(t *testing.T) {
	t.Parallel()

	res := mustResource(t, "R1", 5)

	closed, events := res.Close(testNow)
	assert.Equal(t, ResourceStateClosed, closed.State)
	require.Len(t, events, 1)
	assert.True(t, IsResourceClosed(events[0]))

	// Idempotent: closing again succeeds and emits nothing.
	again, events := closed.Close(testNow)
	assert.Equal(t, ResourceStateClosed, again.State)
	assert.Empty(t, events)

	reopened, events := again.Open(testNow)
	assert.Equal(t, ResourceStateOpen, reopened.State)
	require.Len(t, events, 1)
	assert.True(t, IsResourceOpened(events[0]))

	same, events := reopened.Open(testNow)
	assert.Equal(t, ResourceStateOpen, same.State)
	assert.Empty(t, events)
}

func TestResource_CapacityScenario(t *testing.T) {
	t.Parallel()

	// createResource("R1", 10), confirm 6, then 5 fails, then 4 fills it.
	res := mustResource(t, "R1", 10)

	res, err := res.UpdateBookings(6)
	require.NoError(t, err)
	assert.Equal(t, 4, res.RemainingCapacity())

	_, err = res.UpdateBookings(5)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	res, err = res.UpdateBookings(4)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Booked)
	assert.Equal(t, 0, res.RemainingCapacity())
}
