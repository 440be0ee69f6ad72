package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceID(t *testing.T) {
	t.Parallel()

	t.Run("accepts well-formed identifiers", func(t *testing.T) {
		for _, raw := range []string{"R1", "room-42", "venue_a.main", "2f1c0d9e-8a77-4f13-9c55-0c2b8f0a1d11"} {
			id, err := ParseResourceID(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, id.String())
			assert.True(t, id.IsValid())
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParseResourceID("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "resource_id", vErr.Field)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, raw := range []string{"has space", "slash/", "ümlaut", strings.Repeat("x", 65)} {
			_, err := ParseResourceID(raw)
			assert.ErrorIs(t, err, ErrValidation, "input %q", raw)
		}
	})
}

func TestParseClientID(t *testing.T) {
	t.Parallel()

	id, err := ParseClientID("client-7")
	require.NoError(t, err)
	assert.Equal(t, "client-7", id.String())

	_, err = ParseClientID("")
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "client_id", vErr.Field)
}

func TestParseReservationID(t *testing.T) {
	t.Parallel()

	id, err := ParseReservationID("9b2e7c44-1111-4222-8333-444455556666")
	require.NoError(t, err)
	assert.True(t, id.IsValid())

	_, err = ParseReservationID("not valid!")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	q, err := ParseQuantity(3)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Int())
	assert.True(t, q.IsValid())

	for _, raw := range []int{0, -1, -100} {
		_, err := ParseQuantity(raw)
		require.Error(t, err, "input %d", raw)
		assert.ErrorIs(t, err, ErrValidation)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "quantity", vErr.Field)
	}
}
