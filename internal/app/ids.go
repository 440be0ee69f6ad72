package app

import "github.com/google/uuid"

// IDGenerator produces identifiers for newly created entities. Injected so
// services stay deterministic in tests.
type IDGenerator func() string

// NewUUID is the production generator.
func NewUUID() string {
	return uuid.NewString()
}
