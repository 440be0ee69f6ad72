package domain

// Quantity is a positive number of booked units.
type Quantity int

// ParseQuantity validates a raw integer into a Quantity.
func ParseQuantity(raw int) (Quantity, error) {
	if raw < 1 {
		return 0, newValidationError("quantity", "must be at least 1")
	}
	return Quantity(raw), nil
}

// IsValid reports whether an already-typed value still satisfies the invariant.
func (q Quantity) IsValid() bool {
	return q >= 1
}

func (q Quantity) Int() int {
	return int(q)
}
