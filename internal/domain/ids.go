package domain

// Identifiers are opaque validated strings: 1 to 64 characters drawn from
// letters, digits, '_', '.' and '-'. UUIDs satisfy the format, but any stable
// external key does too.

const maxIdentifierLength = 64

func validIdentifier(raw string) bool {
	if raw == "" || len(raw) > maxIdentifierLength {
		return false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '-':
		default:
			return false
		}
	}
	return true
}

// ResourceID identifies a bookable resource.
type ResourceID string

// ParseResourceID validates a raw string into a ResourceID.
func ParseResourceID(raw string) (ResourceID, error) {
	if raw == "" {
		return "", newValidationError("resource_id", "must not be empty")
	}
	if !validIdentifier(raw) {
		return "", newValidationError("resource_id", "malformed identifier")
	}
	return ResourceID(raw), nil
}

// IsValid reports whether an already-typed value still satisfies the format.
func (id ResourceID) IsValid() bool {
	return validIdentifier(string(id))
}

func (id ResourceID) String() string {
	return string(id)
}

// ClientID identifies a requesting client. Distinct from ResourceID so the
// two cannot be mixed up at call sites.
type ClientID string

// ParseClientID validates a raw string into a ClientID.
func ParseClientID(raw string) (ClientID, error) {
	if raw == "" {
		return "", newValidationError("client_id", "must not be empty")
	}
	if !validIdentifier(raw) {
		return "", newValidationError("client_id", "malformed identifier")
	}
	return ClientID(raw), nil
}

func (id ClientID) IsValid() bool {
	return validIdentifier(string(id))
}

func (id ClientID) String() string {
	return string(id)
}

// ReservationID identifies a reservation. It is either supplied by the caller
// or produced by an injected generator at creation time.
type ReservationID string

// ParseReservationID validates a raw string into a ReservationID.
func ParseReservationID(raw string) (ReservationID, error) {
	if raw == "" {
		return "", newValidationError("reservation_id", "must not be empty")
	}
	if !validIdentifier(raw) {
		return "", newValidationError("reservation_id", "malformed identifier")
	}
	return ReservationID(raw), nil
}

func (id ReservationID) IsValid() bool {
	return validIdentifier(string(id))
}

func (id ReservationID) String() string {
	return string(id)
}
