package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is a custom type that wraps a UUID string.
// It is used for application-level keys and security stamps, distinct from
// the graph engine's internal node identifiers.
type ID string

// NewID generates a new UUID v4 and returns it as an ID.
// It never fails: uuid.New() uses crypto/rand which panics only on
// system-level entropy failures.
func NewID() ID {
	return ID(uuid.New().String())
}

// ParseID parses and validates a string as a UUID, returning an ID.
// It returns an error if the string is not a valid UUID format.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid UUID format: %w", err)
	}

	return ID(parsed.String()), nil
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// IsZero checks if the ID is empty or zero-valued.
func (id ID) IsZero() bool {
	return id == ""
}
