// Package uid generates identifiers: numeric snowflake IDs for OTP records and
// UUIDv7 strings for correlation and token IDs.
package uid

import "github.com/google/uuid"

// NumberID generates sortable numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// UUID generates UUIDv7 strings, falling back to v4 when the v7 clock source fails.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
