package utils

import "github.com/google/uuid"

// GenerateRequestID produces a collision-resistant identifier for a single
// inbound request. UUIDv7 is preferred for its time-ordered prefix; on the
// unlikely generation failure a random v4 UUID is returned instead.
func GenerateRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
