package optimo

import "github.com/google/uuid"

// NewRequestID returns a random id suitable for RoutePlan.RequestID.
func NewRequestID() string {
	return uuid.NewString()
}
