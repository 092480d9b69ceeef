package codec

import (
	"fmt"
	"strings"
)

// Error codes the service reports in the "code" field of a failed response.
const (
	CodePlanningInProgress = "ERR_PLANNING_IN_PROGRESS"
	CodeRequestNotExisting = "ERR_REQ_NOT_EXISTING"
	CodeInternal           = "ERR_INTERNAL"
)

// SerializationError reports a missing or invalid field found before a plan is sent.
// Field is the wire path of the offending value, e.g. "drivers[0].startLat".
type SerializationError struct {
	Field  string
	Reason string
}

func (e *SerializationError) Error() string {
	if e.Field == "" {
		return "serialize route plan: " + e.Reason
	}
	return fmt.Sprintf("serialize route plan: %s %s", e.Field, e.Reason)
}

// DeserializationError reports a response payload that does not have the expected shape.
// Payload holds the raw bytes so callers can inspect what the service sent.
type DeserializationError struct {
	Reason  string
	Payload []byte
	Err     error
}

func (e *DeserializationError) Error() string {
	payload := strings.TrimSpace(string(e.Payload))
	if len(payload) > 256 {
		payload = payload[:256] + "..."
	}
	if e.Err != nil {
		return fmt.Sprintf("deserialize response: %s: %v (payload=%s)", e.Reason, e.Err, payload)
	}
	return fmt.Sprintf("deserialize response: %s (payload=%s)", e.Reason, payload)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// ServiceError is the structured failure payload of a response with success=false.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Code == "" {
		return "optimoroute: " + e.Message
	}
	return fmt.Sprintf("optimoroute: %s: %s", e.Code, e.Message)
}
