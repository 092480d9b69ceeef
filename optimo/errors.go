package optimo

import (
	"errors"
	"fmt"

	"optimoroute-client/codec"
)

var (
	// ErrEmptyRequestID is returned by Get and Stop before any I/O.
	ErrEmptyRequestID = errors.New("optimoroute: request id is empty")
	// ErrInvalidConfig wraps every configuration problem reported by New.
	ErrInvalidConfig = errors.New("optimoroute: invalid config")
)

type (
	SerializationError   = codec.SerializationError
	DeserializationError = codec.DeserializationError
	ServiceError         = codec.ServiceError
)

// APIError reports a failed call to the service.
//
// StatusCode is 0 when no response was received; Err then holds the transport
// error. Code and Message are set when the service answered success=false.
type APIError struct {
	StatusCode int
	Body       string
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("optimoroute api: %v", e.Err)
	case e.Code != "" || e.Message != "":
		return fmt.Sprintf("optimoroute api: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	default:
		return fmt.Sprintf("optimoroute api: status %d: %s", e.StatusCode, e.Body)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// envelopeFailure converts a success=false envelope into *APIError when the
// service named a code or message, and into *DeserializationError otherwise.
func envelopeFailure(status int, body []byte, env *codec.Envelope) error {
	if !env.HasErrorPayload() {
		return &codec.DeserializationError{Reason: "service reported failure without a code", Payload: body}
	}

	se := &codec.ServiceError{Code: env.Code, Message: env.Message}
	return &APIError{
		StatusCode: status,
		Body:       string(body),
		Code:       se.Code,
		Message:    se.Message,
		Err:        se,
	}
}
