package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"optimoroute-client/domain"
)

// DecodeEnvelope parses a raw response body. It checks shape only: a failed
// envelope is returned as-is so callers can read Code and Message.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &DeserializationError{Reason: "response is not a JSON object", Payload: data}
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &DeserializationError{Reason: "malformed response", Payload: data, Err: err}
	}

	if env.Result != nil {
		for i, r := range env.Result.Routes {
			if r.DriverID == "" {
				return nil, &DeserializationError{
					Reason:  fmt.Sprintf("result.routes[%d].driverId is missing", i),
					Payload: data,
				}
			}
			for j, o := range r.Orders {
				if o.ID == "" {
					return nil, &DeserializationError{
						Reason:  fmt.Sprintf("result.routes[%d].orders[%d].id is missing", i, j),
						Payload: data,
					}
				}
			}
		}
	}

	return &env, nil
}

// DecodePlanResult parses a get_result (or callback) body into a PlanResult.
//
// A response without "result" decodes to a PlanResult whose Result is nil.
// A response with success=false fails with *ServiceError when the service
// supplied a code or message, and with *DeserializationError otherwise.
func DecodePlanResult(data []byte) (*domain.PlanResult, error) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	if env.Failed() {
		if env.HasErrorPayload() {
			return nil, &ServiceError{Code: env.Code, Message: env.Message}
		}
		return nil, &DeserializationError{Reason: "service reported failure without a code", Payload: data}
	}

	return env.PlanResult(), nil
}

// PlanResult converts the envelope into its domain form.
func (e *Envelope) PlanResult() *domain.PlanResult {
	pr := &domain.PlanResult{
		RequestID: e.RequestID,
		Success:   e.Success != nil && *e.Success,
	}

	if e.CreationTime != nil {
		t := e.CreationTime.Time()
		pr.CreationTime = &t
	}

	if e.Result != nil {
		pr.Result = decodeSolution(e.Result)
	}

	return pr
}

func decodeSolution(rp *ResultPayload) *domain.Solution {
	sol := &domain.Solution{
		Routes:         make([]domain.Route, 0, len(rp.Routes)),
		UnservedOrders: make([]string, 0, len(rp.UnservedOrders)),
	}
	sol.UnservedOrders = append(sol.UnservedOrders, rp.UnservedOrders...)

	for _, r := range rp.Routes {
		route := domain.Route{
			DriverID: r.DriverID,
			Orders:   make([]domain.ScheduledOrder, 0, len(r.Orders)),
		}
		for _, o := range r.Orders {
			route.Orders = append(route.Orders, domain.ScheduledOrder{
				ID:          o.ID,
				ScheduledAt: o.ScheduledAt.Time(),
			})
		}
		sol.Routes = append(sol.Routes, route)
	}

	return sol
}
