package codec

import (
	"encoding/json"
	"fmt"

	"optimoroute-client/domain"
)

// EncodeRoutePlan maps a RoutePlan onto the service's request payload.
//
// Drivers, orders and work shifts keep their insertion order. The payload is
// validated before it is returned, so a nil error means every required field
// is present.
func EncodeRoutePlan(plan *domain.RoutePlan) (*RoutePlanPayload, error) {
	if plan == nil {
		return nil, &SerializationError{Reason: "route plan is nil"}
	}

	p := &RoutePlanPayload{
		RequestID:         plan.RequestID,
		CallbackURL:       plan.CallbackURL,
		StatusCallbackURL: plan.StatusCallbackURL,
		Drivers:           make([]DriverPayload, 0, len(plan.Drivers)),
		Orders:            make([]OrderPayload, 0, len(plan.Orders)),
		NoLoadCapacities:  plan.NoLoadCapacities,
	}

	for i, d := range plan.Drivers {
		if d == nil {
			return nil, &SerializationError{Field: fmt.Sprintf("drivers[%d]", i), Reason: "is nil"}
		}
		p.Drivers = append(p.Drivers, encodeDriver(d))
	}

	for i, o := range plan.Orders {
		if o == nil {
			return nil, &SerializationError{Field: fmt.Sprintf("orders[%d]", i), Reason: "is nil"}
		}
		p.Orders = append(p.Orders, encodeOrder(o))
	}

	if err := validate.Struct(p); err != nil {
		return nil, toSerializationError(err)
	}

	return p, nil
}

// MarshalRoutePlan encodes and marshals a RoutePlan into the request body.
func MarshalRoutePlan(plan *domain.RoutePlan) ([]byte, error) {
	p, err := EncodeRoutePlan(plan)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal route plan: %w", err)
	}

	return b, nil
}

func encodeDriver(d *domain.Driver) DriverPayload {
	shifts := make([]WorkShiftPayload, 0, len(d.WorkShifts))
	for _, ws := range d.WorkShifts {
		shifts = append(shifts, encodeWorkShift(ws))
	}

	return DriverPayload{
		ID:         d.ID,
		StartLat:   NewCoordinate(d.StartLat),
		StartLng:   NewCoordinate(d.StartLng),
		EndLat:     NewCoordinate(d.EndLat),
		EndLng:     NewCoordinate(d.EndLng),
		WorkShifts: shifts,
		Skills:     d.Skills,
	}
}

func encodeWorkShift(ws domain.WorkShift) WorkShiftPayload {
	out := WorkShiftPayload{
		From:            NewTimestamp(ws.From),
		To:              NewTimestamp(ws.To),
		AllowedOvertime: ws.AllowedOvertime,
	}

	if ws.Break != nil {
		out.Break = &BreakPayload{
			StartFrom: NewTimestamp(ws.Break.StartFrom),
			StartTo:   NewTimestamp(ws.Break.StartTo),
			Duration:  ws.Break.Duration,
		}
	}

	for _, ut := range ws.UnavailableTimes {
		out.UnavailableTimes = append(out.UnavailableTimes, TimeRangePayload{
			From: NewTimestamp(ut.From),
			To:   NewTimestamp(ut.To),
		})
	}

	return out
}

func encodeOrder(o *domain.Order) OrderPayload {
	out := OrderPayload{
		ID:         o.ID,
		Lat:        NewCoordinate(o.Lat),
		Lng:        NewCoordinate(o.Lng),
		Duration:   o.Duration,
		Priority:   o.Priority,
		Skills:     o.Skills,
		AssignedTo: o.AssignedTo,
	}

	if o.TimeWindow != nil {
		out.TimeWindow = &TimeRangePayload{
			From: NewTimestamp(o.TimeWindow.From),
			To:   NewTimestamp(o.TimeWindow.To),
		}
	}

	if si := o.SchedulingInfo; si != nil {
		out.SchedulingInfo = &SchedulingInfoPayload{
			ScheduledAt:     NewTimestamp(si.ScheduledAt),
			ScheduledDriver: si.ScheduledDriver,
			Locked:          si.Locked,
		}
	}

	return out
}
