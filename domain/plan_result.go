package domain

import "time"

// Outcome of a finished (or still running) optimization as reported by the service.
// PlanResult values are only produced by decoding a service response.
type PlanResult struct {
	// Nil when the service omitted creationTime.
	CreationTime *time.Time
	RequestID    string
	Success      bool
	// Nil while the optimization has not finished.
	Result *Solution
}

// Routes planned by the service plus the orders it could not fit into any route.
type Solution struct {
	Routes         []Route
	UnservedOrders []string
}

// The ordered stops assigned to one driver.
type Route struct {
	DriverID string
	Orders   []ScheduledOrder
}

type ScheduledOrder struct {
	ID          string
	ScheduledAt time.Time
}

// Acknowledgement returned when a plan is submitted.
type PlanSubmitResult struct {
	RequestID string
	Accepted  bool
}

// Return the route planned for driverID, or nil.
func (s *Solution) RouteFor(driverID string) *Route {
	if s == nil {
		return nil
	}
	for i := range s.Routes {
		if s.Routes[i].DriverID == driverID {
			return &s.Routes[i]
		}
	}
	return nil
}
