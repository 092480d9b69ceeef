package domain

// Represents a bundle of drivers and orders submitted for optimization.
//
// A RoutePlan is built by the caller and submitted once. After submission the
// service owns its state and the plan is only referenced by RequestID.
type RoutePlan struct {
	RequestID         string
	CallbackURL       string
	StatusCallbackURL string
	Drivers           []*Driver
	Orders            []*Order

	// Number of load capacities the service should ignore (0-4). Nil leaves the
	// service default.
	NoLoadCapacities *int
}

func NewRoutePlan(requestID, callbackURL, statusCallbackURL string) *RoutePlan {
	return &RoutePlan{
		RequestID:         requestID,
		CallbackURL:       callbackURL,
		StatusCallbackURL: statusCallbackURL,
	}
}

func (p *RoutePlan) AddDriver(d *Driver) {
	p.Drivers = append(p.Drivers, d)
}

func (p *RoutePlan) AddOrder(o *Order) {
	p.Orders = append(p.Orders, o)
}
