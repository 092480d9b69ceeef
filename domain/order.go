package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order priorities understood by the service. An empty Priority leaves the
// service default (PriorityMedium).
const (
	PriorityLow      = "L"
	PriorityMedium   = "M"
	PriorityHigh     = "H"
	PriorityCritical = "C"
)

// Represents a stop that requires a visit of Duration minutes at a location.
type Order struct {
	ID       string
	Lat      decimal.NullDecimal
	Lng      decimal.NullDecimal
	Duration int

	TimeWindow     *TimeWindow
	Priority       string
	Skills         []string
	AssignedTo     string
	SchedulingInfo *SchedulingInfo
}

func NewOrder(id string, lat, lng decimal.Decimal, duration int) *Order {
	return &Order{
		ID:       id,
		Lat:      decimal.NewNullDecimal(lat),
		Lng:      decimal.NewNullDecimal(lng),
		Duration: duration,
	}
}

// Window in which the order must be served.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Pre-existing schedule for an order. When Locked is set the service keeps the
// order with ScheduledDriver at ScheduledAt instead of re-planning it.
type SchedulingInfo struct {
	ScheduledAt     time.Time
	ScheduledDriver string
	Locked          bool
}
