package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRoutePlanKeepsInsertionOrder(t *testing.T) {
	// build test data
	plan := NewRoutePlan("4321", "https://callback.example.com/1", "")

	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		plan.AddDriver(NewDriver(id, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero))
		plan.AddOrder(NewOrder(id, decimal.Zero, decimal.Zero, 10))
	}

	// verify behavior
	if len(plan.Drivers) != len(ids) {
		t.Fatalf("drivers = %d, want %d", len(plan.Drivers), len(ids))
	}
	if len(plan.Orders) != len(ids) {
		t.Fatalf("orders = %d, want %d", len(plan.Orders), len(ids))
	}

	for i, id := range ids {
		if plan.Drivers[i].ID != id {
			t.Errorf("drivers[%d].ID = %q, want %q", i, plan.Drivers[i].ID, id)
		}
		if plan.Orders[i].ID != id {
			t.Errorf("orders[%d].ID = %q, want %q", i, plan.Orders[i].ID, id)
		}
	}
}

func TestDriverAddWorkShift(t *testing.T) {
	day := time.Date(2014, 12, 5, 0, 0, 0, 0, time.UTC)
	drv := NewDriver(
		"123",
		decimal.RequireFromString("53.350046"),
		decimal.RequireFromString("-6.274655"),
		decimal.RequireFromString("53.341191"),
		decimal.RequireFromString("-6.260402"),
	)

	drv.AddWorkShift(NewWorkShift(day.Add(8*time.Hour), day.Add(14*time.Hour)))
	drv.AddWorkShift(NewWorkShift(day.Add(15*time.Hour), day.Add(18*time.Hour)))

	if len(drv.WorkShifts) != 2 {
		t.Fatalf("work shifts = %d, want 2", len(drv.WorkShifts))
	}
	if !drv.WorkShifts[0].From.Equal(day.Add(8 * time.Hour)) {
		t.Errorf("first shift From = %v, want 08:00", drv.WorkShifts[0].From)
	}
	if !drv.WorkShifts[1].From.Equal(day.Add(15 * time.Hour)) {
		t.Errorf("second shift From = %v, want 15:00", drv.WorkShifts[1].From)
	}

	if !drv.StartLat.Valid || drv.StartLat.Decimal.String() != "53.350046" {
		t.Errorf("StartLat = %v, want 53.350046", drv.StartLat)
	}
}

func TestSolutionRouteFor(t *testing.T) {
	s := &Solution{
		Routes: []Route{
			{DriverID: "d1", Orders: []ScheduledOrder{{ID: "o1"}}},
			{DriverID: "d2"},
		},
	}

	if r := s.RouteFor("d1"); r == nil || len(r.Orders) != 1 {
		t.Fatalf("RouteFor(d1) = %+v, want route with 1 order", r)
	}
	if r := s.RouteFor("missing"); r != nil {
		t.Fatalf("RouteFor(missing) = %+v, want nil", r)
	}

	var none *Solution
	if r := none.RouteFor("d1"); r != nil {
		t.Fatalf("nil solution RouteFor = %+v, want nil", r)
	}
}
