package domain

import "github.com/shopspring/decimal"

// Represents a vehicle/worker with start and end locations and one or more work shifts.
//
// Coordinates are decimals so that values typed by the caller reach the service
// unchanged. A coordinate with Valid == false is treated as absent.
type Driver struct {
	ID         string
	StartLat   decimal.NullDecimal
	StartLng   decimal.NullDecimal
	EndLat     decimal.NullDecimal
	EndLng     decimal.NullDecimal
	WorkShifts []WorkShift
	Skills     []string
}

func NewDriver(id string, startLat, startLng, endLat, endLng decimal.Decimal) *Driver {
	return &Driver{
		ID:       id,
		StartLat: decimal.NewNullDecimal(startLat),
		StartLng: decimal.NewNullDecimal(startLng),
		EndLat:   decimal.NewNullDecimal(endLat),
		EndLng:   decimal.NewNullDecimal(endLng),
	}
}

// Append a work shift, keeping insertion order.
func (d *Driver) AddWorkShift(ws WorkShift) {
	d.WorkShifts = append(d.WorkShifts, ws)
}
