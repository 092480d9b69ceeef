package domain

import "time"

// Represents a time window during which a driver is available for work.
// From must be before To; the remote service rejects shifts that violate this.
type WorkShift struct {
	From time.Time
	To   time.Time

	// Minutes the driver may work past To. Nil leaves the service default.
	AllowedOvertime  *int
	Break            *Break
	UnavailableTimes []UnavailableTime
}

func NewWorkShift(from, to time.Time) WorkShift {
	return WorkShift{From: from, To: to}
}

// Represents a break the service schedules somewhere inside a work shift.
// The break starts between StartFrom and StartTo and lasts Duration minutes.
type Break struct {
	StartFrom time.Time
	StartTo   time.Time
	Duration  int
}

// A period inside a work shift when the driver cannot serve orders.
type UnavailableTime struct {
	From time.Time
	To   time.Time
}
