package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format used by the service: ISO-8601 without an offset.
const TimeLayout = "2006-01-02T15:04"

const timeLayoutSeconds = "2006-01-02T15:04:05"

// Timestamp is a wall-clock time in the service's text format. Seconds are only
// written when they are non-zero.
type Timestamp time.Time

func NewTimestamp(t time.Time) *Timestamp {
	if t.IsZero() {
		return nil
	}
	ts := Timestamp(t)
	return &ts
}

func (t Timestamp) Time() time.Time { return time.Time(t) }

// WallClock is the value as it appears on the wire: the local fields of t,
// truncated to the second, read as UTC. Two timestamps in different zones
// order by WallClock the way the service will order them.
func (t Timestamp) WallClock() time.Time {
	tt := time.Time(t)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), tt.Hour(), tt.Minute(), tt.Second(), 0, time.UTC)
}

func (t Timestamp) String() string {
	tt := time.Time(t)
	if tt.Second() != 0 {
		return tt.Format(timeLayoutSeconds)
	}
	return tt.Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range []string{TimeLayout, timeLayoutSeconds, time.RFC3339} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}

	return fmt.Errorf("timestamp %q does not match %s", s, TimeLayout)
}

// Coordinate is a decimal degree written to JSON as a bare number with the
// exact digits it was created from.
type Coordinate decimal.Decimal

func NewCoordinate(d decimal.NullDecimal) *Coordinate {
	if !d.Valid {
		return nil
	}
	c := Coordinate(d.Decimal)
	return &c
}

func (c Coordinate) Decimal() decimal.Decimal { return decimal.Decimal(c) }

// String keeps trailing zeros, so "53.341820" is not shortened to "53.34182".
func (c Coordinate) String() string {
	d := decimal.Decimal(c)
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	*c = Coordinate(d)
	return nil
}
