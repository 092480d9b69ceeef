package codec

// Request payloads, shaped after the service's JSON schema.

type RoutePlanPayload struct {
	RequestID         string          `json:"requestId" validate:"required"`
	CallbackURL       string          `json:"callbackUrl,omitempty"`
	StatusCallbackURL string          `json:"statusCallbackUrl,omitempty"`
	Drivers           []DriverPayload `json:"drivers" validate:"dive"`
	Orders            []OrderPayload  `json:"orders" validate:"dive"`
	NoLoadCapacities  *int            `json:"noLoadCapacities,omitempty" validate:"omitempty,min=0,max=4"`
}

type DriverPayload struct {
	ID         string             `json:"id" validate:"required"`
	StartLat   *Coordinate        `json:"startLat" validate:"required"`
	StartLng   *Coordinate        `json:"startLng" validate:"required"`
	EndLat     *Coordinate        `json:"endLat" validate:"required"`
	EndLng     *Coordinate        `json:"endLng" validate:"required"`
	WorkShifts []WorkShiftPayload `json:"workShifts" validate:"dive"`
	Skills     []string           `json:"skills,omitempty"`
}

type WorkShiftPayload struct {
	From             *Timestamp         `json:"from" validate:"required"`
	To               *Timestamp         `json:"to" validate:"required"`
	AllowedOvertime  *int               `json:"allowedOvertime,omitempty" validate:"omitempty,min=0"`
	Break            *BreakPayload      `json:"break,omitempty"`
	UnavailableTimes []TimeRangePayload `json:"unavailableTimes,omitempty" validate:"dive"`
}

type BreakPayload struct {
	StartFrom *Timestamp `json:"breakStartFrom" validate:"required"`
	StartTo   *Timestamp `json:"breakStartTo" validate:"required"`
	Duration  int        `json:"breakDuration" validate:"gte=0"`
}

// TimeRangePayload is used for unavailable times and order time windows.
type TimeRangePayload struct {
	From *Timestamp `json:"from" validate:"required"`
	To   *Timestamp `json:"to" validate:"required"`
}

type OrderPayload struct {
	ID             string                 `json:"id" validate:"required"`
	Lat            *Coordinate            `json:"lat" validate:"required"`
	Lng            *Coordinate            `json:"lng" validate:"required"`
	Duration       int                    `json:"duration" validate:"gte=0"`
	TimeWindow     *TimeRangePayload      `json:"tw,omitempty"`
	Priority       string                 `json:"priority,omitempty" validate:"omitempty,oneof=L M H C"`
	Skills         []string               `json:"skills,omitempty"`
	AssignedTo     string                 `json:"assignedTo,omitempty"`
	SchedulingInfo *SchedulingInfoPayload `json:"schedulingInfo,omitempty"`
}

type SchedulingInfoPayload struct {
	ScheduledAt     *Timestamp `json:"scheduledAt" validate:"required"`
	ScheduledDriver string     `json:"scheduledDriver" validate:"required"`
	Locked          bool       `json:"locked"`
}

// StopPayload is the body of a stop_planning call.
type StopPayload struct {
	RequestID string `json:"requestId"`
}

// Response payloads.

// Envelope is every response the service sends. Code and Message are only
// present when Success is false.
type Envelope struct {
	CreationTime *Timestamp     `json:"creationTime,omitempty"`
	RequestID    string         `json:"requestId,omitempty"`
	Success      *bool          `json:"success,omitempty"`
	Code         string         `json:"code,omitempty"`
	Message      string         `json:"message,omitempty"`
	Result       *ResultPayload `json:"result,omitempty"`
}

type ResultPayload struct {
	Routes         []RoutePayload `json:"routes"`
	UnservedOrders []string       `json:"unservedOrders"`
}

type RoutePayload struct {
	DriverID string                  `json:"driverId"`
	Orders   []ScheduledOrderPayload `json:"orders"`
}

type ScheduledOrderPayload struct {
	ID          string    `json:"id"`
	ScheduledAt Timestamp `json:"scheduledAt"`
}

// Failed reports whether the service explicitly answered success=false.
func (e *Envelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// Whether a failed envelope carries the documented code/message pair.
func (e *Envelope) HasErrorPayload() bool {
	return e.Code != "" || e.Message != ""
}
