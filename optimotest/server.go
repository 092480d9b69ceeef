// Package optimotest runs an in-process stand-in for the OptimoRoute API.
//
// The fake keeps submitted plans in memory and never optimizes anything: a
// test decides when a plan finishes by calling Complete or SetResult.
package optimotest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"optimoroute-client/codec"
)

// Error codes returned by the fake besides the ones the codec package knows.
const CodeAuthFailed = "ERR_AUTH"

type cannedResponse struct {
	status int
	body   string
}

type planState struct {
	payload *codec.RoutePlanPayload
	result  *codec.ResultPayload
	stopped bool
}

// Server is a fake OptimoRoute API served over real HTTP.
type Server struct {
	*httptest.Server

	AccessKey string
	Version   string

	mu     sync.Mutex
	plans  map[string]*planState
	canned map[string][]cannedResponse
	calls  map[string]int
}

// NewServer starts a fake service that accepts accessKey on API version v1.
// An empty accessKey is replaced with a random one.
func NewServer(accessKey string) *Server {
	if accessKey == "" {
		accessKey = uuid.NewString()
	}

	s := &Server{
		AccessKey: accessKey,
		Version:   "v1",
		plans:     make(map[string]*planState),
		canned:    make(map[string][]cannedResponse),
		calls:     make(map[string]int),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	g := e.Group("/:version", s.checkRequest)
	g.POST("/plan_routes", s.planRoutes)
	g.GET("/get_result", s.getResult)
	g.POST("/stop_planning", s.stopPlanning)

	s.Server = httptest.NewServer(e)
	return s
}

// RespondNext makes the next call to endpoint ("plan_routes", "get_result" or
// "stop_planning") answer with status and body instead of the fake's logic.
func (s *Server) RespondNext(endpoint string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[endpoint] = append(s.canned[endpoint], cannedResponse{status: status, body: body})
}

// Calls reports how many requests reached endpoint, rejected ones included.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// Plan returns the payload submitted under requestID.
func (s *Server) Plan(requestID string) (*codec.RoutePlanPayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[requestID]
	if !ok {
		return nil, false
	}
	return p.payload, true
}

// Stopped reports whether stop_planning was called for requestID.
func (s *Server) Stopped(requestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[requestID]
	return ok && p.stopped
}

// SetResult finishes requestID with the given result.
func (s *Server) SetResult(requestID string, result *codec.ResultPayload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[requestID]
	if !ok {
		return false
	}
	p.result = result
	return true
}

// Complete finishes requestID with a naive schedule: orders are dealt to
// drivers round-robin in submission order and served back to back from the
// start of each driver's first shift. Without drivers every order is unserved.
func (s *Server) Complete(requestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[requestID]
	if !ok {
		return false
	}
	p.result = schedule(p.payload)
	return true
}

func schedule(plan *codec.RoutePlanPayload) *codec.ResultPayload {
	res := &codec.ResultPayload{
		Routes:         make([]codec.RoutePayload, 0, len(plan.Drivers)),
		UnservedOrders: make([]string, 0),
	}
	if len(plan.Drivers) == 0 {
		for _, o := range plan.Orders {
			res.UnservedOrders = append(res.UnservedOrders, o.ID)
		}
		return res
	}

	clocks := make([]time.Time, len(plan.Drivers))
	for i, d := range plan.Drivers {
		res.Routes = append(res.Routes, codec.RoutePayload{
			DriverID: d.ID,
			Orders:   make([]codec.ScheduledOrderPayload, 0),
		})
		if len(d.WorkShifts) > 0 && d.WorkShifts[0].From != nil {
			clocks[i] = d.WorkShifts[0].From.Time()
		}
	}

	for i, o := range plan.Orders {
		di := i % len(plan.Drivers)
		res.Routes[di].Orders = append(res.Routes[di].Orders, codec.ScheduledOrderPayload{
			ID:          o.ID,
			ScheduledAt: codec.Timestamp(clocks[di]),
		})
		clocks[di] = clocks[di].Add(time.Duration(o.Duration) * time.Minute)
	}

	return res
}

func (s *Server) checkRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		endpoint := endpointOf(c.Path())

		s.mu.Lock()
		s.calls[endpoint]++
		s.mu.Unlock()

		if c.Param("version") != s.Version {
			return c.JSON(http.StatusNotFound, failure("ERR_NOT_FOUND", "unknown API version"))
		}
		if c.QueryParam("key") != s.AccessKey {
			return c.JSON(http.StatusUnauthorized, failure(CodeAuthFailed, "invalid access key"))
		}

		s.mu.Lock()
		var canned *cannedResponse
		if q := s.canned[endpoint]; len(q) > 0 {
			canned = &q[0]
			s.canned[endpoint] = q[1:]
		}
		s.mu.Unlock()

		if canned != nil {
			return c.Blob(canned.status, echo.MIMEApplicationJSONCharsetUTF8, []byte(canned.body))
		}

		return next(c)
	}
}

func (s *Server) planRoutes(c echo.Context) error {
	var payload codec.RoutePlanPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, failure("ERR_BAD_REQUEST", err.Error()))
	}
	if payload.RequestID == "" {
		return c.JSON(http.StatusOK, failure("ERR_BAD_REQUEST", "requestId is missing"))
	}

	s.mu.Lock()
	s.plans[payload.RequestID] = &planState{payload: &payload}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, codec.Envelope{RequestID: payload.RequestID, Success: boolPtr(true)})
}

func (s *Server) getResult(c echo.Context) error {
	requestID := c.QueryParam("requestId")

	s.mu.Lock()
	p, ok := s.plans[requestID]
	var result *codec.ResultPayload
	if ok {
		result = p.result
	}
	s.mu.Unlock()

	switch {
	case !ok:
		return c.JSON(http.StatusOK, failure(codec.CodeRequestNotExisting, "request "+requestID+" does not exist"))
	case result == nil:
		return c.JSON(http.StatusOK, failure(codec.CodePlanningInProgress, "planning is in progress"))
	}

	return c.JSON(http.StatusOK, codec.Envelope{
		CreationTime: codec.NewTimestamp(time.Now().UTC().Truncate(time.Second)),
		RequestID:    requestID,
		Success:      boolPtr(true),
		Result:       result,
	})
}

func (s *Server) stopPlanning(c echo.Context) error {
	var payload codec.StopPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, failure("ERR_BAD_REQUEST", err.Error()))
	}

	s.mu.Lock()
	p, ok := s.plans[payload.RequestID]
	if ok {
		p.stopped = true
	}
	s.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusOK, failure(codec.CodeRequestNotExisting, "request "+payload.RequestID+" does not exist"))
	}
	return c.JSON(http.StatusOK, codec.Envelope{RequestID: payload.RequestID, Success: boolPtr(true)})
}

func endpointOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func failure(code, message string) codec.Envelope {
	return codec.Envelope{Success: boolPtr(false), Code: code, Message: message}
}

func boolPtr(b bool) *bool { return &b }
