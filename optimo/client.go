package optimo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"optimoroute-client/codec"
	"optimoroute-client/domain"
	"optimoroute-client/internal/platform/obs"
)

const userAgent = "optimoroute-client-go"

// Client talks to the OptimoRoute API.
//
// Each operation is a single synchronous HTTP round trip. A Client holds no
// mutable state after New returns and is safe for concurrent use.
type Client struct {
	cfg     Config
	session HTTPDoer
	logger  *log.Logger
	limiter *rate.Limiter
	metrics *Metrics
}

// New validates cfg and returns a Client. Zero BaseURL, Version and Timeout
// take their defaults; AccessKey is required.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		session: &http.Client{Timeout: cfg.Timeout},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }

// Plan submits a route plan for optimization.
//
// The plan is serialized before any network I/O, so a *SerializationError
// means nothing was sent. The returned result only acknowledges the
// submission; poll Get for routes.
func (c *Client) Plan(ctx context.Context, plan *domain.RoutePlan) (_ *domain.PlanSubmitResult, err error) {
	if plan != nil {
		ctx = obs.WithRequestID(ctx, plan.RequestID)
	}
	defer c.observe(ctx, "plan")(&err)

	body, err := codec.MarshalRoutePlan(plan)
	if err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpointURL(endpointPlanRoutes, nil), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	status, b, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan routes %s: %w", plan.RequestID, err)
	}

	out := &domain.PlanSubmitResult{RequestID: plan.RequestID, Accepted: true}
	if len(bytes.TrimSpace(b)) == 0 {
		return out, nil
	}

	env, err := codec.DecodeEnvelope(b)
	if err != nil {
		return nil, fmt.Errorf("plan routes %s: %w", plan.RequestID, err)
	}
	if env.Failed() {
		return nil, fmt.Errorf("plan routes %s: %w", plan.RequestID, envelopeFailure(status, b, env))
	}
	if env.RequestID != "" {
		out.RequestID = env.RequestID
	}

	return out, nil
}

// Get fetches the outcome of a submitted plan.
//
// It returns (nil, nil) while the optimization is still running, either
// because the service reports ERR_PLANNING_IN_PROGRESS or because the
// response carries no result yet.
func (c *Client) Get(ctx context.Context, requestID string) (_ *domain.PlanResult, err error) {
	ctx = obs.WithRequestID(ctx, requestID)
	defer c.observe(ctx, "get")(&err)

	if requestID == "" {
		return nil, fmt.Errorf("get result: %w", ErrEmptyRequestID)
	}

	q := url.Values{}
	q.Set("requestId", requestID)

	req, err := c.newRequest(ctx, http.MethodGet, c.endpointURL(endpointGetResult, q), nil)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}

	status, b, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get result %s: %w", requestID, err)
	}

	env, err := codec.DecodeEnvelope(b)
	if err != nil {
		return nil, fmt.Errorf("get result %s: %w", requestID, err)
	}

	if env.Failed() {
		if env.Code == codec.CodePlanningInProgress {
			return nil, nil
		}
		return nil, fmt.Errorf("get result %s: %w", requestID, envelopeFailure(status, b, env))
	}

	if env.Result == nil {
		return nil, nil
	}

	return env.PlanResult(), nil
}

// Stop asks the service to stop a running optimization.
//
// Any 2xx answer is success, including for a plan that already finished or
// was stopped before.
func (c *Client) Stop(ctx context.Context, requestID string) (err error) {
	ctx = obs.WithRequestID(ctx, requestID)
	defer c.observe(ctx, "stop")(&err)

	if requestID == "" {
		return fmt.Errorf("stop planning: %w", ErrEmptyRequestID)
	}

	body, err := json.Marshal(codec.StopPayload{RequestID: requestID})
	if err != nil {
		return fmt.Errorf("stop planning: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpointURL(endpointStopPlanning, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("stop planning: %w", err)
	}

	if _, b, err := c.do(ctx, req); err != nil {
		return fmt.Errorf("stop planning %s: %w", requestID, err)
	} else if env, derr := codec.DecodeEnvelope(b); derr == nil && env.Failed() {
		c.logger.Printf("req_id=%s op=optimo.stop ignored code=%s message=%q", requestID, env.Code, env.Message)
	}

	return nil
}

func (c *Client) observe(ctx context.Context, op string) func(*error) {
	logDone := obs.Time(ctx, c.logger, "optimo."+op)
	start := time.Now()

	return func(errp *error) {
		logDone(errp)
		c.metrics.observe(op, outcome(*errp), time.Since(start))
	}
}

func outcome(err error) string {
	var (
		se *codec.SerializationError
		de *codec.DeserializationError
		ae *APIError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &se):
		return "serialization_error"
	case errors.As(err, &ae):
		return "api_error"
	case errors.As(err, &de):
		return "deserialization_error"
	default:
		return "error"
	}
}
