package optimo

import (
	"log"

	"golang.org/x/time/rate"
)

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client. Config.Timeout is not
// applied to a caller-supplied client.
func WithHTTPClient(h HTTPDoer) Option {
	return func(c *Client) { c.session = h }
}

// WithLogger enables timing lines for every call. The default logger discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimiter paces outgoing calls; each call waits on l before it is sent.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}
