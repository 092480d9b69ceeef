package optimo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response bodies are read up to this many bytes; a larger body fails the call.
var maxResponseBytes int64 = 8 << 20

// Service endpoints, relative to BaseURL/Version.
const (
	endpointPlanRoutes   = "plan_routes"
	endpointGetResult    = "get_result"
	endpointStopPlanning = "stop_planning"
)

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.cfg.AccessKey)

	return fmt.Sprintf("%s/%s/%s?%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Version, endpoint, query.Encode())
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req and returns the response body. Any non-2xx status or transport
// failure becomes an *APIError.
func (c *Client) do(ctx context.Context, req *http.Request) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, &APIError{Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return 0, nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return resp.StatusCode, nil, &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(b)) > maxResponseBytes {
		return resp.StatusCode, nil, &APIError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body exceeds %d bytes", maxResponseBytes),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, b, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	return resp.StatusCode, b, nil
}
