// Package callback receives the completion notification OptimoRoute posts to
// a plan's callbackUrl.
package callback

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"optimoroute-client/codec"
	"optimoroute-client/domain"
	"optimoroute-client/internal/platform/obs"
)

// MaxBodyBytes caps the size of an accepted callback body.
const MaxBodyBytes = 8 << 20

// ResultFunc receives every decoded callback. Returning an error makes the
// handler answer 500.
type ResultFunc func(ctx context.Context, result *domain.PlanResult) error

type handler struct {
	fn     ResultFunc
	logger *log.Logger
}

// NewHandler returns an http.Handler that decodes posted results and passes
// them to fn. A nil logger discards log output.
//
// Responses: 204 when fn succeeded or the service reported a failure, 400 for
// a body that cannot be decoded, 405 for anything but POST, 500 when fn fails.
// Every request ends with one access line carrying the status it was given.
func NewHandler(fn ResultFunc, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &handler{fn: fn, logger: logger}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID, status := h.serve(w, r)

	h.logger.Printf("callback req_id=%s method=%s path=%s status=%d dur=%dms",
		reqID, r.Method, r.URL.Path, status, time.Since(start).Milliseconds())
}

// serve writes the response and reports the request id (when decoded) and status.
func (h *handler) serve(w http.ResponseWriter, r *http.Request) (string, int) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, h.logger, http.StatusMethodNotAllowed, "method not allowed")
		return "", http.StatusMethodNotAllowed
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeError(w, r, h.logger, http.StatusBadRequest, "read body: "+err.Error())
		return "", http.StatusBadRequest
	}

	result, err := codec.DecodePlanResult(body)
	if err != nil {
		var se *codec.ServiceError
		if errors.As(err, &se) {
			h.logger.Printf("callback service failure code=%s message=%q", se.Code, se.Message)
			w.WriteHeader(http.StatusNoContent)
			return "", http.StatusNoContent
		}
		writeError(w, r, h.logger, http.StatusBadRequest, err.Error())
		return "", http.StatusBadRequest
	}

	ctx := obs.WithRequestID(r.Context(), result.RequestID)
	if err := h.fn(ctx, result); err != nil {
		h.logger.Printf("req_id=%s callback handler failed: %v", result.RequestID, err)
		writeError(w, r, h.logger, http.StatusInternalServerError, "handle result")
		return result.RequestID, http.StatusInternalServerError
	}

	w.WriteHeader(http.StatusNoContent)
	return result.RequestID, http.StatusNoContent
}
