package callback

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optimoroute-client/domain"
	"optimoroute-client/internal/platform/obs"
)

const finished = `{"creationTime":"2014-12-04T17:01:52","requestId":"1234","success":true,"result":{"routes":[{"driverId":"123","orders":[{"scheduledAt":"2014-12-05T08:04","id":"123"},{"scheduledAt":"2014-12-05T08:27","id":"456"}]}],"unservedOrders":[]}}`

func TestHandlerDeliversResult(t *testing.T) {
	var got *domain.PlanResult
	var gotReqID string
	h := NewHandler(func(ctx context.Context, r *domain.PlanResult) error {
		got = r
		gotReqID = obs.RequestID(ctx)
		return nil
	}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/optimo/done", strings.NewReader(finished)))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "1234", got.RequestID)
	assert.Equal(t, "1234", gotReqID)
	route := got.Result.RouteFor("123")
	require.NotNil(t, route)
	assert.Len(t, route.Orders, 2)
}

func TestHandlerRejects(t *testing.T) {
	called := false
	fn := func(context.Context, *domain.PlanResult) error {
		called = true
		return nil
	}

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"get", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"not json", http.MethodPost, "hello", http.StatusBadRequest},
		{"bad shape", http.MethodPost, `{"success":true,"result":{"routes":[{"orders":[]}]}}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(fn, nil).ServeHTTP(rec, httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.False(t, called)
}

func TestHandlerServiceFailureIsAcknowledged(t *testing.T) {
	var buf bytes.Buffer
	called := false
	h := NewHandler(func(context.Context, *domain.PlanResult) error {
		called = true
		return nil
	}, log.New(&buf, "", 0))

	rec := httptest.NewRecorder()
	body := `{"success":false,"code":"ERR_INTERNAL","message":"boom"}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
	assert.Contains(t, buf.String(), "code=ERR_INTERNAL")
}

func TestHandlerCallbackError(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(func(context.Context, *domain.PlanResult) error {
		return errors.New("store failed")
	}, log.New(&buf, "", 0))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/done", strings.NewReader(finished)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "store failed")
	assert.Contains(t, buf.String(), "callback req_id=1234 method=POST path=/done status=500")
}

func TestHandlerAccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(func(context.Context, *domain.PlanResult) error { return nil }, log.New(&buf, "", 0))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/done", strings.NewReader(finished)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/done", nil))

	logs := buf.String()
	assert.Contains(t, logs, "callback req_id=1234 method=POST path=/done status=204")
	assert.Contains(t, logs, "callback req_id= method=PUT path=/done status=405")
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
