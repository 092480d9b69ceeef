package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID tags ctx with id unless it already carries one.
func WithRequestID(ctx context.Context, id string) context.Context {
	if existing, _ := ctx.Value(RequestIDKey).(string); existing != "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of an operation and its error, if any. Use as
// `defer obs.Time(ctx, logger, "op")(&err)`.
func Time(ctx context.Context, logger *log.Logger, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		logger.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
