package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestTimeLogsOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	ctx := WithRequestID(context.Background(), "abc")
	func() {
		var err error
		defer Time(ctx, logger, "optimo.Plan")(&err)
	}()

	line := buf.String()
	if !strings.HasPrefix(line, "req_id=abc op=optimo.Plan dur=") {
		t.Fatalf("log line = %q", line)
	}
	if strings.Contains(line, "err=") {
		t.Fatalf("log line = %q, want no err field", line)
	}
}

func TestTimeLogsError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	func() {
		err := errors.New("boom")
		defer Time(context.Background(), logger, "op")(&err)
	}()

	if !strings.Contains(buf.String(), "err=boom") {
		t.Fatalf("log line = %q, want err=boom", buf.String())
	}
}

func TestWithRequestIDKeepsExisting(t *testing.T) {
	ctx := WithRequestID(context.Background(), "first")
	ctx = WithRequestID(ctx, "second")

	if got := RequestID(ctx); got != "first" {
		t.Fatalf("RequestID = %q, want %q", got, "first")
	}
}
