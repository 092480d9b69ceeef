package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const finishedResponse = `{
	"creationTime": "2014-12-04T17:01:52",
	"requestId": "1234",
	"success": true,
	"result": {
		"routes": [{
			"driverId": "123",
			"orders": [
				{"scheduledAt": "2014-12-05T08:04", "id": "123"},
				{"scheduledAt": "2014-12-05T08:27", "id": "456"}
			]
		}],
		"unservedOrders": ["789"]
	}
}`

func TestDecodePlanResult(t *testing.T) {
	pr, err := DecodePlanResult([]byte(finishedResponse))
	require.NoError(t, err)

	assert.Equal(t, "1234", pr.RequestID)
	assert.True(t, pr.Success)
	require.NotNil(t, pr.CreationTime)
	assert.Equal(t, time.Date(2014, 12, 4, 17, 1, 52, 0, time.UTC), *pr.CreationTime)

	require.NotNil(t, pr.Result)
	require.Len(t, pr.Result.Routes, 1)
	route := pr.Result.RouteFor("123")
	require.NotNil(t, route)
	require.Len(t, route.Orders, 2)
	assert.Equal(t, "123", route.Orders[0].ID)
	assert.Equal(t, time.Date(2014, 12, 5, 8, 4, 0, 0, time.UTC), route.Orders[0].ScheduledAt)
	assert.Equal(t, "456", route.Orders[1].ID)
	assert.Equal(t, []string{"789"}, pr.Result.UnservedOrders)
}

func TestDecodePlanResultWithoutResult(t *testing.T) {
	pr, err := DecodePlanResult([]byte(`{"requestId":"1234","success":true}`))
	require.NoError(t, err)
	assert.Nil(t, pr.Result)
	assert.Nil(t, pr.CreationTime)
	assert.Equal(t, "1234", pr.RequestID)
}

func TestDecodePlanResultServiceError(t *testing.T) {
	_, err := DecodePlanResult([]byte(`{"success":false,"code":"ERR_REQ_NOT_EXISTING","message":"no such request"}`))

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodeRequestNotExisting, se.Code)
	assert.Equal(t, "no such request", se.Message)
}

func TestDecodePlanResultRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `<html>oops</html>`},
		{"empty", ``},
		{"array", `[1,2,3]`},
		{"truncated", `{"success": true, "result": {`},
		{"wrong type", `{"success": "yes"}`},
		{"bad timestamp", `{"success":true,"result":{"routes":[{"driverId":"1","orders":[{"id":"a","scheduledAt":"tomorrow"}]}]}}`},
		{"route without driver", `{"success":true,"result":{"routes":[{"orders":[]}]}}`},
		{"order without id", `{"success":true,"result":{"routes":[{"driverId":"1","orders":[{"scheduledAt":"2014-12-05T08:04"}]}]}}`},
		{"failure without code", `{"success":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePlanResult([]byte(tt.payload))

			var de *DeserializationError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.payload, string(de.Payload))
		})
	}
}

func TestDecodeEnvelopeKeepsFailure(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"success":false,"code":"ERR_PLANNING_IN_PROGRESS","message":"still running"}`))
	require.NoError(t, err)

	assert.True(t, env.Failed())
	assert.True(t, env.HasErrorPayload())
	assert.Equal(t, CodePlanningInProgress, env.Code)
}

func TestDeserializationErrorTruncatesPayload(t *testing.T) {
	big := make([]byte, 1000)
	for i := range big {
		big[i] = 'x'
	}
	err := &DeserializationError{Reason: "bad", Payload: big}
	assert.Less(t, len(err.Error()), 400)
}
