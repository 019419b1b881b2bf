package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/metrics"
)

func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorder_Actions(t *testing.T) {
	r := metrics.NewRecorder()

	r.Action("AddDay", nil)
	r.Action("AddDay", nil)
	r.Action("RemoveDay", errors.New("not found"))

	out := scrape(t, r)
	assert.Contains(t, out, `tripbuilder_actions_total{action="AddDay",result="ok"} 2`)
	assert.Contains(t, out, `tripbuilder_actions_total{action="RemoveDay",result="error"} 1`)
}

func TestRecorder_Publish(t *testing.T) {
	r := metrics.NewRecorder()

	r.Publish("PublishTrip", 250*time.Millisecond, nil)

	out := scrape(t, r)
	assert.Contains(t, out, `tripbuilder_publish_duration_seconds_count{kind="PublishTrip",result="ok"} 1`)
	assert.Contains(t, out, "go_goroutines")
}
