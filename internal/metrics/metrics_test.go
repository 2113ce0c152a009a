package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("ListingsQuery", "error"))

	ObserveUpstream("ListingsQuery", errors.New("boom"), 10*time.Millisecond)
	ObserveUpstream("ListingsQuery", nil, 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("ListingsQuery", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(upstreamRequests.WithLabelValues("ListingsQuery", "ok")), 1.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveHTTP("/all-listings", "200")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "marketplace_http_requests_total")
}
