package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.IncGraphqlRequest(http.StatusOK)
	r.IncGraphqlRequest(http.StatusOK)
	r.IncGraphqlRequest(http.StatusBadGateway)
	r.ObserveGraphqlMutation(150 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.graphqlRequests.WithLabelValues("200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.graphqlRequests.WithLabelValues("502")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.graphqlRequests))
}

func TestMetricsServer(t *testing.T) {
	r := NewRegistry()
	r.IncGraphqlRequest(http.StatusOK)
	r.ObserveGraphqlMutation(time.Second)
	srv := NewMetricsServer(":0", r)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `hlf_console_graphql_requests_total{code="200"} 1`)
	assert.Contains(t, string(body), "hlf_console_graphql_mutation_duration_seconds_count 1")
	assert.Contains(t, string(body), "go_goroutines")
}
