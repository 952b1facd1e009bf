package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hlf_console"

// Registry holds the console's own collectors. The HTTP middleware
// registers its collectors into the same registry.
type Registry struct {
	registry        *prometheus.Registry
	graphqlRequests *prometheus.CounterVec
	mutationLatency prometheus.Histogram
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		graphqlRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "GraphQL requests answered by the gateway, by response status code.",
		}, []string{"code"}),
		mutationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "mutation_duration_seconds",
			Help:      "Time taken by the API to answer mutations.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(r.graphqlRequests, r.mutationLatency)
	return r
}

func (r *Registry) IncGraphqlRequest(statusCode int) {
	r.graphqlRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (r *Registry) ObserveGraphqlMutation(duration time.Duration) {
	r.mutationLatency.Observe(duration.Seconds())
}

func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Handler serves the registry together with the process collectors of the
// default gatherer.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.Gatherers{
		r.registry,
		prometheus.DefaultGatherer,
	}, promhttp.HandlerOpts{})
}

type MetricsServer struct {
	*http.Server
}

// NewMetricsServer returns a new prometheus server which collects console metrics
func NewMetricsServer(address string, registry *Registry) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	return &MetricsServer{
		Server: &http.Server{
			Addr:    address,
			Handler: mux,
		},
	}
}
