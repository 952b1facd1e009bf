package server

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/kfsoftware/hlf-console/gql"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/kfsoftware/hlf-console/server/metrics"
	"github.com/lithammer/shortuuid/v3"
	"github.com/pkg/errors"
	"github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	middlewarestd "github.com/slok/go-http-metrics/middleware/std"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

type MetricsRegistry interface {
	IncGraphqlRequest(statusCode int)
	ObserveGraphqlMutation(duration time.Duration)
}

type ConsoleServerOpts struct {
	Address        string
	MetricsAddress string
	// UpstreamURL is the GraphQL endpoint of the console API.
	UpstreamURL string
	// StaticDir, when set, is served at / with index.html as fallback.
	StaticDir string
	TLSConfig *tls.Config
}

type ConsoleServer struct {
	ConsoleServerOpts
	upstream *url.URL
	registry *metrics.Registry
	metrics  MetricsRegistry
	handler  http.Handler

	mu            sync.Mutex
	httpServer    *http.Server
	metricsServer *metrics.MetricsServer
	stopped       bool
	stopCh        chan struct{}
	stopOnce      sync.Once
}

func NewServer(opts ConsoleServerOpts) (*ConsoleServer, error) {
	upstream, err := url.Parse(opts.UpstreamURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid upstream url %s", opts.UpstreamURL)
	}
	if upstream.Scheme != "http" && upstream.Scheme != "https" {
		return nil, errors.Errorf("upstream url %s must be http or https", opts.UpstreamURL)
	}
	if _, err := gql.Schema(); err != nil {
		return nil, err
	}
	registry := metrics.NewRegistry()
	a := &ConsoleServer{
		ConsoleServerOpts: opts,
		upstream:          upstream,
		registry:          registry,
		metrics:           registry,
		stopCh:            make(chan struct{}),
	}
	a.handler = a.setupHttpServer()
	return a, nil
}

// Run serves the console and the metrics endpoint until Stop is called.
// Run after Stop returns without listening.
func (a *ConsoleServer) Run() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.httpServer = &http.Server{
		Addr:      a.Address,
		Handler:   a.Handler(),
		TLSConfig: a.TLSConfig,
	}
	go func() {
		if a.TLSConfig != nil {
			log.Infof("Server listening on https://%s", a.Address)
			a.checkServeErr("server", a.httpServer.ListenAndServeTLS("", ""))
			return
		}
		log.Infof("Server listening on http://%s", a.Address)
		a.checkServeErr("server", a.httpServer.ListenAndServe())
	}()
	if a.MetricsAddress != "" {
		a.metricsServer = metrics.NewMetricsServer(a.MetricsAddress, a.registry)
		go func() {
			log.Infof("Metrics server listening on %s", a.MetricsAddress)
			a.checkServeErr("metrics", a.metricsServer.ListenAndServe())
		}()
	}
	a.mu.Unlock()
	<-a.stopCh
}

// Stop shuts both servers down, waiting for in-flight requests until ctx is done.
func (a *ConsoleServer) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	var err error
	if a.httpServer != nil {
		err = a.httpServer.Shutdown(ctx)
	}
	if a.metricsServer != nil {
		if merr := a.metricsServer.Shutdown(ctx); err == nil {
			err = merr
		}
	}
	a.stopOnce.Do(func() { close(a.stopCh) })
	return err
}

// Handler returns the console routes wrapped in the HTTP metrics middleware.
func (a *ConsoleServer) Handler() http.Handler {
	return a.handler
}

func (a *ConsoleServer) setupHttpServer() http.Handler {
	serverMux := http.NewServeMux()
	serverMux.Handle("/graphql", a.graphqlHandler())
	serverMux.HandleFunc("/playground", playground.Handler("GraphQL", "/graphql"))
	serverMux.HandleFunc(
		"/healthz",
		func(w http.ResponseWriter, request *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, `{"alive": true}`)
		},
	)
	if a.StaticDir != "" {
		serverMux.Handle("/", spaHandler{dir: a.StaticDir})
	}

	mdlw := middleware.New(middleware.Config{
		Recorder: prometheus.NewRecorder(prometheus.Config{
			Registry: a.registry.Registerer(),
		}),
	})
	return middlewarestd.Handler("", mdlw, serverMux)
}

type graphqlParams struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func readParams(r *http.Request) (*graphqlParams, error) {
	params := &graphqlParams{}
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		params.Query = q.Get("query")
		params.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &params.Variables); err != nil {
				return nil, errors.Wrap(err, "variables must be a JSON object")
			}
		}
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return nil, errors.Wrap(err, "failed to read body")
		}
		_ = r.Body.Close()
		if err := json.Unmarshal(body, params); err != nil {
			return nil, errors.Wrap(err, "body must be a GraphQL JSON request")
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
	default:
		return nil, errors.Errorf("method %s not allowed", r.Method)
	}
	if params.Query == "" {
		return nil, errors.New("query is required")
	}
	return params, nil
}

func writeErrors(w http.ResponseWriter, status int, errs gqlerror.List) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": errs})
}

// reject answers a request that never reaches the upstream.
func (a *ConsoleServer) reject(w http.ResponseWriter, status int, errs gqlerror.List) {
	a.metrics.IncGraphqlRequest(status)
	writeErrors(w, status, errs)
}

func (a *ConsoleServer) graphqlHandler() http.Handler {
	proxy := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = a.upstream.Scheme
			req.URL.Host = a.upstream.Host
			req.URL.Path = a.upstream.Path
			req.URL.RawPath = a.upstream.RawPath
			req.Host = a.upstream.Host
			if _, ok := req.Header["User-Agent"]; !ok {
				req.Header.Set("User-Agent", "")
			}
		},
		ModifyResponse: func(resp *http.Response) error {
			a.metrics.IncGraphqlRequest(resp.StatusCode)
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Errorf("request %s: upstream %s failed: %v", r.Header.Get(requestIDHeader), a.upstream, err)
			a.metrics.IncGraphqlRequest(http.StatusBadGateway)
			writeErrors(w, http.StatusBadGateway, gqlerror.List{gqlerror.Errorf("console API unavailable")})
		},
	}
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Access-Control-Allow-Credentials", "true")
		writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Identity")
		writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
		if request.Method == http.MethodOptions {
			writer.WriteHeader(http.StatusOK)
			return
		}

		requestID := request.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = shortuuid.New()
			request.Header.Set(requestIDHeader, requestID)
		}
		writer.Header().Set(requestIDHeader, requestID)

		params, err := readParams(request)
		if err != nil {
			status := http.StatusBadRequest
			if request.Method != http.MethodGet && request.Method != http.MethodPost {
				status = http.StatusMethodNotAllowed
			}
			a.reject(writer, status, gqlerror.List{gqlerror.Errorf("%s", err.Error())})
			return
		}
		doc, err := gql.ValidateDocument(params.Query)
		if err != nil {
			errs, ok := err.(gqlerror.List)
			if !ok {
				errs = gqlerror.List{gqlerror.Errorf("%s", err.Error())}
			}
			log.Debugf("request %s rejected: %v", requestID, err)
			a.reject(writer, http.StatusUnprocessableEntity, errs)
			return
		}
		op, err := gql.OperationType(doc, params.OperationName)
		if err != nil {
			a.reject(writer, http.StatusUnprocessableEntity, gqlerror.List{gqlerror.Errorf("%s", err.Error())})
			return
		}
		if op == ast.Mutation && request.Method != http.MethodPost {
			a.reject(writer, http.StatusMethodNotAllowed, gqlerror.List{gqlerror.Errorf("mutations must be sent with POST")})
			return
		}

		start := time.Now()
		proxy.ServeHTTP(writer, request)
		if op == ast.Mutation {
			a.metrics.ObserveGraphqlMutation(time.Since(start))
		}
		log.WithFields(map[string]interface{}{
			"request_id": requestID,
			"operation":  params.OperationName,
			"type":       op,
			"duration":   time.Since(start),
		}).Debug("graphql request")
	})
}

// spaHandler serves files from dir, answering unknown paths with index.html.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}
	http.FileServer(http.Dir(h.dir)).ServeHTTP(w, r)
}

// checkServeErr checks the error from a .Serve() call to decide if it was a graceful shutdown
func (a *ConsoleServer) checkServeErr(name string, err error) {
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("%s: %v", name, err)
		return
	}
	log.Infof("graceful shutdown %s", name)
}
