package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/99designs/gqlgen/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetrics struct {
	mu        sync.Mutex
	requests  map[int]int
	mutations int
}

func (m *fakeMetrics) IncGraphqlRequest(statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.requests == nil {
		m.requests = map[int]int{}
	}
	m.requests[statusCode]++
}

func (m *fakeMetrics) ObserveGraphqlMutation(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
}

type upstreamCall struct {
	path      string
	requestID string
	body      map[string]interface{}
}

func newTestServer(t *testing.T, upstreamBody string) (*ConsoleServer, *fakeMetrics, chan upstreamCall) {
	calls := make(chan upstreamCall, 10)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls <- upstreamCall{path: r.URL.Path, requestID: r.Header.Get(requestIDHeader), body: body}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, upstreamBody)
	}))
	t.Cleanup(upstream.Close)

	s, err := NewServer(ConsoleServerOpts{UpstreamURL: upstream.URL + "/api/graphql"})
	require.NoError(t, err)
	m := &fakeMetrics{}
	s.metrics = m
	return s, m, calls
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestQueryIsProxied(t *testing.T) {
	s, m, calls := newTestServer(t, `{"data": {"peers": [{"name": "org1-peer0", "namespace": "default"}]}}`)
	c := client.New(s.Handler(), client.Path("/graphql"))

	var resp struct {
		Peers []struct {
			Name      string
			Namespace string
		}
	}
	err := c.Post(`query GetPeers { peers { name namespace } }`, &resp, client.Operation("GetPeers"))
	require.NoError(t, err)
	require.Len(t, resp.Peers, 1)
	assert.Equal(t, "org1-peer0", resp.Peers[0].Name)

	call := <-calls
	assert.Equal(t, "/api/graphql", call.path)
	assert.NotEmpty(t, call.requestID)
	assert.Equal(t, "GetPeers", call.body["operationName"])
	assert.Equal(t, 1, m.requests[http.StatusOK])
	assert.Equal(t, 0, m.mutations)
}

func TestRequestIDIsKept(t *testing.T) {
	s, _, calls := newTestServer(t, `{"data": {"channels": []}}`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": "{ channels { name } }"}`))
	req.Header.Set(requestIDHeader, "req-1")
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
	assert.Equal(t, "req-1", (<-calls).requestID)
}

func TestMutationDurationIsObserved(t *testing.T) {
	s, m, calls := newTestServer(t, `{"data": {"createPeer": {"name": "p", "namespace": "n", "yaml": ""}}}`)

	rec := post(t, s.Handler(), `{
		"query": "mutation CreatePeer($input: CreatePeerInput!) { createPeer(input: $input) { name namespace yaml } }",
		"variables": {"input": {"yaml": "kind: FabricPeer"}}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	call := <-calls
	assert.Equal(t, map[string]interface{}{"input": map[string]interface{}{"yaml": "kind: FabricPeer"}}, call.body["variables"])
	assert.Equal(t, 1, m.mutations)
}

func TestInvalidDocumentIsRejected(t *testing.T) {
	s, m, calls := newTestServer(t, `{"data": null}`)

	rec := post(t, s.Handler(), `{"query": "{ peers { name unknownField } }"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Errors)
	assert.Contains(t, body.Errors[0].Message, "unknownField")
	assert.Empty(t, calls)

	rec = post(t, s.Handler(), `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, s.Handler(), `{"query": "query A { peers { name } } query B { cas { name } }"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Empty(t, calls)
	assert.Equal(t, map[int]int{
		http.StatusUnprocessableEntity: 2,
		http.StatusBadRequest:          1,
		http.StatusMethodNotAllowed:    1,
	}, m.requests)
}

func TestGetQueriesAndMutations(t *testing.T) {
	s, m, calls := newTestServer(t, `{"data": {"namespaces": []}}`)

	q := url.Values{"query": {"{ namespaces { name } }"}}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, calls, 1)

	q = url.Values{
		"query":     {"mutation($input: CreateCAInput!) { createCA(input: $input) { name } }"},
		"variables": {`{"input": {"yaml": "x"}}`},
	}
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Len(t, calls, 1)
	assert.Equal(t, map[int]int{http.StatusOK: 1, http.StatusMethodNotAllowed: 1}, m.requests)
}

func TestCORSPreflight(t *testing.T) {
	s, _, _ := newTestServer(t, `{}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/graphql", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "POST, OPTIONS, GET, PUT", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestUpstreamUnavailable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstreamURL := upstream.URL
	upstream.Close()

	s, err := NewServer(ConsoleServerOpts{UpstreamURL: upstreamURL + "/graphql"})
	require.NoError(t, err)
	m := &fakeMetrics{}
	s.metrics = m

	rec := post(t, s.Handler(), `{"query": "{ cas { name } }"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "console API unavailable")
	assert.Equal(t, 1, m.requests[http.StatusBadGateway])
}

func TestHealthzAndPlayground(t *testing.T) {
	s, _, _ := newTestServer(t, `{}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"alive": true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/playground", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/graphql")
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>console</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0644))

	s, err := NewServer(ConsoleServerOpts{UpstreamURL: "http://localhost:1/graphql", StaticDir: dir})
	require.NoError(t, err)

	for path, want := range map[string]string{
		"/":             "<html>console</html>",
		"/app.js":       "console.log(1)",
		"/channels/foo": "<html>console</html>",
	} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Body.String(), path)
	}
}

func TestNewServerRejectsUpstream(t *testing.T) {
	_, err := NewServer(ConsoleServerOpts{UpstreamURL: "ftp://localhost/graphql"})
	assert.Error(t, err)
	_, err = NewServer(ConsoleServerOpts{UpstreamURL: "://bad"})
	assert.Error(t, err)
}

func TestRunAfterStop(t *testing.T) {
	s, err := NewServer(ConsoleServerOpts{Address: "127.0.0.1:0", UpstreamURL: "http://localhost:1/graphql"})
	require.NoError(t, err)
	require.NoError(t, s.Stop(context.Background()))

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Nil(t, s.httpServer)
	assert.Nil(t, s.metricsServer)
}

func TestStopEndsRun(t *testing.T) {
	s, err := NewServer(ConsoleServerOpts{Address: "127.0.0.1:0", UpstreamURL: "http://localhost:1/graphql"})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.httpServer != nil
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	// a second Stop is a no-op
	assert.NoError(t, s.Stop(context.Background()))
}
