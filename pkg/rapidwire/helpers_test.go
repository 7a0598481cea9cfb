package rapidwire

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

type fakeResponse struct {
	status int
	body   string
}

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// fakeServer answers "METHOD /path" routes and records every request it receives.
type fakeServer struct {
	mu       sync.Mutex
	routes   map[string]fakeResponse
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeServer(t *testing.T, routes map[string]fakeResponse) *fakeServer {
	t.Helper()

	if _, ok := routes["GET /version"]; !ok {
		routes["GET /version"] = fakeResponse{status: http.StatusOK, body: `{"message":"ok","details":{"version":"1.0.0"}}`}
	}

	fs := &fakeServer{routes: routes}
	fs.server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.server.Close)

	return fs
}

func (fs *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fs.mu.Lock()
	fs.requests = append(fs.requests, recordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	resp, ok := fs.routes[r.Method+" "+r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}

	w.WriteHeader(resp.status)
	if resp.body != "" {
		_, _ = w.Write([]byte(resp.body))
	}
}

// lastRequest returns the most recent request that was not part of the version check.
func (fs *fakeServer) lastRequest(t *testing.T) recordedRequest {
	t.Helper()

	fs.mu.Lock()
	defer fs.mu.Unlock()

	for idx := len(fs.requests) - 1; idx >= 0; idx-- {
		if fs.requests[idx].Path != "/version" {
			return fs.requests[idx]
		}
	}

	t.Fatal("no request recorded")
	return recordedRequest{}
}

func (fs *fakeServer) newClient(t *testing.T) (*Client, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	client, err := New(context.Background(), testAPIKey, WithBaseURL(fs.server.URL), WithLogger(logger))
	require.NoError(t, err)

	return client, hook
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:14550: connect: connection refused")

func refusingHTTPClient(calls *int) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if calls != nil {
			*calls++
		}
		return nil, errConnectionRefused
	})}
}

func warnings(hook *test.Hook) []*logrus.Entry {
	var entries []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			entries = append(entries, entry)
		}
	}
	return entries
}
