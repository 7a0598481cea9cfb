package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReporter struct {
	compatibility rapidwire.Compatibility
	version       string
}

func (s staticReporter) Compatibility() rapidwire.Compatibility {
	return s.compatibility
}

func (s staticReporter) ServerVersion() string {
	return s.version
}

func serve(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestStatusMux_Healthz(t *testing.T) {
	rec := serve(t, NewStatusRouter(nil, nil), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusMux_Readyz(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		mux := NewStatusRouter(nil, map[string]ReadinessCheck{
			"postgres": func(context.Context) error { return nil },
		})

		rec := serve(t, mux, http.MethodGet, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})

	t.Run("failing check reports its name", func(t *testing.T) {
		mux := NewStatusRouter(nil, map[string]ReadinessCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})

		rec := serve(t, mux, http.MethodGet, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"not ready","failed":{"redis":"connection refused"}}`, rec.Body.String())
	})
}

func TestStatusMux_Compatibility(t *testing.T) {
	t.Run("reports the version check outcome", func(t *testing.T) {
		mux := NewStatusRouter(staticReporter{compatibility: rapidwire.CompatibilityMismatch, version: "2.0.0"}, nil)

		rec := serve(t, mux, http.MethodGet, "/compatibility")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got compatibilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, compatibilityResponse{
			ClientVersion: rapidwire.ClientVersion,
			ServerVersion: "2.0.0",
			Compatibility: "mismatch",
		}, got)
	})

	t.Run("without a client it is unchecked", func(t *testing.T) {
		rec := serve(t, NewStatusRouter(nil, nil), http.MethodGet, "/compatibility")

		var got compatibilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "unchecked", got.Compatibility)
	})
}

func TestHTTPServer_Middlewares(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	server := NewHTTPServerWithConfig(HTTPServerConfig{Addr: ":0"}, mux)

	t.Run("request id is generated and echoed", func(t *testing.T) {
		rec := serve(t, server.Handler(), http.MethodGet, "/ok")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rec = httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
	})

	t.Run("panics are recovered", func(t *testing.T) {
		rec := serve(t, server.Handler(), http.MethodGet, "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestClientIPFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4312"
	assert.Equal(t, "10.0.0.5", clientIPFromRequest(req))

	req.Header.Set("X-Real-Ip", "10.0.0.9")
	assert.Equal(t, "10.0.0.9", clientIPFromRequest(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIPFromRequest(req))
}

func TestResolveHTTPAddr(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("HTTP_PORT", "")

	assert.Equal(t, defaultHTTPAddr, resolveHTTPAddr(""))
	assert.Equal(t, ":9090", resolveHTTPAddr("9090"))
	assert.Equal(t, ":9091", resolveHTTPAddr(":9091"))

	t.Setenv("HTTP_PORT", "7070")
	assert.Equal(t, ":7070", resolveHTTPAddr("9090"))

	t.Setenv("HTTP_ADDR", "127.0.0.1:6060")
	assert.Equal(t, "127.0.0.1:6060", resolveHTTPAddr("9090"))
}
