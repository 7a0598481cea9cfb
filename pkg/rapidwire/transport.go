package rapidwire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "http://127.0.0.1:14550"
	DefaultTimeout = 15 * time.Second

	apiKeyHeader    = "API-Key"
	requestIDHeader = "X-Request-Id"
)

// Result is the outcome of a successful call. NoContent marks a 204 response and is distinct
// from a body holding an empty object.
type Result struct {
	StatusCode int
	NoContent  bool
	Body       json.RawMessage
}

// Transport executes authenticated JSON calls against a single base address.
// It owns one *http.Client, which is safe for concurrent use.
type Transport struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func NewTransport(apiKey, baseURL string, httpClient *http.Client, logger logrus.FieldLogger) (*Transport, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Transport{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Execute sends one request and returns the parsed result or an *APIError.
// Nothing is retried.
func (t *Transport) Execute(ctx context.Context, method, path string, query url.Values, body any) (Result, error) {
	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Result{}, transportError(fmt.Errorf("marshal %s %s body: %w", method, path, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return Result{}, transportError(err)
	}

	requestID := uuid.NewString()
	req.Header.Set(apiKeyHeader, t.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "rapidwire-bot/"+ClientVersion)
	req.Header.Set(requestIDHeader, requestID)

	logger := t.logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	started := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Debug("rapidwire request failed")
		return Result{}, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Debug("rapidwire response read failed")
		return Result{}, transportError(err)
	}

	logger.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("rapidwire request handled")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{}, normalizeError(resp.StatusCode, respBody)
	}

	if resp.StatusCode == http.StatusNoContent {
		return Result{StatusCode: resp.StatusCode, NoContent: true}, nil
	}

	if !json.Valid(respBody) {
		return Result{}, transportError(fmt.Errorf("invalid JSON in %d response body: %q", resp.StatusCode, truncate(respBody, 256)))
	}

	return Result{StatusCode: resp.StatusCode, Body: json.RawMessage(respBody)}, nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}
