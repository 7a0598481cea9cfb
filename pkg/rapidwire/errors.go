package rapidwire

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

const (
	// TransportFailureStatus is reported when no HTTP response could be obtained.
	TransportFailureStatus = http.StatusInternalServerError

	unknownErrorDetail = "Unknown error"
)

var ErrMissingAPIKey = errors.New("rapidwire api key is required")

// APIError is the single failure shape for transport failures and non-success responses.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error %d: %s", e.StatusCode, e.Detail)
}

// MappingError reports a response whose shape does not match the expected record.
type MappingError struct {
	Path string
	Err  error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("rapidwire: invalid response at %s: %v", e.Path, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

var (
	errFieldMissing = errors.New("required field is missing")
	errFieldNull    = errors.New("required field is null")
	errNotAnObject  = errors.New("expected a JSON object")
	errNotAnArray   = errors.New("expected a JSON array")
	errTypeMismatch = errors.New("unexpected JSON type")

	errIntegerOutOfRange = errors.New("integer out of range")
)

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

func AsMappingError(err error) (*MappingError, bool) {
	var mappingErr *MappingError
	if errors.As(err, &mappingErr) {
		return mappingErr, true
	}

	return nil, false
}

func transportError(err error) *APIError {
	return &APIError{
		StatusCode: TransportFailureStatus,
		Detail:     fmt.Sprintf("Request failed: %v", err),
	}
}

// normalizeError turns a non-success response into an APIError. The detail is the body's
// "detail" field when present, otherwise the raw body, otherwise "Unknown error".
func normalizeError(statusCode int, body []byte) *APIError {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &APIError{StatusCode: statusCode, Detail: unknownErrorDetail}
	}

	if detail, ok := extractDetail(trimmed); ok {
		return &APIError{StatusCode: statusCode, Detail: detail}
	}

	return &APIError{StatusCode: statusCode, Detail: string(body)}
}

func extractDetail(body []byte) (string, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	raw, ok := payload["detail"]
	if !ok || isNull(raw) {
		return "", false
	}

	var detail string
	if err := json.Unmarshal(raw, &detail); err == nil {
		return detail, true
	}

	// validation errors carry structured detail
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw), true
	}

	return compact.String(), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
