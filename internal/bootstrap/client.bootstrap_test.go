package bootstrap

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/krobus00/rapidwire-bot/internal/config"
	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
	body   string
}

type requestLog struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (l *requestLog) last() capturedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.requests[len(l.requests)-1]
}

// newLedgerServer serves fixed bodies keyed by "METHOD /path" and points config.Env at it.
func newLedgerServer(t *testing.T, routes map[string]string) *requestLog {
	t.Helper()

	captured := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.mu.Lock()
		captured.requests = append(captured.requests, capturedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		captured.mu.Unlock()

		if r.URL.Path == "/version" {
			_, _ = w.Write([]byte(`{"message":"ok","details":{"version":"1.0.0"}}`))
			return
		}

		respBody, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
			return
		}
		if respBody == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(server.Close)

	previous := config.Env
	config.Env = &config.EnvConfig{
		RapidWire: config.RapidWireConfig{BaseURL: server.URL, APIKey: "test-key", Timeout: 5 * time.Second},
	}
	t.Cleanup(func() { config.Env = previous })

	return captured
}

func newTestCommand(run func(cmd *cobra.Command, args []string)) (*cobra.Command, *bytes.Buffer) {
	out := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test", Run: run}
	cmd.Flags().Bool("decimal", false, "")
	cmd.Flags().Int("page", 1, "")
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd, out
}

func TestStartBalance(t *testing.T) {
	newLedgerServer(t, map[string]string{
		"GET /account/balance": `{"currencies":{"USD":12345},"stocks":{"ACME":5}}`,
		"GET /config":          `{"decimal_places":2,"base_currency":{"id":1,"symbol":"USD","name":"Dollar","supply":100}}`,
	})

	t.Run("raw units", func(t *testing.T) {
		cmd, out := newTestCommand(StartBalance)
		StartBalance(cmd, nil)

		assert.JSONEq(t, `{"currencies":{"USD":12345},"stocks":{"ACME":5}}`, out.String())
	})

	t.Run("decimal display", func(t *testing.T) {
		cmd, out := newTestCommand(StartBalance)
		require.NoError(t, cmd.Flags().Set("decimal", "true"))
		StartBalance(cmd, nil)

		assert.JSONEq(t, `{"currencies":{"USD":"123.45"},"stocks":{"ACME":5}}`, out.String())
	})
}

func TestStartTransferCurrency_DecimalAmount(t *testing.T) {
	captured := newLedgerServer(t, map[string]string{
		"GET /config":             `{"decimal_places":2,"base_currency":{"id":1,"symbol":"USD","name":"Dollar","supply":100}}`,
		"POST /currency/transfer": `{"message":"transferred"}`,
	})

	cmd, out := newTestCommand(StartTransferCurrency)
	require.NoError(t, cmd.Flags().Set("decimal", "true"))
	StartTransferCurrency(cmd, []string{"42", "usd", "1.50"})

	last := captured.last()
	assert.Equal(t, "/currency/transfer", last.path)
	assert.JSONEq(t, `{"recipient_id":42,"asset_symbol":"USD","amount":150}`, last.body)
	assert.JSONEq(t, `{"message":"transferred"}`, out.String())
}

func TestStartCancelSellOrder_NoContent(t *testing.T) {
	captured := newLedgerServer(t, map[string]string{
		"DELETE /market/stock/sell-order/7": "",
	})

	cmd, out := newTestCommand(StartCancelSellOrder)
	StartCancelSellOrder(cmd, []string{"7"})

	last := captured.last()
	assert.Equal(t, http.MethodDelete, last.method)
	assert.Equal(t, "no content", strings.TrimSpace(out.String()))
}

func TestResultHelpers(t *testing.T) {
	result, err := recordResult[rapidwire.Balance](nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = listResult[rapidwire.UserOrder](nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = listResult([]rapidwire.UserOrder{}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []rapidwire.UserOrder{}, result)
}

func TestAmountParser(t *testing.T) {
	raw := &amountParser{}
	got, err := raw.parse(" 150 ")
	require.NoError(t, err)
	assert.Equal(t, int64(150), got)

	_, err = raw.parse("1.5")
	assert.Error(t, err)

	scaled := &amountParser{decimal: true, decimalPlaces: 2}
	got, err = scaled.parse("1.5")
	require.NoError(t, err)
	assert.Equal(t, int64(150), got)
}

func TestNatsReadiness_NilConnection(t *testing.T) {
	assert.Error(t, natsReadiness(nil)(context.Background()))
}
