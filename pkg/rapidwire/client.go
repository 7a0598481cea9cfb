// Package rapidwire is a client for the RapidWire ledger and trading API.
//
// Every operation issues one synchronous request. Failures come back as *APIError
// (transport failures, unencodable request bodies, non-success responses) or *MappingError
// (responses that do not match the expected record, including out-of-range integers). A 204 response yields a nil record and a nil error.
package rapidwire

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

type Client struct {
	transport *Transport
	logger    logrus.FieldLogger

	compatibility Compatibility
	serverVersion string
}

type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the session used for every call. It must be safe for concurrent use.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithLogger sets where diagnostics, including version check warnings, are written.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds a client and runs the version check before returning. An empty API key fails
// before any network activity; the version check itself never fails construction.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}

	transport, err := NewTransport(apiKey, o.baseURL, o.httpClient, o.logger)
	if err != nil {
		return nil, err
	}

	client := &Client{
		transport: transport,
		logger:    o.logger,
	}
	client.checkVersion(ctx)

	return client, nil
}

func (c *Client) Compatibility() Compatibility {
	return c.compatibility
}

// ServerVersion is the version reported by the server, empty when it could not be determined.
func (c *Client) ServerVersion() string {
	return c.serverVersion
}

func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

func (c *Client) GetVersion(ctx context.Context) (*SuccessResponse, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/version", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[SuccessResponse](res, successResponseSchema)
}

func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/config", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[Config](res, configSchema)
}

func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/account/balance", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[Balance](res, balanceSchema)
}

func (c *Client) GetHistory(ctx context.Context, page int) ([]HistoryEntry, error) {
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	res, err := c.transport.Execute(ctx, http.MethodGet, "/account/history", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[HistoryEntry](res, historyEntrySchema)
}

func (c *Client) GetMyStockOrders(ctx context.Context) ([]UserOrder, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/account/stock/orders", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[UserOrder](res, userOrderSchema)
}

func (c *Client) GetCurrencyInfo(ctx context.Context, symbol string) (*CurrencyInfo, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/currency/"+symbolPath(symbol), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[CurrencyInfo](res, currencyInfoSchema)
}

func (c *Client) GetStockInfo(ctx context.Context, symbol string) (*StockInfo, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/stock/"+symbolPath(symbol), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[StockInfo](res, stockInfoSchema)
}

// TransferCurrency sends amount of a currency to another user. The amount is passed
// through as given; the service validates it.
func (c *Client) TransferCurrency(ctx context.Context, recipientID int64, symbol string, amount int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/currency/transfer", transferRequest{
		RecipientID: recipientID,
		AssetSymbol: NormalizeSymbol(symbol),
		Amount:      amount,
	})
}

func (c *Client) TransferStock(ctx context.Context, recipientID int64, symbol string, amount int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/stock/transfer", transferRequest{
		RecipientID: recipientID,
		AssetSymbol: NormalizeSymbol(symbol),
		Amount:      amount,
	})
}

func (c *Client) GetStockOrderbook(ctx context.Context, symbol string) (*Orderbook, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/stock/"+symbolPath(symbol)+"/orderbook", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[Orderbook](res, orderbookSchema)
}

func (c *Client) CreateSellOrder(ctx context.Context, symbol string, price, amount int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/market/stock/sell-order", sellOrderRequest{
		StockSymbol: NormalizeSymbol(symbol),
		Price:       price,
		Amount:      amount,
	})
}

func (c *Client) MarketBuyStock(ctx context.Context, symbol string, amount int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/market/stock/market-buy", marketBuyRequest{
		StockSymbol: NormalizeSymbol(symbol),
		Amount:      amount,
	})
}

func (c *Client) CancelSellOrder(ctx context.Context, orderID int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodDelete, "/market/stock/sell-order/"+strconv.FormatInt(orderID, 10), nil)
}

func (c *Client) GetLiquidityInfo(ctx context.Context, symbol string) (*LiquidityInfo, error) {
	res, err := c.transport.Execute(ctx, http.MethodGet, "/market/currency/liquidity/"+symbolPath(symbol), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[LiquidityInfo](res, liquidityInfoSchema)
}

// BuyCurrency swaps amountIn of the base currency for symbol through its liquidity pool.
func (c *Client) BuyCurrency(ctx context.Context, symbol string, amountIn int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/market/currency/buy", currencySwapRequest{
		CurrencySymbol: NormalizeSymbol(symbol),
		Amount:         amountIn,
	})
}

// SellCurrency swaps amountIn of symbol back into the base currency.
func (c *Client) SellCurrency(ctx context.Context, symbol string, amountIn int64) (*SuccessResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/market/currency/sell", currencySwapRequest{
		CurrencySymbol: NormalizeSymbol(symbol),
		Amount:         amountIn,
	})
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (*SuccessResponse, error) {
	res, err := c.transport.Execute(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord[SuccessResponse](res, successResponseSchema)
}

func symbolPath(symbol string) string {
	return url.PathEscape(NormalizeSymbol(symbol))
}
