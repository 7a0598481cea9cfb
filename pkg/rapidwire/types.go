package rapidwire

import (
	"github.com/goccy/go-json"
	"github.com/guregu/null/v6"
)

// CurrencyInfo is the public description of a currency. IssuerID is invalid for system issued currencies.
type CurrencyInfo struct {
	ID          int64       `json:"id"`
	Symbol      string      `json:"symbol"`
	Name        string      `json:"name"`
	Supply      int64       `json:"supply"`
	IssuerID    null.Int    `json:"issuer_id"`
	Description null.String `json:"description"`
}

type StockInfo struct {
	ID       int64       `json:"id"`
	Symbol   string      `json:"symbol"`
	Name     string      `json:"name"`
	Supply   int64       `json:"supply"`
	IssuerID null.Int    `json:"issuer_id"`
	Industry null.String `json:"industry"`
	Overview null.String `json:"overview"`
}

// Balance holds ledger amounts keyed by symbol, in integer ledger units.
type Balance struct {
	Currencies map[string]int64 `json:"currencies"`
	Stocks     map[string]int64 `json:"stocks"`
}

type HistoryEntry struct {
	Type          string `json:"type"`
	OperationType string `json:"operation_type"`
	Timestamp     int64  `json:"timestamp"`
	Source        int64  `json:"source"`
	Dest          int64  `json:"dest"`
	Symbol        string `json:"symbol"`
	Amount        int64  `json:"amount"`
}

// UserOrder is one of the caller's own open sell orders.
type UserOrder struct {
	OrderID     int64  `json:"order_id"`
	StockSymbol string `json:"stock_symbol"`
	Price       int64  `json:"price"`
	Amount      int64  `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
}

type OrderbookEntry struct {
	Price  int64 `json:"price"`
	Amount int64 `json:"amount"`
}

// Orderbook lists price levels in the order the service returned them.
type Orderbook struct {
	StockSymbol string           `json:"stock_symbol"`
	Orders      []OrderbookEntry `json:"orders"`
}

type LiquidityInfo struct {
	CurrencySymbol string `json:"currency_symbol"`
	BaseLiquidity  int64  `json:"base_liquidity"`
	PairLiquidity  int64  `json:"pair_liquidity"`
	TotalLPPoints  int64  `json:"total_lp_points"`
}

type Config struct {
	DecimalPlaces int32        `json:"decimal_places"`
	BaseCurrency  CurrencyInfo `json:"base_currency"`
}

// SuccessResponse is the acknowledgement returned by every mutating operation.
// Numbers inside Details are kept as json.Number.
type SuccessResponse struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// DetailString returns Details[key] when it holds a non-empty string.
func (r SuccessResponse) DetailString(key string) (string, bool) {
	raw, ok := r.Details[key]
	if !ok {
		return "", false
	}

	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// DetailInt returns Details[key] when it holds an integer.
func (r SuccessResponse) DetailInt(key string) (int64, bool) {
	raw, ok := r.Details[key]
	if !ok {
		return 0, false
	}

	number, ok := raw.(json.Number)
	if !ok {
		return 0, false
	}

	value, err := number.Int64()
	if err != nil {
		return 0, false
	}

	return value, true
}

type transferRequest struct {
	RecipientID int64  `json:"recipient_id"`
	AssetSymbol string `json:"asset_symbol"`
	Amount      int64  `json:"amount"`
}

type sellOrderRequest struct {
	StockSymbol string `json:"stock_symbol"`
	Price       int64  `json:"price"`
	Amount      int64  `json:"amount"`
}

type marketBuyRequest struct {
	StockSymbol string `json:"stock_symbol"`
	Amount      int64  `json:"amount"`
}

type currencySwapRequest struct {
	CurrencySymbol string `json:"currency_symbol"`
	Amount         int64  `json:"amount"`
}
