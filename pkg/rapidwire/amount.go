package rapidwire

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders integer ledger units as a decimal string with the server's precision.
func FormatAmount(amount int64, decimalPlaces int32) string {
	return decimal.New(amount, -decimalPlaces).StringFixed(decimalPlaces)
}

// ParseAmount converts a display value such as "12.5" into integer ledger units. Values with
// more fractional digits than decimalPlaces are rejected rather than rounded.
func ParseAmount(raw string, decimalPlaces int32) (int64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	units := value.Shift(decimalPlaces)
	if !units.Equal(units.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than %d decimal places", raw, decimalPlaces)
	}
	if !units.BigInt().IsInt64() {
		return 0, fmt.Errorf("invalid amount %q: out of range", raw)
	}

	return units.IntPart(), nil
}
