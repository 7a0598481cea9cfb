package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/spf13/cobra"
)

// amountParser reads currency amounts either as raw integer units or, with
// --decimal, as display values scaled by the server's decimal places.
type amountParser struct {
	decimal       bool
	decimalPlaces int32
}

func newAmountParser(ctx context.Context, cmd *cobra.Command, client *rapidwire.Client) (*amountParser, error) {
	decimal, _ := cmd.Flags().GetBool("decimal")
	if !decimal {
		return &amountParser{}, nil
	}

	cfg, err := client.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load decimal places: %w", err)
	}
	if cfg == nil {
		return nil, errors.New("load decimal places: server returned no config")
	}

	return &amountParser{decimal: true, decimalPlaces: cfg.DecimalPlaces}, nil
}

func (p *amountParser) parse(raw string) (int64, error) {
	if !p.decimal {
		return parseInt(raw)
	}

	return rapidwire.ParseAmount(raw, p.decimalPlaces)
}

func parseInt(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	return value, nil
}
