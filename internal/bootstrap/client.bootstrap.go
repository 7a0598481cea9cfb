package bootstrap

import (
	"context"
	"fmt"
	"strconv"

	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/spf13/cobra"
)

func recordResult[T any](record *T, err error) (any, error) {
	if err != nil || record == nil {
		return nil, err
	}
	return record, nil
}

func listResult[T any](list []T, err error) (any, error) {
	if err != nil || list == nil {
		return nil, err
	}
	return list, nil
}

func StartVersion(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		resp, err := client.GetVersion(ctx)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"client_version": rapidwire.ClientVersion,
			"server_version": client.ServerVersion(),
			"compatibility":  client.Compatibility().String(),
			"response":       resp,
		}, nil
	})
}

func StartConfig(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return recordResult(client.GetConfig(ctx))
	})
}

func StartBalance(cmd *cobra.Command, args []string) {
	decimal, _ := cmd.Flags().GetBool("decimal")

	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		balance, err := client.GetBalance(ctx)
		if err != nil || balance == nil || !decimal {
			return recordResult(balance, err)
		}

		cfg, err := client.GetConfig(ctx)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, fmt.Errorf("server returned no config to format amounts with")
		}

		currencies := make(map[string]string, len(balance.Currencies))
		for symbol, amount := range balance.Currencies {
			currencies[symbol] = rapidwire.FormatAmount(amount, cfg.DecimalPlaces)
		}

		return map[string]any{
			"currencies": currencies,
			"stocks":     balance.Stocks,
		}, nil
	})
}

func StartHistory(cmd *cobra.Command, args []string) {
	page, _ := cmd.Flags().GetInt("page")

	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return listResult(client.GetHistory(ctx, page))
	})
}

func StartMyStockOrders(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return listResult(client.GetMyStockOrders(ctx))
	})
}

func StartCurrencyInfo(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return recordResult(client.GetCurrencyInfo(ctx, args[0]))
	})
}

func StartStockInfo(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return recordResult(client.GetStockInfo(ctx, args[0]))
	})
}

func StartStockOrderbook(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return recordResult(client.GetStockOrderbook(ctx, args[0]))
	})
}

func StartLiquidityInfo(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		return recordResult(client.GetLiquidityInfo(ctx, args[0]))
	})
}

func StartTransferCurrency(cmd *cobra.Command, args []string) {
	startTransfer(cmd, args, (*rapidwire.Client).TransferCurrency)
}

func StartTransferStock(cmd *cobra.Command, args []string) {
	startTransfer(cmd, args, (*rapidwire.Client).TransferStock)
}

type transferFunc func(c *rapidwire.Client, ctx context.Context, recipientID int64, symbol string, amount int64) (*rapidwire.SuccessResponse, error)

// args: RECIPIENT_ID SYMBOL AMOUNT
func startTransfer(cmd *cobra.Command, args []string, transfer transferFunc) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		recipientID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient id %q: %w", args[0], err)
		}

		amounts, err := newAmountParser(ctx, cmd, client)
		if err != nil {
			return nil, err
		}
		amount, err := amounts.parse(args[2])
		if err != nil {
			return nil, err
		}

		return recordResult(transfer(client, ctx, recipientID, args[1], amount))
	})
}

// args: SYMBOL PRICE AMOUNT
func StartCreateSellOrder(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		amounts, err := newAmountParser(ctx, cmd, client)
		if err != nil {
			return nil, err
		}
		price, err := amounts.parse(args[1])
		if err != nil {
			return nil, err
		}
		amount, err := parseInt(args[2])
		if err != nil {
			return nil, err
		}

		return recordResult(client.CreateSellOrder(ctx, args[0], price, amount))
	})
}

// args: SYMBOL AMOUNT
func StartMarketBuyStock(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		amount, err := parseInt(args[1])
		if err != nil {
			return nil, err
		}

		return recordResult(client.MarketBuyStock(ctx, args[0], amount))
	})
}

func StartCancelSellOrder(cmd *cobra.Command, args []string) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		orderID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid order id %q: %w", args[0], err)
		}

		return recordResult(client.CancelSellOrder(ctx, orderID))
	})
}

func StartBuyCurrency(cmd *cobra.Command, args []string) {
	startCurrencySwap(cmd, args, (*rapidwire.Client).BuyCurrency)
}

func StartSellCurrency(cmd *cobra.Command, args []string) {
	startCurrencySwap(cmd, args, (*rapidwire.Client).SellCurrency)
}

type swapFunc func(c *rapidwire.Client, ctx context.Context, symbol string, amountIn int64) (*rapidwire.SuccessResponse, error)

// args: SYMBOL AMOUNT_IN
func startCurrencySwap(cmd *cobra.Command, args []string, swap swapFunc) {
	runClientCommand(cmd, func(ctx context.Context, client *rapidwire.Client) (any, error) {
		amounts, err := newAmountParser(ctx, cmd, client)
		if err != nil {
			return nil, err
		}
		amountIn, err := amounts.parse(args[1])
		if err != nil {
			return nil, err
		}

		return recordResult(swap(client, ctx, args[0], amountIn))
	})
}
