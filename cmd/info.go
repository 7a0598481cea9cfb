/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/rapidwire-bot/internal/bootstrap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the server version and client compatibility",
	Args:  cobra.NoArgs,
	Run:   bootstrap.StartVersion,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the ledger configuration",
	Args:  cobra.NoArgs,
	Run:   bootstrap.StartConfig,
}

var currencyCmd = &cobra.Command{
	Use:   "currency SYMBOL",
	Short: "Show a currency",
	Args:  cobra.ExactArgs(1),
	Run:   bootstrap.StartCurrencyInfo,
}

var stockCmd = &cobra.Command{
	Use:   "stock SYMBOL",
	Short: "Show a stock",
	Args:  cobra.ExactArgs(1),
	Run:   bootstrap.StartStockInfo,
}

var orderbookCmd = &cobra.Command{
	Use:   "orderbook SYMBOL",
	Short: "Show the sell side order book of a stock",
	Args:  cobra.ExactArgs(1),
	Run:   bootstrap.StartStockOrderbook,
}

var liquidityCmd = &cobra.Command{
	Use:   "liquidity SYMBOL",
	Short: "Show the liquidity pool of a currency",
	Args:  cobra.ExactArgs(1),
	Run:   bootstrap.StartLiquidityInfo,
}

func init() {
	rootCmd.AddCommand(versionCmd, configCmd, currencyCmd, stockCmd, orderbookCmd, liquidityCmd)
}
