/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/rapidwire-bot/internal/bootstrap"
	"github.com/spf13/cobra"
)

var sellOrderCmd = &cobra.Command{
	Use:   "sell-order SYMBOL PRICE AMOUNT",
	Short: "Place a stock sell order",
	Args:  cobra.ExactArgs(3),
	Run:   bootstrap.StartCreateSellOrder,
}

var marketBuyCmd = &cobra.Command{
	Use:   "market-buy SYMBOL AMOUNT",
	Short: "Buy stock at market price",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.StartMarketBuyStock,
}

var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order ORDER_ID",
	Short: "Cancel an open sell order",
	Args:  cobra.ExactArgs(1),
	Run:   bootstrap.StartCancelSellOrder,
}

var buyCurrencyCmd = &cobra.Command{
	Use:   "buy-currency SYMBOL AMOUNT_IN",
	Short: "Swap the base currency into SYMBOL",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.StartBuyCurrency,
}

var sellCurrencyCmd = &cobra.Command{
	Use:   "sell-currency SYMBOL AMOUNT_IN",
	Short: "Swap SYMBOL into the base currency",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.StartSellCurrency,
}

func init() {
	rootCmd.AddCommand(sellOrderCmd, marketBuyCmd, cancelOrderCmd, buyCurrencyCmd, sellCurrencyCmd)

	sellOrderCmd.Flags().Bool("decimal", false, "read PRICE as a decimal value")
	buyCurrencyCmd.Flags().Bool("decimal", false, "read AMOUNT_IN as a decimal value")
	sellCurrencyCmd.Flags().Bool("decimal", false, "read AMOUNT_IN as a decimal value")
}
