/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/rapidwire-bot/internal/bootstrap"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the account balance",
	Args:  cobra.NoArgs,
	Run:   bootstrap.StartBalance,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show one page of the account history",
	Args:  cobra.NoArgs,
	Run:   bootstrap.StartHistory,
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show the account's open sell orders",
	Args:  cobra.NoArgs,
	Run:   bootstrap.StartMyStockOrders,
}

var transferCurrencyCmd = &cobra.Command{
	Use:   "transfer-currency RECIPIENT_ID SYMBOL AMOUNT",
	Short: "Transfer currency to another account",
	Args:  cobra.ExactArgs(3),
	Run:   bootstrap.StartTransferCurrency,
}

var transferStockCmd = &cobra.Command{
	Use:   "transfer-stock RECIPIENT_ID SYMBOL AMOUNT",
	Short: "Transfer stock to another account",
	Args:  cobra.ExactArgs(3),
	Run:   bootstrap.StartTransferStock,
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List history entries stored by the journal worker",
	Args:  cobra.NoArgs,
	Run:   bootstrap.StartJournal,
}

func init() {
	rootCmd.AddCommand(balanceCmd, historyCmd, ordersCmd, transferCurrencyCmd, transferStockCmd, journalCmd)

	balanceCmd.Flags().Bool("decimal", false, "show currency amounts with the server's decimal places")
	historyCmd.Flags().Int("page", 1, "history page, newest first")
	transferCurrencyCmd.Flags().Bool("decimal", false, "read AMOUNT as a decimal value")

	journalCmd.Flags().Uint64("page", 1, "page number")
	journalCmd.Flags().Uint64("limit", 50, "entries per page")
	journalCmd.Flags().String("operation-type", "", "only entries of this operation type")
	journalCmd.Flags().String("symbol", "", "only entries for this symbol")
}
