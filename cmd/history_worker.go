/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/rapidwire-bot/internal/bootstrap"
	"github.com/spf13/cobra"
)

// historySyncWorkerCmd represents the history sync worker command
var historySyncWorkerCmd = &cobra.Command{
	Use:   "history-sync-worker",
	Short: "Publish new account history entries to JetStream",
	Long: `Periodically walks the account history newest first, stops at the last
entry it already published (kept in redis) and publishes the new entries,
oldest first, on the rapidwire_history stream.`,
	Run: bootstrap.StartHistorySyncWorker,
}

// historyJournalWorkerCmd represents the history journal worker command
var historyJournalWorkerCmd = &cobra.Command{
	Use:   "history-journal-worker",
	Short: "Store published history entries in postgres",
	Long: `Consumes the rapidwire_history stream and inserts every entry into the
ledger database once. Failed inserts are re-published until they run out
of retries.`,
	Run: bootstrap.StartHistoryJournalWorker,
}

func init() {
	rootCmd.AddCommand(historySyncWorkerCmd, historyJournalWorkerCmd)
}
