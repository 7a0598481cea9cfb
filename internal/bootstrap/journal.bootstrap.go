package bootstrap

import (
	"context"

	"github.com/krobus00/rapidwire-bot/internal/config"
	"github.com/krobus00/rapidwire-bot/internal/constant"
	"github.com/krobus00/rapidwire-bot/internal/infrastructure"
	"github.com/krobus00/rapidwire-bot/internal/repository"
	"github.com/krobus00/rapidwire-bot/internal/util"
	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/spf13/cobra"
)

func StartJournal(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limit, _ := cmd.Flags().GetUint64("limit")
	page, _ := cmd.Flags().GetUint64("page")
	operationType, _ := cmd.Flags().GetString("operation-type")
	symbol, _ := cmd.Flags().GetString("symbol")

	db, err := infrastructure.NewPostgresConnection(ctx, constant.LedgerDatabase, config.Env.Database[constant.LedgerDatabase])
	util.ContinueOrFatal(err)
	defer db.Close()

	filter := repository.NewHistoryPageFilter(page, limit)
	filter.OperationType = operationType
	filter.Symbol = rapidwire.NormalizeSymbol(symbol)

	records, err := repository.NewHistoryEntryRepository(db).Find(ctx, filter)
	util.ContinueOrFatal(err)

	util.ContinueOrFatal(printResult(cmd, records))
}
