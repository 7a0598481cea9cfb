package bootstrap

import (
	"context"

	"github.com/krobus00/rapidwire-bot/internal/config"
	"github.com/krobus00/rapidwire-bot/internal/constant"
	"github.com/krobus00/rapidwire-bot/internal/entity"
	"github.com/krobus00/rapidwire-bot/internal/infrastructure"
	"github.com/krobus00/rapidwire-bot/internal/repository"
	"github.com/krobus00/rapidwire-bot/internal/service/historyjournal"
	"github.com/krobus00/rapidwire-bot/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func StartHistoryJournalWorker(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbConfig := config.Env.Database[constant.LedgerDatabase]
	db, err := infrastructure.NewPostgresConnection(ctx, constant.LedgerDatabase, dbConfig)
	util.ContinueOrFatal(err)
	infrastructure.StartPostgresHealthCheck(ctx, constant.LedgerDatabase, db, dbConfig.PingInterval)

	nc, js, err := infrastructure.NewJetstream(config.Env.NatsJetstream)
	util.ContinueOrFatal(err)

	historyEntryRepo := repository.NewHistoryEntryRepository(db)
	journalService := historyjournal.NewService(
		js,
		historyEntryRepo,
		infrastructure.NewJetstreamPublisher(js),
		config.Env.NatsJetstream.MaxRetries,
		config.Env.NatsJetstream.TimeoutHandler[constant.HistoryJournalTimeoutKey],
	)

	subscribers := []entity.Subscriber{journalService}
	for _, subscriber := range subscribers {
		err := subscriber.JetstreamEventSubscribe(ctx)
		util.ContinueOrFatal(err)
	}
	logrus.WithField("stream", constant.HistoryStreamName).Info("history journal worker subscribed")

	statusServer := startStatusServer(nil, map[string]infrastructure.ReadinessCheck{
		"postgres": historyEntryRepo.Ping,
		"nats":     natsReadiness(nc),
	})

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, map[string]operation{
		"status http server": func(ctx context.Context) error {
			return statusServer.Shutdown(ctx)
		},
		"database": func(ctx context.Context) error {
			cancel()
			return db.Close()
		},
		"nats connection": func(ctx context.Context) error {
			return infrastructure.CloseJetstream(nc)
		},
	})

	<-wait
}
