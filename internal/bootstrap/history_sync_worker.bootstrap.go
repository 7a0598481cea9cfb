package bootstrap

import (
	"context"

	"github.com/krobus00/rapidwire-bot/internal/config"
	"github.com/krobus00/rapidwire-bot/internal/constant"
	"github.com/krobus00/rapidwire-bot/internal/infrastructure"
	"github.com/krobus00/rapidwire-bot/internal/service/historysync"
	"github.com/krobus00/rapidwire-bot/internal/util"
	"github.com/spf13/cobra"
)

func StartHistorySyncWorker(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := newRapidwireClient(ctx)
	util.ContinueOrFatal(err)

	redisClient, err := infrastructure.NewRedisClient(ctx, config.Env.Redis[constant.CacheRedis].CacheDSN)
	util.ContinueOrFatal(err)

	nc, js, err := infrastructure.NewJetstream(config.Env.NatsJetstream)
	util.ContinueOrFatal(err)

	err = infrastructure.EnsureStream(ctx, js, infrastructure.HistoryStreamConfig())
	util.ContinueOrFatal(err)

	cursors, err := historysync.NewRedisCursorStore(redisClient, config.Env.HistorySync.CursorKey)
	util.ContinueOrFatal(err)

	historySyncService := historysync.NewService(
		client,
		cursors,
		infrastructure.NewJetstreamPublisher(js),
		config.Env.HistorySync.Interval,
		config.Env.HistorySync.MaxPages,
	)

	go historySyncService.Run(ctx)

	statusServer := startStatusServer(client, map[string]infrastructure.ReadinessCheck{
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
		"nats": natsReadiness(nc),
	})

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, map[string]operation{
		"status http server": func(ctx context.Context) error {
			return statusServer.Shutdown(ctx)
		},
		"redis": func(ctx context.Context) error {
			cancel()
			return redisClient.Close()
		},
		"nats connection": func(ctx context.Context) error {
			cancel()
			return infrastructure.CloseJetstream(nc)
		},
	})

	<-wait
}
