package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/krobus00/rapidwire-bot/internal/config"
	"github.com/krobus00/rapidwire-bot/internal/constant"
	"github.com/krobus00/rapidwire-bot/internal/infrastructure"
	"github.com/krobus00/rapidwire-bot/internal/util"
	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type operation func(ctx context.Context) error

// gracefulShutdown waits for termination syscalls and doing clean up operations after received it.
func gracefulShutdown(ctx context.Context, timeout time.Duration, ops map[string]operation) <-chan struct{} {
	wait := make(chan struct{})
	go func() {
		s := make(chan os.Signal, 1)

		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		<-s

		logrus.Info("shutting down")

		// set timeout for the ops to be done to prevent system hang
		timeoutFunc := time.AfterFunc(timeout, func() {
			logrus.Error(fmt.Sprintf("timeout %d ms has been elapsed, force exit", timeout.Milliseconds()))
			os.Exit(0)
		})

		defer timeoutFunc.Stop()

		var wg sync.WaitGroup

		for key, op := range ops {
			wg.Add(1)
			go func() {
				defer wg.Done()

				logrus.Info(fmt.Sprintf("cleaning up: %s", key))
				if err := op(ctx); err != nil {
					logrus.Error(fmt.Sprintf("%s: clean up failed: %s", key, err.Error()))
					return
				}

				logrus.Info(fmt.Sprintf("%s was shutdown gracefully", key))
			}()
		}

		wg.Wait()

		close(wait)
	}()

	return wait
}

func newRapidwireClient(ctx context.Context) (*rapidwire.Client, error) {
	cfg := config.Env.RapidWire

	return rapidwire.New(ctx, cfg.APIKey,
		rapidwire.WithBaseURL(cfg.BaseURL),
		rapidwire.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		rapidwire.WithLogger(logrus.WithField("component", "rapidwire")),
	)
}

// runClientCommand builds a client, runs call and prints its result as JSON.
func runClientCommand(cmd *cobra.Command, call func(ctx context.Context, client *rapidwire.Client) (any, error)) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newRapidwireClient(ctx)
	util.ContinueOrFatal(err)

	result, err := call(ctx, client)
	util.ContinueOrFatal(err)

	util.ContinueOrFatal(printResult(cmd, result))
}

func printResult(cmd *cobra.Command, result any) error {
	if result == nil {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no content")
		return err
	}

	output, err := util.PrettyJSON(result)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

func startStatusServer(reporter infrastructure.StatusReporter, checks map[string]infrastructure.ReadinessCheck) *infrastructure.HTTPServer {
	server := infrastructure.NewHTTPServerWithConfig(
		infrastructure.DefaultHTTPServerConfig(config.Env.Port[constant.StatusHTTPPort]),
		infrastructure.NewStatusRouter(reporter, checks),
	)

	go func() {
		if err := server.Start(); err != nil {
			logrus.WithError(err).Error("status http server stopped")
		}
	}()

	return server
}

func natsReadiness(nc *nats.Conn) infrastructure.ReadinessCheck {
	return func(context.Context) error {
		if nc == nil || !nc.IsConnected() {
			return errors.New("nats is not connected")
		}
		return nil
	}
}
