package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/krobus00/rapidwire-bot/internal/config"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultBackoffFactor  = 2.0
	defaultMinJitter      = 100 * time.Millisecond
	defaultMaxJitter      = 1 * time.Second
	defaultMaxIdleConns   = 10
	defaultMaxOpenConns   = 100
	defaultConnLifetime   = 1 * time.Hour
)

var ErrMissingDSN = errors.New("database dsn is required")

type postgresOptions struct {
	connectTimeout  time.Duration
	maxRetry        int
	retry           retryPolicy
	maxIdleConns    int
	maxOpenConns    int
	maxConnLifetime time.Duration
	maxConnIdleTime time.Duration
}

func resolvePostgresOptions(cfg config.DatabaseConfig) postgresOptions {
	opts := postgresOptions{
		connectTimeout:  cfg.PingInterval,
		maxRetry:        cfg.MaxRetry,
		retry:           newRetryPolicy(cfg.ReconnectFactor, cfg.MinJitter, cfg.MaxJitter, defaultMinJitter, defaultMaxJitter),
		maxIdleConns:    cfg.MaxIdleConns,
		maxOpenConns:    cfg.MaxActiveConns,
		maxConnLifetime: cfg.MaxConnLifetime,
		maxConnIdleTime: cfg.PingInterval,
	}

	if opts.connectTimeout <= 0 {
		opts.connectTimeout = defaultConnectTimeout
	}
	if opts.maxRetry < 0 {
		opts.maxRetry = 0
	}
	if opts.maxIdleConns <= 0 {
		opts.maxIdleConns = defaultMaxIdleConns
	}
	if opts.maxOpenConns <= 0 {
		opts.maxOpenConns = defaultMaxOpenConns
	}
	if opts.maxConnLifetime <= 0 {
		opts.maxConnLifetime = defaultConnLifetime
	}

	return opts
}

// NewPostgresConnection dials the named database, retrying with jittered backoff.
func NewPostgresConnection(ctx context.Context, name string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingDSN)
	}

	opts := resolvePostgresOptions(cfg)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	logger := logrus.WithFields(logrus.Fields{
		"database":     name,
		"postgres_dsn": maskDSN(cfg.DSN),
	})

	var lastErr error
	for attempt := 0; attempt <= opts.maxRetry; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, opts.connectTimeout)
		db, err := sqlx.ConnectContext(attemptCtx, "postgres", cfg.DSN)
		cancel()
		if err == nil {
			db.SetMaxIdleConns(opts.maxIdleConns)
			db.SetMaxOpenConns(opts.maxOpenConns)
			db.SetConnMaxLifetime(opts.maxConnLifetime)
			if opts.maxConnIdleTime > 0 {
				db.SetConnMaxIdleTime(opts.maxConnIdleTime)
			}

			logger.WithFields(logrus.Fields{
				"max_retry":         opts.maxRetry,
				"max_idle_conns":    opts.maxIdleConns,
				"max_active_conns":  opts.maxOpenConns,
				"max_conn_lifetime": opts.maxConnLifetime,
			}).Info("postgres connection established")

			return db, nil
		}

		lastErr = err
		if attempt == opts.maxRetry {
			break
		}

		waitDuration := opts.retry.delay(attempt, rng)
		logger.WithFields(logrus.Fields{
			"attempt":   attempt + 1,
			"max_retry": opts.maxRetry,
			"retry_in":  waitDuration.String(),
		}).Warnf("postgres connection failed: %v", err)

		select {
		case <-time.After(waitDuration):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("connect postgres %s after %d attempts: %w", name, opts.maxRetry+1, lastErr)
}

func StartPostgresHealthCheck(ctx context.Context, name string, db *sqlx.DB, interval time.Duration) {
	if db == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, interval)
				err := db.PingContext(pingCtx)
				cancel()
				if err != nil {
					logrus.WithField("database", name).Errorf("postgres health check failed: %v", err)
				}
			}
		}
	}()
}

func maskDSN(dsn string) string {
	idx := strings.LastIndex(dsn, "@")
	if idx == -1 {
		return dsn
	}

	prefix := dsn[:idx]
	credsIdx := strings.LastIndex(prefix, "://")
	if credsIdx == -1 {
		return "***" + dsn[idx:]
	}

	return prefix[:credsIdx+3] + "***" + dsn[idx:]
}
