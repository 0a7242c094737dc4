package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/config"
)

const sentryFlushTimeout = 2 * time.Second

// SentryModule initializes error reporting.
var SentryModule = fx.Module("sentry",
	fx.Invoke(InitSentry),
)

// SentryParams holds dependencies for InitSentry.
type SentryParams struct {
	fx.In
	Cfg    *config.Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

// InitSentry configures the global Sentry hub and flushes it on stop. Sentry
// stays disabled without a DSN.
func InitSentry(params SentryParams) error {
	logger := params.Logger.Named("sentry")

	if params.Cfg.Sentry.DSN == "" {
		logger.Info("Sentry disabled, no DSN configured")

		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.Cfg.Sentry.DSN,
		Environment:      params.Cfg.Sentry.Environment,
		Release:          "sushii-interactions@" + commands.AppVersion,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}

	logger.Info("Sentry enabled", zap.String("environment", params.Cfg.Sentry.Environment))

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if !sentry.Flush(sentryFlushTimeout) {
				logger.Warn("Timed out flushing Sentry events")
			}

			return nil
		},
	})

	return nil
}
