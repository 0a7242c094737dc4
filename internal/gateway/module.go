// Package gateway receives interactions from the AMQP queue or the Discord
// gateway and hands them to the dispatcher.
package gateway

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/diamondburned/arikawa/v3/session"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/bot"
	"github.com/sushiibot/sushii-interactions/internal/config"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
	pkginfra "github.com/sushiibot/sushii-interactions/pkg/infrastructure"
)

// Module provides the transport adapter and starts the configured transport.
var Module = fx.Module("gateway",
	fx.Provide(NewAdapterFromParams),
	fx.Invoke(RegisterTransport),
)

// AdapterParams holds dependencies for NewAdapterFromParams.
type AdapterParams struct {
	fx.In
	Dispatcher *bot.Dispatcher
	Metrics    *metrics.Metrics `optional:"true"`
	Logger     *zap.Logger
}

// NewAdapterFromParams creates the Adapter.
func NewAdapterFromParams(params AdapterParams) *Adapter {
	return NewAdapter(params.Dispatcher, params.Metrics, params.Logger)
}

// TransportParams holds dependencies for RegisterTransport.
type TransportParams struct {
	fx.In
	Cfg     *config.Config
	LC      fx.Lifecycle
	Adapter *Adapter
	Session *session.Session
	Logger  *zap.Logger
}

// RegisterTransport wires the adapter to the configured transport and ties
// it to the application lifecycle.
func RegisterTransport(params TransportParams) error {
	logger := params.Logger.Named("transport")

	switch params.Cfg.Transport.Mode {
	case config.TransportGateway:
		remove := params.Session.AddHandler(params.Adapter.HandleGatewayEvent)
		params.LC.Append(fx.Hook{
			// Detach before draining; the session itself closes later.
			OnStop: func(ctx context.Context) error {
				remove()

				return params.Adapter.Wait(ctx)
			},
		})
		logger.Info("Receiving interactions from the Discord gateway")

		return nil
	case config.TransportAMQP:
		wmLogger := pkginfra.NewWatermillLogger(logger)

		sub, err := NewAMQPSubscriber(params.Cfg.Transport.AMQPURL, wmLogger)
		if err != nil {
			return err
		}

		router, err := NewRouter(sub, params.Cfg.Transport.QueueName, params.Adapter, wmLogger)
		if err != nil {
			return err
		}

		params.LC.Append(routerHook(router, params.Adapter, params.Cfg.Transport.QueueName, logger))

		return nil
	default:
		return fmt.Errorf("unknown transport %q", params.Cfg.Transport.Mode)
	}
}

func routerHook(router *message.Router, adapter *Adapter, queue string, logger *zap.Logger) fx.Hook {
	return fx.Hook{
		OnStart: func(ctx context.Context) error {
			runErr := make(chan error, 1)
			go func() {
				err := router.Run(context.Background())
				if err != nil {
					logger.Error("Router stopped with error", zap.Error(err))
				}
				runErr <- err
			}()

			select {
			case <-router.Running():
				logger.Info("Consuming interactions from AMQP", zap.String("queue", queue))

				return nil
			case err := <-runErr:
				return fmt.Errorf("router stopped during startup: %w", err)
			case <-ctx.Done():
				return fmt.Errorf("router did not start: %w", ctx.Err())
			}
		},
		OnStop: func(ctx context.Context) error {
			if err := router.Close(); err != nil {
				logger.Warn("Failed to close router", zap.Error(err))
			}

			return adapter.Wait(ctx)
		},
	}
}
