// Package discord provides Discord-related infrastructure and Fx modules.
package discord

import (
	"context"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/config"
)

// Module provides Discord-related dependencies.
var Module = fx.Module("discord",
	fx.Provide(
		NewClientFromConfig,
		func(c *Client) commands.REST { return c },
		func(c *Client) commands.Registrar { return c },
		NewSession,
		ProvideApplicationID,
	),
)

// NewClientFromConfig creates the REST client from config.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	return NewClient(cfg.Discord.BotToken, cfg.Discord.ProxyURL, cfg.Discord.RESTTimeout)
}

// SessionParams holds dependencies for NewSession.
type SessionParams struct {
	fx.In
	Cfg    *config.Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

// SessionResult holds results from NewSession.
type SessionResult struct {
	fx.Out
	Session *session.Session
}

// NewSession creates the gateway session. It is only connected when the
// gateway transport is selected; with AMQP the gateway is owned by another
// service.
func NewSession(params SessionParams) SessionResult {
	s := session.New("Bot " + params.Cfg.Discord.BotToken)
	s.AddIntents(gateway.IntentGuilds)

	if params.Cfg.Transport.Mode != config.TransportGateway {
		return SessionResult{Session: s}
	}

	logger := params.Logger.Named("session")

	params.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Opening Discord session")

			return s.Open(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Discord session")

			return s.Close()
		},
	})

	return SessionResult{Session: s}
}

// ProvideApplicationID extracts the ApplicationID from config.
func ProvideApplicationID(cfg *config.Config, logger *zap.Logger) (discord.AppID, error) {
	appID, err := cfg.AppID()
	if err != nil {
		logger.Error("Application ID is not configured or is invalid", zap.Error(err))

		return 0, err
	}

	logger.Info("Providing Discord AppID", zap.Stringer("appID", appID))

	return appID, nil
}
