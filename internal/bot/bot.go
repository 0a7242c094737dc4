package bot

import (
	"context"
	"errors"

	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/config"
	"github.com/sushiibot/sushii-interactions/internal/data"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
)

// Bot owns the command registration lifecycle.
type Bot struct {
	cmdManager       *commands.CommandManager
	unregisterOnStop bool
	logger           *zap.Logger
}

// NewBotParameters holds dependencies for NewBot
type NewBotParameters struct {
	fx.In

	Cfg        *config.Config
	CmdManager *commands.CommandManager
	Logger     *zap.Logger
}

// NewBot creates a new Bot.
func NewBot(params NewBotParameters) (*Bot, error) {
	if params.CmdManager == nil {
		return nil, errors.New("command manager provided to NewBot is nil")
	}
	if params.Logger == nil {
		return nil, errors.New("logger provided to NewBot is nil")
	}

	var unregister bool
	if params.Cfg != nil {
		unregister = params.Cfg.Discord.UnregisterOnStop
	}

	return &Bot{
		cmdManager:       params.CmdManager,
		unregisterOnStop: unregister,
		logger:           params.Logger.Named("bot"),
	}, nil
}

// Start registers the slash commands. A failed registration stops startup.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	return b.cmdManager.RegisterCommands(ctx)
}

// Stop removes the test guild commands if configured to.
func (b *Bot) Stop(ctx context.Context) error {
	if !b.unregisterOnStop {
		return nil
	}

	b.logger.Info("Unregistering commands on stop")

	return b.cmdManager.UnregisterCommands(ctx)
}

// DepsParams holds dependencies for NewDeps.
type DepsParams struct {
	fx.In

	REST   commands.REST
	Data   *data.Client
	AppID  discord.AppID
	Logger *zap.Logger
}

// NewDeps builds the dependencies shared by every handler.
func NewDeps(params DepsParams) *commands.Deps {
	return &commands.Deps{
		REST:   params.REST,
		Data:   params.Data,
		AppID:  params.AppID,
		Logger: params.Logger.Named("handlers"),
	}
}

// DispatcherParams holds dependencies for NewDispatcherFromConfig.
type DispatcherParams struct {
	fx.In

	Registry *commands.Registry
	Deps     *commands.Deps
	Cfg      *config.Config
	Metrics  *metrics.Metrics `optional:"true"`
	Logger   *zap.Logger
}

// NewDispatcherFromConfig creates the Dispatcher with the configured deadline.
func NewDispatcherFromConfig(params DispatcherParams) *Dispatcher {
	var opts []DispatcherOption
	if params.Metrics != nil {
		opts = append(opts, WithMetrics(params.Metrics))
	}

	return NewDispatcher(params.Registry, params.Deps, params.Cfg.Transport.DispatchTimeout, params.Logger, opts...)
}
