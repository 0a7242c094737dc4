package commands

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/config"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
)

// CommandManager handles the registration of slash commands with Discord.
type CommandManager struct {
	registrar     Registrar
	registry      *Registry
	applicationID discord.AppID
	guildID       discord.GuildID
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// CommandManagerParams holds dependencies for NewCommandManager.
type CommandManagerParams struct {
	fx.In
	Registrar     Registrar
	Registry      *Registry
	ApplicationID discord.AppID
	Cfg           *config.Config
	Metrics       *metrics.Metrics `optional:"true"`
	Logger        *zap.Logger
}

// NewCommandManager creates a new CommandManager. Commands are registered in
// the configured test guild if there is one, globally otherwise.
func NewCommandManager(params CommandManagerParams) (*CommandManager, error) {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var guildID discord.GuildID
	if params.Cfg != nil {
		id, err := params.Cfg.GuildID()
		if err != nil {
			return nil, err
		}
		guildID = id
	}

	return &CommandManager{
		registrar:     params.Registrar,
		registry:      params.Registry,
		applicationID: params.ApplicationID,
		guildID:       guildID,
		metrics:       params.Metrics,
		logger:        logger.Named("command_manager"),
	}, nil
}

// RegisterCommands replaces the registered commands with every command in the
// registry in a single bulk overwrite.
func (cm *CommandManager) RegisterCommands(ctx context.Context) error {
	cmds := cm.registry.CommandData()

	cm.logger.Info("Registering slash commands with Discord",
		zap.Int("count", len(cmds)),
		zap.String("scope", cm.scope()),
		zap.Stringer("applicationID", cm.applicationID),
	)

	registered, err := cm.overwrite(ctx, cmds)
	if err != nil {
		cm.record("error")

		return fmt.Errorf("failed to register %d commands (%s): %w", len(cmds), cm.scope(), err)
	}

	cm.record("success")
	cm.logger.Info("Successfully registered slash commands",
		zap.Int("count", len(registered)),
		zap.String("scope", cm.scope()),
	)

	return nil
}

// UnregisterCommands removes every command from the test guild. It does
// nothing when commands are registered globally.
func (cm *CommandManager) UnregisterCommands(ctx context.Context) error {
	if cm.guildID == 0 {
		cm.logger.Debug("Skipping unregister, commands are global")

		return nil
	}

	cm.logger.Info("Unregistering all slash commands", zap.Stringer("guildID", cm.guildID))

	if _, err := cm.overwrite(ctx, []api.CreateCommandData{}); err != nil {
		return fmt.Errorf("failed to unregister commands in guild %s: %w", cm.guildID, err)
	}

	return nil
}

func (cm *CommandManager) overwrite(ctx context.Context, cmds []api.CreateCommandData) ([]discord.Command, error) {
	if cm.guildID != 0 {
		return cm.registrar.BulkOverwriteGuildCommands(ctx, cm.applicationID, cm.guildID, cmds)
	}

	return cm.registrar.BulkOverwriteCommands(ctx, cm.applicationID, cmds)
}

func (cm *CommandManager) scope() string {
	if cm.guildID != 0 {
		return "guild"
	}

	return "global"
}

func (cm *CommandManager) record(status string) {
	if cm.metrics != nil {
		cm.metrics.RecordRegistration(cm.scope(), status)
	}
}
