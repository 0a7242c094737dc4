package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/data"
	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

const (
	disabledColor discord.Color = 0xE67E22
	enabledColor  discord.Color = 0x2ECC71
)

// SettingsCommand manages per-server settings. Only the channels in which
// commands are disabled are editable for now.
type SettingsCommand struct{}

// NewSettingsCommand creates a new SettingsCommand instance.
func NewSettingsCommand() Command {
	return &SettingsCommand{}
}

// Name returns the name of the command.
func (c *SettingsCommand) Name() string {
	return "settings"
}

// Description returns the description of the command.
func (c *SettingsCommand) Description() string {
	return "Change server settings"
}

// Options returns the command options.
func (c *SettingsCommand) Options() []discord.CommandOption {
	channel := func(description string) []discord.CommandOptionValue {
		return []discord.CommandOptionValue{
			&discord.ChannelOption{
				OptionName:   "channel",
				Description:  description,
				Required:     true,
				ChannelTypes: []discord.ChannelType{discord.GuildText, discord.GuildAnnouncement},
			},
		}
	}

	return []discord.CommandOption{
		&discord.SubcommandOption{
			OptionName:  "disable-channel",
			Description: "Disable commands in a channel",
			Options:     channel("Channel to disable commands in"),
		},
		&discord.SubcommandOption{
			OptionName:  "enable-channel",
			Description: "Enable commands in a channel again",
			Options:     channel("Channel to enable commands in"),
		},
		&discord.SubcommandOption{
			OptionName:  "disabled-channels",
			Description: "List channels with commands disabled",
		},
	}
}

// GuildOnly reports that settings can only be used in servers.
func (c *SettingsCommand) GuildOnly() bool {
	return true
}

// DefaultMemberPermissions hides the command from members without Manage
// Server unless a server overrides it.
func (c *SettingsCommand) DefaultMemberPermissions() discord.Permissions {
	return discord.PermissionManageGuild
}

// Execute runs the command.
func (c *SettingsCommand) Execute(ctx context.Context, deps *Deps, in *interaction.Interaction) error {
	opts := in.Options()

	switch sub := opts.Subcommand(); sub {
	case "disable-channel", "enable-channel":
		channel, ok := opts.Channel("channel")
		if !ok {
			return ReplyEphemeral(ctx, deps, in, "You need to provide a channel.")
		}

		return c.setChannel(ctx, deps, in, channel.ID, sub == "disable-channel")
	case "disabled-channels":
		return c.listChannels(ctx, deps, in)
	default:
		return fmt.Errorf("unknown settings subcommand %q", sub)
	}
}

func (c *SettingsCommand) setChannel(ctx context.Context, deps *Deps, in *interaction.Interaction, id discord.ChannelID, disable bool) error {
	cfg, err := guildConfigOrDefault(ctx, deps, in.GuildID)
	if err != nil {
		return err
	}

	channels := parseChannelIDs(cfg.DisabledChannels)
	if disable {
		channels = append(channels, id)
	} else {
		channels = slices.DeleteFunc(channels, func(c discord.ChannelID) bool { return c == id })
	}
	slices.Sort(channels)
	channels = slices.Compact(channels)

	cfg.DisabledChannels = formatChannelIDs(channels)
	if err := deps.Data.UpdateGuildConfig(ctx, in.GuildID, cfg); err != nil {
		return err
	}

	deps.Logger.Debug("Updated disabled channels",
		zap.Stringer("guildID", in.GuildID),
		zap.Stringer("channelID", id),
		zap.Bool("disabled", disable),
	)

	embed := discord.Embed{
		Title:       "Enabled Channels",
		Description: id.Mention(),
		Color:       enabledColor,
	}
	if disable {
		embed.Title = "Disabled Channels"
		embed.Color = disabledColor
	}

	return ReplyEmbeds(ctx, deps, in, embed)
}

func (c *SettingsCommand) listChannels(ctx context.Context, deps *Deps, in *interaction.Interaction) error {
	cfg, err := guildConfigOrDefault(ctx, deps, in.GuildID)
	if err != nil {
		return err
	}

	channels := parseChannelIDs(cfg.DisabledChannels)
	if len(channels) == 0 {
		return ReplyText(ctx, deps, in, "There are no disabled channels")
	}

	mentions := make([]string, len(channels))
	for i, id := range channels {
		mentions[i] = id.Mention()
	}

	return ReplyEmbeds(ctx, deps, in, discord.Embed{
		Title:       "Disabled Channels",
		Description: strings.Join(mentions, "\n"),
		Color:       disabledColor,
	})
}

// guildConfigOrDefault returns an empty config for guilds the data service
// has no record of yet.
func guildConfigOrDefault(ctx context.Context, deps *Deps, id discord.GuildID) (*data.GuildConfig, error) {
	cfg, err := deps.Data.GetGuildConfig(ctx, id)
	switch {
	case err == nil:
		return cfg, nil
	case data.IsNotFound(err):
		return &data.GuildConfig{ID: id}, nil
	default:
		return nil, err
	}
}

// parseChannelIDs skips entries that are not valid snowflakes.
func parseChannelIDs(ids []string) []discord.ChannelID {
	out := make([]discord.ChannelID, 0, len(ids))
	for _, s := range ids {
		sf, err := discord.ParseSnowflake(s)
		if err != nil || !sf.IsValid() {
			continue
		}
		out = append(out, discord.ChannelID(sf))
	}

	return out
}

func formatChannelIDs(ids []discord.ChannelID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
