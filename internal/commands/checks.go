package commands

import (
	"context"
	"slices"

	"github.com/sushiibot/sushii-interactions/internal/data"
	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

const channelDisabledMessage = "Commands are disabled in this channel."

// channelEnabled fails when the interaction comes from a channel listed in
// the guild's disabled channels. DMs and guilds without a config pass.
func channelEnabled(ctx context.Context, deps *Deps, in *interaction.Interaction) (CheckResult, error) {
	if in.GuildID == 0 || !in.ChannelID.IsValid() {
		return Pass, nil
	}

	cfg, err := deps.Data.GetGuildConfig(ctx, in.GuildID)
	switch {
	case err == nil:
	case data.IsNotFound(err):
		return Pass, nil
	default:
		return CheckResult{}, err
	}

	if slices.Contains(cfg.DisabledChannels, in.ChannelID.String()) {
		return Fail(channelDisabledMessage), nil
	}

	return Pass, nil
}
