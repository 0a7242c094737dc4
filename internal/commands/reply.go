package commands

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

// Reply sends data as the interaction's message response.
func Reply(ctx context.Context, deps *Deps, in *interaction.Interaction, data api.InteractionResponseData) error {
	return deps.REST.RespondInteraction(ctx, in.ID, in.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &data,
	})
}

// ReplyText responds with a plain text message.
func ReplyText(ctx context.Context, deps *Deps, in *interaction.Interaction, content string) error {
	return Reply(ctx, deps, in, api.InteractionResponseData{
		Content: option.NewNullableString(content),
	})
}

// ReplyEphemeral responds with a text message only the invoking user can see.
func ReplyEphemeral(ctx context.Context, deps *Deps, in *interaction.Interaction, content string) error {
	return Reply(ctx, deps, in, api.InteractionResponseData{
		Content: option.NewNullableString(content),
		Flags:   discord.EphemeralMessage,
	})
}

// ReplyEmbeds responds with embeds.
func ReplyEmbeds(ctx context.Context, deps *Deps, in *interaction.Interaction, embeds ...discord.Embed) error {
	return Reply(ctx, deps, in, api.InteractionResponseData{
		Embeds: &embeds,
	})
}
