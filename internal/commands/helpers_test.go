package commands_test

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/interaction"
	"github.com/sushiibot/sushii-interactions/pkg/test"
)

type fixture struct {
	rest *test.MockREST
	data *test.MockDataClient
	deps *commands.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	rest := test.NewMockREST(t)
	data := test.NewMockDataClient(t)

	return &fixture{
		rest: rest,
		data: data,
		deps: &commands.Deps{
			REST:   rest,
			Data:   data,
			Logger: zaptest.NewLogger(t),
			AppID:  appID,
		},
	}
}

// expectReply captures the next interaction response.
func (f *fixture) expectReply(in *interaction.Interaction) *api.InteractionResponse {
	var resp api.InteractionResponse
	f.rest.On("RespondInteraction", mock.Anything, in.ID, in.Token, mock.Anything).
		Run(func(args mock.Arguments) { resp = args.Get(3).(api.InteractionResponse) }).
		Return(nil).
		Once()

	return &resp
}

func guildCommand(name string, options ...interaction.Option) *interaction.Interaction {
	return &interaction.Interaction{
		ID:        discord.InteractionID(discord.NewSnowflake(fixedNow)),
		Type:      interaction.ApplicationCommandType,
		GuildID:   3000,
		ChannelID: 4000,
		Token:     "token",
		Member: &discord.Member{
			User: discord.User{ID: 100, Username: "alice"},
		},
		Data: interaction.Data{
			Name:        name,
			CommandType: interaction.ChatInputCommand,
			Options:     options,
			Resolved: interaction.Resolved{
				Users: map[discord.UserID]discord.User{
					200: {ID: 200, Username: "bob"},
					201: {ID: 201, Username: "robot", Bot: true},
				},
			},
		},
	}
}

func dmCommand(name string) *interaction.Interaction {
	in := guildCommand(name)
	in.GuildID = 0
	in.Member = nil
	in.User = &discord.User{ID: 100, Username: "alice"}

	return in
}
