package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sushiibot/sushii-interactions/internal/commands"
)

func fieldNames(e discord.Embed) []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Name
	}

	return names
}

func TestUserinfoCommand_GuildMember(t *testing.T) {
	f := newFixture(t)
	in := guildCommand("userinfo", userOption("200"))

	joined := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	boosted := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	f.rest.On("Member", mock.Anything, discord.GuildID(3000), discord.UserID(200)).
		Return(&discord.Member{
			User:         discord.User{ID: 200, Username: "bob"},
			Nick:         "bobby",
			RoleIDs:      []discord.RoleID{11, 12},
			Joined:       discord.NewTimestamp(joined),
			BoostedSince: discord.NewTimestamp(boosted),
		}, nil)
	resp := f.expectReply(in)

	require.NoError(t, commands.NewUserinfoCommand().Execute(context.Background(), f.deps, in))

	embed := (*resp.Data.Embeds)[0]
	assert.Equal(t, "bob ~ bobby", embed.Author.Name)
	assert.Equal(t, "ID: 200", embed.Footer.Text)
	assert.Equal(t, []string{"Account Created", "Roles", "Joined Server", "Boosting Since"}, fieldNames(embed))
	assert.Equal(t, "<@&11> <@&12>", embed.Fields[1].Value)
	assert.Contains(t, embed.Fields[2].Value, "<t:1619827200:F>")
}

func TestUserinfoCommand_DefaultsToSender(t *testing.T) {
	f := newFixture(t)
	in := guildCommand("userinfo")

	f.rest.On("Member", mock.Anything, discord.GuildID(3000), discord.UserID(100)).
		Return(&discord.Member{User: discord.User{ID: 100, Username: "alice"}}, nil)
	resp := f.expectReply(in)

	require.NoError(t, commands.NewUserinfoCommand().Execute(context.Background(), f.deps, in))

	embed := (*resp.Data.Embeds)[0]
	assert.Equal(t, "alice", embed.Author.Name)
	assert.Equal(t, []string{"Account Created", "Roles"}, fieldNames(embed))
	assert.Equal(t, "None", embed.Fields[1].Value)
}

func TestUserinfoCommand_NotInGuild(t *testing.T) {
	f := newFixture(t)
	in := guildCommand("userinfo", userOption("200"))

	f.rest.On("Member", mock.Anything, discord.GuildID(3000), discord.UserID(200)).
		Return(nil, &httputil.HTTPError{Status: 404})
	resp := f.expectReply(in)

	require.NoError(t, commands.NewUserinfoCommand().Execute(context.Background(), f.deps, in))

	embed := (*resp.Data.Embeds)[0]
	assert.Equal(t, []string{"Account Created"}, fieldNames(embed))
}

func TestUserinfoCommand_MemberError(t *testing.T) {
	f := newFixture(t)
	in := guildCommand("userinfo", userOption("200"))

	boom := errors.New("proxy down")
	f.rest.On("Member", mock.Anything, discord.GuildID(3000), discord.UserID(200)).Return(nil, boom)

	err := commands.NewUserinfoCommand().Execute(context.Background(), f.deps, in)
	assert.ErrorIs(t, err, boom)
}

func TestUserinfoCommand_DM(t *testing.T) {
	f := newFixture(t)
	in := dmCommand("userinfo")
	resp := f.expectReply(in)

	require.NoError(t, commands.NewUserinfoCommand().Execute(context.Background(), f.deps, in))

	embed := (*resp.Data.Embeds)[0]
	assert.Equal(t, "alice", embed.Author.Name)
	assert.Equal(t, []string{"Account Created"}, fieldNames(embed))
	f.rest.AssertNotCalled(t, "Member", mock.Anything, mock.Anything, mock.Anything)
}
