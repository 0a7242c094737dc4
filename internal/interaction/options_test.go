package interaction_test

import (
	"encoding/json"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

func opt(name string, typ interaction.OptionType, value string) interaction.Option {
	return interaction.Option{Name: name, Type: typ, Value: json.RawMessage(value)}
}

func TestNewOptionResolver_Flat(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("query", interaction.StringOption, `"hello"`),
	}, interaction.Resolved{})

	assert.Empty(t, r.Subcommand())
	assert.Empty(t, r.SubcommandGroup())

	s, ok := r.String("query")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestNewOptionResolver_HoistsSubcommand(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		{
			Name: "set",
			Type: interaction.SubcommandOption,
			Options: []interaction.Option{
				opt("amount", interaction.IntegerOption, `5`),
			},
		},
	}, interaction.Resolved{})

	assert.Equal(t, "set", r.Subcommand())
	assert.Empty(t, r.SubcommandGroup())

	n, ok := r.Integer("amount")
	assert.True(t, ok)
	assert.Equal(t, int64(5), n)
}

func TestNewOptionResolver_HoistsGroupThenSubcommand(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		{
			Name: "settings",
			Type: interaction.SubcommandGroupOption,
			Options: []interaction.Option{
				{
					Name: "joinmsg",
					Type: interaction.SubcommandOption,
					Options: []interaction.Option{
						opt("enabled", interaction.BooleanOption, `true`),
					},
				},
			},
		},
	}, interaction.Resolved{})

	assert.Equal(t, "settings", r.SubcommandGroup())
	assert.Equal(t, "joinmsg", r.Subcommand())
	require.Len(t, r.Hoisted(), 1)

	b, ok := r.Boolean("enabled")
	assert.True(t, ok)
	assert.True(t, b)
}

func TestNewOptionResolver_Empty(t *testing.T) {
	r := interaction.NewOptionResolver(nil, interaction.Resolved{})

	assert.Empty(t, r.Subcommand())
	assert.Empty(t, r.SubcommandGroup())
	assert.Empty(t, r.Hoisted())

	_, ok := r.Get("anything")
	assert.False(t, ok)
}

func TestOptionResolver_AbsentOptions(t *testing.T) {
	r := interaction.NewOptionResolver(nil, interaction.Resolved{})

	s, ok := r.String("missing")
	assert.False(t, ok)
	assert.Empty(t, s)

	n, ok := r.Integer("missing")
	assert.False(t, ok)
	assert.Zero(t, n)

	f, ok := r.Number("missing")
	assert.False(t, ok)
	assert.Zero(t, f)

	b, ok := r.Boolean("missing")
	assert.False(t, ok)
	assert.False(t, b)

	u, ok := r.User("missing")
	assert.False(t, ok)
	assert.Nil(t, u)

	m, ok := r.Member("missing")
	assert.False(t, ok)
	assert.Nil(t, m)

	role, ok := r.Role("missing")
	assert.False(t, ok)
	assert.Nil(t, role)

	ch, ok := r.Channel("missing")
	assert.False(t, ok)
	assert.Nil(t, ch)

	att, ok := r.Attachment("missing")
	assert.False(t, ok)
	assert.Nil(t, att)

	mention, ok := r.Mentionable("missing")
	assert.False(t, ok)
	assert.Equal(t, interaction.Mentionable{}, mention)
}

func TestOptionResolver_Scalars(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("name", interaction.StringOption, `"sushii"`),
		opt("count", interaction.IntegerOption, `9007199254740993`),
		opt("ratio", interaction.NumberOption, `0.25`),
		opt("flag", interaction.BooleanOption, `false`),
	}, interaction.Resolved{})

	s, ok := r.String("name")
	assert.True(t, ok)
	assert.Equal(t, "sushii", s)

	n, ok := r.Integer("count")
	assert.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	f, ok := r.Number("ratio")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, f, 1e-9)

	b, ok := r.Boolean("flag")
	assert.True(t, ok)
	assert.False(t, b)
}

func TestOptionResolver_TypeMismatchPanics(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("name", interaction.StringOption, `"sushii"`),
	}, interaction.Resolved{})

	defer func() {
		rec := recover()
		require.NotNil(t, rec)

		err, ok := rec.(*interaction.OptionTypeError)
		require.True(t, ok, "expected *OptionTypeError, got %T", rec)
		assert.Equal(t, "name", err.Name)
		assert.Equal(t, interaction.StringOption, err.Declared)
		assert.Equal(t, interaction.IntegerOption, err.Wanted)
		assert.Contains(t, err.Error(), `"name"`)
	}()

	r.Integer("name")
	t.Fatal("expected panic")
}

func TestOptionResolver_SubcommandReadAsValuePanics(t *testing.T) {
	// A second subcommand-typed option is not hoisted and cannot be read as a value.
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("text", interaction.StringOption, `"x"`),
		{Name: "nested", Type: interaction.SubcommandOption},
	}, interaction.Resolved{})

	assert.Panics(t, func() {
		r.String("nested")
	})
}

func TestOptionResolver_InvalidValuePanics(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("count", interaction.IntegerOption, `"not a number"`),
	}, interaction.Resolved{})

	assert.Panics(t, func() {
		r.Integer("count")
	})
}

func resolvedFixture() interaction.Resolved {
	return interaction.Resolved{
		Users: map[discord.UserID]discord.User{
			100: {ID: 100, Username: "alice"},
			200: {ID: 200, Username: "bob"},
		},
		Members: map[discord.UserID]discord.Member{
			100: {Nick: "ally", RoleIDs: []discord.RoleID{300}},
		},
		Roles: map[discord.RoleID]discord.Role{
			300: {ID: 300, Name: "mods"},
		},
		Channels: map[discord.ChannelID]discord.Channel{
			400: {ID: 400, Name: "general"},
		},
		Attachments: map[discord.AttachmentID]discord.Attachment{
			500: {ID: 500, Filename: "cat.png"},
		},
	}
}

func TestOptionResolver_References(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("user", interaction.UserOption, `"100"`),
		opt("other", interaction.UserOption, `"200"`),
		opt("ghost", interaction.UserOption, `"999"`),
		opt("role", interaction.RoleOption, `"300"`),
		opt("channel", interaction.ChannelOption, `"400"`),
		opt("file", interaction.AttachmentOption, `"500"`),
	}, resolvedFixture())

	user, ok := r.User("user")
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)

	member, ok := r.Member("user")
	require.True(t, ok)
	assert.Equal(t, "ally", member.Nick)
	assert.Equal(t, discord.UserID(100), member.User.ID)

	_, ok = r.Member("other")
	assert.False(t, ok, "bob has no resolved member")

	_, ok = r.User("ghost")
	assert.False(t, ok)

	role, ok := r.Role("role")
	require.True(t, ok)
	assert.Equal(t, "mods", role.Name)

	ch, ok := r.Channel("channel")
	require.True(t, ok)
	assert.Equal(t, "general", ch.Name)

	att, ok := r.Attachment("file")
	require.True(t, ok)
	assert.Equal(t, "cat.png", att.Filename)
}

func TestOptionResolver_Mentionable(t *testing.T) {
	r := interaction.NewOptionResolver([]interaction.Option{
		opt("member", interaction.MentionableOption, `"100"`),
		opt("user", interaction.MentionableOption, `"200"`),
		opt("role", interaction.MentionableOption, `"300"`),
		opt("none", interaction.MentionableOption, `"999"`),
	}, resolvedFixture())

	m, ok := r.Mentionable("member")
	require.True(t, ok)
	require.NotNil(t, m.Member)
	assert.Nil(t, m.User)
	assert.Nil(t, m.Role)
	assert.Equal(t, "alice", m.Member.User.Username)

	m, ok = r.Mentionable("user")
	require.True(t, ok)
	assert.Nil(t, m.Member)
	require.NotNil(t, m.User)
	assert.Equal(t, "bob", m.User.Username)

	m, ok = r.Mentionable("role")
	require.True(t, ok)
	require.NotNil(t, m.Role)
	assert.Equal(t, "mods", m.Role.Name)

	_, ok = r.Mentionable("none")
	assert.False(t, ok)
}

func TestOptionResolver_FocusedOption(t *testing.T) {
	focused := opt("query", interaction.StringOption, `"sus"`)
	focused.Focused = true

	r := interaction.NewOptionResolver([]interaction.Option{
		opt("limit", interaction.IntegerOption, `3`),
		focused,
	}, interaction.Resolved{})

	got, ok := r.FocusedOption()
	require.True(t, ok)
	assert.Equal(t, "query", got.Name)
}

func TestOptionResolver_FocusedOptionIgnoresOtherTypes(t *testing.T) {
	focusedBool := opt("flag", interaction.BooleanOption, `true`)
	focusedBool.Focused = true

	r := interaction.NewOptionResolver([]interaction.Option{
		focusedBool,
		opt("query", interaction.StringOption, `"x"`),
	}, interaction.Resolved{})

	_, ok := r.FocusedOption()
	assert.False(t, ok)
}

func TestOptionType_String(t *testing.T) {
	assert.Equal(t, "string", interaction.StringOption.String())
	assert.Equal(t, "subcommand group", interaction.SubcommandGroupOption.String())
	assert.Equal(t, "OptionType(42)", interaction.OptionType(42).String())
}
