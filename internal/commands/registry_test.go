package commands_test

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/pkg/test"
)

func TestNewRegistryFromGroups(t *testing.T) {
	t.Run("SuccessWithUniqueCommands", func(t *testing.T) {
		mockCmd1 := test.NewMockCommand(t)
		mockCmd1.On("Name").Return("ping")

		mockCmd2 := test.NewMockCommand(t)
		mockCmd2.On("Name").Return("help")

		r := commands.NewRegistryFromGroups(commands.RegistryParams{
			Logger:   zap.NewNop(),
			Commands: []commands.Command{mockCmd1, mockCmd2},
		})
		require.NotNil(t, r)

		retCmd1, ok := r.Command("ping")
		assert.True(t, ok)
		assert.Equal(t, mockCmd1, retCmd1)

		retCmd2, ok := r.Command("help")
		assert.True(t, ok)
		assert.Equal(t, mockCmd2, retCmd2)

		_, ok = r.Command("nonexistent")
		assert.False(t, ok)
	})

	t.Run("NoCommands", func(t *testing.T) {
		r := commands.NewRegistryFromGroups(commands.RegistryParams{Logger: zap.NewNop()})
		require.NotNil(t, r)

		_, ok := r.Command("any")
		assert.False(t, ok)
		assert.Empty(t, r.Commands())
		assert.Empty(t, r.CommandData())
	})

	t.Run("NilCommandInSlice", func(t *testing.T) {
		mockCmd1 := test.NewMockCommand(t)
		mockCmd1.On("Name").Return("valid")

		r := commands.NewRegistryFromGroups(commands.RegistryParams{
			Logger:   zap.NewNop(),
			Commands: []commands.Command{nil, mockCmd1, nil},
		})

		retCmd1, ok := r.Command("valid")
		assert.True(t, ok)
		assert.Equal(t, mockCmd1, retCmd1)
		assert.Len(t, r.Commands(), 1)
	})
}

func TestRegistry_DuplicateCommandNames(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := commands.NewRegistry(zap.New(core))

	mockCmd1a := test.NewMockCommand(t)
	mockCmd1a.On("Name").Return("dup")

	mockCmd1b := test.NewMockCommand(t)
	mockCmd1b.On("Name").Return("dup")

	mockCmd2 := test.NewMockCommand(t)
	mockCmd2.On("Name").Return("unique")

	r.AddCommand(mockCmd1a)
	r.AddCommand(mockCmd2)
	r.AddCommand(mockCmd1b)

	retCmdDup, ok := r.Command("dup")
	assert.True(t, ok)
	assert.Same(t, mockCmd1b, retCmdDup) // last registration wins

	// The replaced command keeps its original position.
	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Same(t, mockCmd1b, cmds[0])
	assert.Same(t, mockCmd2, cmds[1])

	dupLogs := logs.FilterMessage("Duplicate command name, replacing previous handler").All()
	require.Len(t, dupLogs, 1)
	assert.Equal(t, "dup", dupLogs[0].ContextMap()["commandName"])
}

func TestRegistry_NilLogger(t *testing.T) {
	mockCmd1 := test.NewMockCommand(t)
	mockCmd1.On("Name").Return("testlog")

	r := commands.NewRegistry(nil)
	r.AddCommand(mockCmd1)

	retCmd1, ok := r.Command("testlog")
	assert.True(t, ok)
	assert.Equal(t, mockCmd1, retCmd1)
}

func TestRegistry_ButtonLookup(t *testing.T) {
	exact := test.NewMockButton(t)
	exact.On("ButtonID").Return("fishy:again:1")

	prefixed := test.NewMockButton(t)
	prefixed.On("ButtonID").Return("fishy")

	r := commands.NewRegistryFromGroups(commands.RegistryParams{
		Logger:  zap.NewNop(),
		Buttons: []commands.Button{exact, prefixed},
	})

	b, ok := r.Button("fishy:again:1")
	require.True(t, ok)
	assert.Same(t, exact, b, "exact id wins over prefix")

	b, ok = r.Button("fishy:again:2")
	require.True(t, ok)
	assert.Same(t, prefixed, b)

	b, ok = r.Button("fishy")
	require.True(t, ok)
	assert.Same(t, prefixed, b)

	_, ok = r.Button("fishyfoo")
	assert.False(t, ok, "prefix must end at ':'")

	_, ok = r.Button("other:fishy")
	assert.False(t, ok)
}

func TestRegistry_ModalLookup(t *testing.T) {
	modal := test.NewMockModal(t)
	modal.On("ModalID").Return("feedback")

	core, logs := observer.New(zapcore.WarnLevel)
	r := commands.NewRegistry(zap.New(core))
	r.AddModal(modal)
	r.AddModal(modal)

	m, ok := r.Modal("feedback:123")
	require.True(t, ok)
	assert.Same(t, modal, m)

	_, ok = r.Modal("unknown")
	assert.False(t, ok)

	assert.Equal(t, 1, logs.FilterMessage("Duplicate modal id, replacing previous handler").Len())
}

func TestRegistry_CommandData(t *testing.T) {
	plain := test.NewMockCommand(t)
	plain.On("Name").Return("ping")
	plain.On("Description").Return("Responds with Pong!")
	plain.On("Options").Return(nil)

	guildOnly := test.NewMockCheckedCommand(t)
	guildOnly.On("Name").Return("fishy")
	guildOnly.On("Description").Return("Catch some fish!")
	guildOnly.On("Options").Return([]discord.CommandOption{
		&discord.UserOption{OptionName: "user", Description: "who", Required: true},
	})
	guildOnly.On("GuildOnly").Return(true)

	r := commands.NewRegistry(zap.NewNop())
	r.AddCommand(plain)
	r.AddCommand(guildOnly)

	data := r.CommandData()
	require.Len(t, data, 2)

	assert.Equal(t, "ping", data[0].Name)
	assert.Equal(t, "Responds with Pong!", data[0].Description)
	assert.False(t, data[0].NoDMPermission)
	assert.Empty(t, data[0].Options)

	assert.Equal(t, "fishy", data[1].Name)
	assert.True(t, data[1].NoDMPermission)
	require.Len(t, data[1].Options, 1)
	assert.Equal(t, "user", data[1].Options[0].Name())
}
