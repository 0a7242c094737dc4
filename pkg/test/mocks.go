// Package test provides testify mocks for the interaction service interfaces.
package test

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/mock"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/data"
	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCommand is a mock implementation of commands.Command.
type MockCommand struct {
	mock.Mock
}

// NewMockCommand creates a MockCommand whose expectations are asserted when
// the test ends.
func NewMockCommand(t testingT) *MockCommand {
	m := &MockCommand{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommand) Name() string {
	return m.Called().String(0)
}

func (m *MockCommand) Description() string {
	return m.Called().String(0)
}

func (m *MockCommand) Options() []discord.CommandOption {
	ret := m.Called()
	if opts, ok := ret.Get(0).([]discord.CommandOption); ok {
		return opts
	}

	return nil
}

func (m *MockCommand) Execute(ctx context.Context, deps *commands.Deps, in *interaction.Interaction) error {
	return m.Called(ctx, deps, in).Error(0)
}

// MockCheckedCommand is a MockCommand that also implements commands.Checker
// and commands.GuildOnly.
type MockCheckedCommand struct {
	MockCommand
}

// NewMockCheckedCommand creates a MockCheckedCommand.
func NewMockCheckedCommand(t testingT) *MockCheckedCommand {
	m := &MockCheckedCommand{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCheckedCommand) Check(ctx context.Context, deps *commands.Deps, in *interaction.Interaction) (commands.CheckResult, error) {
	ret := m.Called(ctx, deps, in)

	return ret.Get(0).(commands.CheckResult), ret.Error(1)
}

func (m *MockCheckedCommand) GuildOnly() bool {
	return m.Called().Bool(0)
}

// MockButton is a mock implementation of commands.Button.
type MockButton struct {
	mock.Mock
}

// NewMockButton creates a MockButton.
func NewMockButton(t testingT) *MockButton {
	m := &MockButton{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockButton) ButtonID() string {
	return m.Called().String(0)
}

func (m *MockButton) HandleButton(ctx context.Context, deps *commands.Deps, in *interaction.Interaction) error {
	return m.Called(ctx, deps, in).Error(0)
}

// MockModal is a mock implementation of commands.Modal.
type MockModal struct {
	mock.Mock
}

// NewMockModal creates a MockModal.
func NewMockModal(t testingT) *MockModal {
	m := &MockModal{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockModal) ModalID() string {
	return m.Called().String(0)
}

func (m *MockModal) HandleModal(ctx context.Context, deps *commands.Deps, in *interaction.Interaction) error {
	return m.Called(ctx, deps, in).Error(0)
}

// MockREST is a mock implementation of commands.REST.
type MockREST struct {
	mock.Mock
}

// NewMockREST creates a MockREST.
func NewMockREST(t testingT) *MockREST {
	m := &MockREST{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockREST) RespondInteraction(ctx context.Context, id discord.InteractionID, token string, resp api.InteractionResponse) error {
	return m.Called(ctx, id, token, resp).Error(0)
}

func (m *MockREST) FollowUp(ctx context.Context, appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error) {
	ret := m.Called(ctx, appID, token, data)
	msg, _ := ret.Get(0).(*discord.Message)

	return msg, ret.Error(1)
}

func (m *MockREST) Member(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	ret := m.Called(ctx, guildID, userID)
	member, _ := ret.Get(0).(*discord.Member)

	return member, ret.Error(1)
}

// MockRegistrar is a mock implementation of commands.Registrar.
type MockRegistrar struct {
	mock.Mock
}

// NewMockRegistrar creates a MockRegistrar.
func NewMockRegistrar(t testingT) *MockRegistrar {
	m := &MockRegistrar{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRegistrar) BulkOverwriteCommands(ctx context.Context, appID discord.AppID, cmds []api.CreateCommandData) ([]discord.Command, error) {
	ret := m.Called(ctx, appID, cmds)
	registered, _ := ret.Get(0).([]discord.Command)

	return registered, ret.Error(1)
}

func (m *MockRegistrar) BulkOverwriteGuildCommands(ctx context.Context, appID discord.AppID, guildID discord.GuildID, cmds []api.CreateCommandData) ([]discord.Command, error) {
	ret := m.Called(ctx, appID, guildID, cmds)
	registered, _ := ret.Get(0).([]discord.Command)

	return registered, ret.Error(1)
}

// MockDataClient is a mock implementation of commands.DataClient.
type MockDataClient struct {
	mock.Mock
}

// NewMockDataClient creates a MockDataClient.
func NewMockDataClient(t testingT) *MockDataClient {
	m := &MockDataClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDataClient) GetUser(ctx context.Context, id discord.UserID) (*data.User, error) {
	ret := m.Called(ctx, id)
	user, _ := ret.Get(0).(*data.User)

	return user, ret.Error(1)
}

func (m *MockDataClient) UpdateUser(ctx context.Context, user *data.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockDataClient) GetGuildConfig(ctx context.Context, id discord.GuildID) (*data.GuildConfig, error) {
	ret := m.Called(ctx, id)
	cfg, _ := ret.Get(0).(*data.GuildConfig)

	return cfg, ret.Error(1)
}

func (m *MockDataClient) UpdateGuildConfig(ctx context.Context, id discord.GuildID, cfg *data.GuildConfig) error {
	return m.Called(ctx, id, cfg).Error(0)
}

var (
	_ commands.Command    = (*MockCommand)(nil)
	_ commands.Checker    = (*MockCheckedCommand)(nil)
	_ commands.GuildOnly  = (*MockCheckedCommand)(nil)
	_ commands.Button     = (*MockButton)(nil)
	_ commands.Modal      = (*MockModal)(nil)
	_ commands.REST       = (*MockREST)(nil)
	_ commands.Registrar  = (*MockRegistrar)(nil)
	_ commands.DataClient = (*MockDataClient)(nil)
)
