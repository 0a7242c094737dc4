package commands

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/data"
	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

// Command defines the interface for slash commands.
type Command interface {
	Name() string
	Description() string
	Options() []discord.CommandOption
	Execute(ctx context.Context, deps *Deps, in *interaction.Interaction) error
}

// Button handles clicks on buttons whose custom id is ButtonID, or starts
// with ButtonID followed by ':'.
type Button interface {
	ButtonID() string
	HandleButton(ctx context.Context, deps *Deps, in *interaction.Interaction) error
}

// Modal handles submissions of modals whose custom id is ModalID, or starts
// with ModalID followed by ':'.
type Modal interface {
	ModalID() string
	HandleModal(ctx context.Context, deps *Deps, in *interaction.Interaction) error
}

// CheckResult is the outcome of a pre-execution check. Message is shown to
// the user when OK is false.
type CheckResult struct {
	OK      bool
	Message string
}

// Pass is a successful CheckResult.
var Pass = CheckResult{OK: true}

// Fail returns a failed CheckResult with the given user-facing message.
func Fail(message string) CheckResult {
	return CheckResult{Message: message}
}

// Checker is implemented by commands that must pass a check before they run.
type Checker interface {
	Check(ctx context.Context, deps *Deps, in *interaction.Interaction) (CheckResult, error)
}

// GuildOnly is implemented by commands that can only be used in a server.
type GuildOnly interface {
	GuildOnly() bool
}

// Permissioned is implemented by commands that are hidden from members
// without the returned permissions by default.
type Permissioned interface {
	DefaultMemberPermissions() discord.Permissions
}

// IsGuildOnly reports whether cmd is restricted to servers.
func IsGuildOnly(cmd Command) bool {
	g, ok := cmd.(GuildOnly)

	return ok && g.GuildOnly()
}

// REST is the part of the Discord REST API handlers use.
type REST interface {
	RespondInteraction(ctx context.Context, id discord.InteractionID, token string, resp api.InteractionResponse) error
	FollowUp(ctx context.Context, appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error)
	Member(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.Member, error)
}

// Registrar replaces the application's registered commands.
type Registrar interface {
	BulkOverwriteCommands(ctx context.Context, appID discord.AppID, cmds []api.CreateCommandData) ([]discord.Command, error)
	BulkOverwriteGuildCommands(ctx context.Context, appID discord.AppID, guildID discord.GuildID, cmds []api.CreateCommandData) ([]discord.Command, error)
}

// DataClient reads and writes records in the data service.
type DataClient interface {
	GetUser(ctx context.Context, id discord.UserID) (*data.User, error)
	UpdateUser(ctx context.Context, user *data.User) error
	GetGuildConfig(ctx context.Context, id discord.GuildID) (*data.GuildConfig, error)
	UpdateGuildConfig(ctx context.Context, id discord.GuildID, cfg *data.GuildConfig) error
}

// Deps is shared by every handler invocation. It is read-only after startup.
type Deps struct {
	REST   REST
	Data   DataClient
	Logger *zap.Logger
	AppID  discord.AppID
}

// Descriptor builds the registration payload for cmd.
func Descriptor(cmd Command) api.CreateCommandData {
	desc := api.CreateCommandData{
		Name:           cmd.Name(),
		Description:    cmd.Description(),
		Options:        cmd.Options(),
		NoDMPermission: IsGuildOnly(cmd),
	}

	if p, ok := cmd.(Permissioned); ok {
		perms := p.DefaultMemberPermissions()
		desc.DefaultMemberPermissions = &perms
	}

	return desc
}
