// Package interaction models inbound Discord interactions and decodes their
// command options into typed values.
package interaction

import (
	"encoding/json"
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

// Type is the top-level interaction type sent by Discord.
type Type int

const (
	PingType               Type = 1
	ApplicationCommandType Type = 2
	MessageComponentType   Type = 3
	AutocompleteType       Type = 4
	ModalSubmitType        Type = 5
)

// CommandType is the application command subtype.
type CommandType int

const (
	ChatInputCommand CommandType = 1
	UserCommand      CommandType = 2
	MessageCommand   CommandType = 3
)

// ComponentType is the message component subtype.
type ComponentType int

const (
	ActionRowComponent    ComponentType = 1
	ButtonComponent       ComponentType = 2
	StringSelectComponent ComponentType = 3
	TextInputComponent    ComponentType = 4
)

// Kind labels used in logs and metrics.
const (
	KindCommand = "command"
	KindButton  = "button"
	KindModal   = "modal"
	KindOther   = "other"
)

// Interaction is a single inbound interaction, normalized from either the
// gateway or an AMQP-forwarded gateway dispatch.
type Interaction struct {
	ID          discord.InteractionID `json:"id"`
	AppID       discord.AppID         `json:"application_id"`
	Type        Type                  `json:"type"`
	Data        Data                  `json:"data"`
	GuildID     discord.GuildID       `json:"guild_id,omitempty"`
	ChannelID   discord.ChannelID     `json:"channel_id,omitempty"`
	Member      *discord.Member       `json:"member,omitempty"`
	User        *discord.User         `json:"user,omitempty"`
	Token       string                `json:"token"`
	Version     int                   `json:"version"`
	Locale      string                `json:"locale,omitempty"`
	GuildLocale string                `json:"guild_locale,omitempty"`
}

// Data is the union of command, component and modal payloads. Only the fields
// relevant to the interaction's Type are populated.
type Data struct {
	// Application commands.
	ID          discord.CommandID `json:"id,omitempty"`
	Name        string            `json:"name,omitempty"`
	CommandType CommandType       `json:"type,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Resolved    Resolved          `json:"resolved,omitempty"`
	TargetID    discord.Snowflake `json:"target_id,omitempty"`

	// Message components and modals.
	CustomID      string          `json:"custom_id,omitempty"`
	ComponentType ComponentType   `json:"component_type,omitempty"`
	Values        []string        `json:"values,omitempty"`
	Components    json.RawMessage `json:"components,omitempty"`
}

// Resolved is the per-interaction table of entities referenced by options.
type Resolved struct {
	Users       map[discord.UserID]discord.User             `json:"users,omitempty"`
	Members     map[discord.UserID]discord.Member           `json:"members,omitempty"`
	Roles       map[discord.RoleID]discord.Role             `json:"roles,omitempty"`
	Channels    map[discord.ChannelID]discord.Channel       `json:"channels,omitempty"`
	Attachments map[discord.AttachmentID]discord.Attachment `json:"attachments,omitempty"`
}

// Parse decodes a raw interaction payload.
func Parse(raw []byte) (*Interaction, error) {
	var in Interaction
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("failed to decode interaction: %w", err)
	}

	return &in, nil
}

// FromGatewayEvent converts an arikawa gateway event into an Interaction.
func FromGatewayEvent(e *gateway.InteractionCreateEvent) (*Interaction, error) {
	raw, err := json.Marshal(&e.InteractionEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway interaction: %w", err)
	}

	in, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	// arikawa keeps the discriminators on the Go types rather than the struct
	// fields, so restore them from there.
	if e.Data != nil {
		in.Type = Type(e.Data.InteractionType())
	}
	if _, ok := e.Data.(*discord.ButtonInteraction); ok && in.Data.ComponentType == 0 {
		in.Data.ComponentType = ButtonComponent
	}

	return in, nil
}

// IsChatInput reports whether the interaction is a slash command invocation.
// A missing command subtype without a target is treated as chat input.
func (in *Interaction) IsChatInput() bool {
	if in.Type != ApplicationCommandType {
		return false
	}

	switch in.Data.CommandType {
	case ChatInputCommand:
		return true
	case 0:
		return in.Data.TargetID == 0
	default:
		return false
	}
}

// IsButton reports whether the interaction is a button click.
func (in *Interaction) IsButton() bool {
	return in.Type == MessageComponentType && in.Data.ComponentType == ButtonComponent
}

// IsModalSubmit reports whether the interaction is a modal submission.
func (in *Interaction) IsModalSubmit() bool {
	return in.Type == ModalSubmitType
}

// IsGuild reports whether the interaction was sent from a guild.
func (in *Interaction) IsGuild() bool {
	return in.GuildID != 0 && in.Member != nil
}

// Kind returns the dispatch kind label of the interaction.
func (in *Interaction) Kind() string {
	switch {
	case in.IsChatInput():
		return KindCommand
	case in.IsButton():
		return KindButton
	case in.IsModalSubmit():
		return KindModal
	default:
		return KindOther
	}
}

// Key returns the identifier used to look up a handler: the command name for
// commands and the custom id for components and modals.
func (in *Interaction) Key() string {
	if in.Type == ApplicationCommandType || in.Type == AutocompleteType {
		return in.Data.Name
	}

	return in.Data.CustomID
}

// Sender returns the user who triggered the interaction.
func (in *Interaction) Sender() *discord.User {
	if in.Member != nil {
		return &in.Member.User
	}

	return in.User
}

// Options returns a resolver over the command options of the interaction.
func (in *Interaction) Options() *OptionResolver {
	return NewOptionResolver(in.Data.Options, in.Data.Resolved)
}
