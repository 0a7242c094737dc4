package interaction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
)

// OptionType is the declared type of a command option.
type OptionType int

const (
	SubcommandOption      OptionType = 1
	SubcommandGroupOption OptionType = 2
	StringOption          OptionType = 3
	IntegerOption         OptionType = 4
	BooleanOption         OptionType = 5
	UserOption            OptionType = 6
	ChannelOption         OptionType = 7
	RoleOption            OptionType = 8
	MentionableOption     OptionType = 9
	NumberOption          OptionType = 10
	AttachmentOption      OptionType = 11
)

var optionTypeNames = map[OptionType]string{
	SubcommandOption:      "subcommand",
	SubcommandGroupOption: "subcommand group",
	StringOption:          "string",
	IntegerOption:         "integer",
	BooleanOption:         "boolean",
	UserOption:            "user",
	ChannelOption:         "channel",
	RoleOption:            "role",
	MentionableOption:     "mentionable",
	NumberOption:          "number",
	AttachmentOption:      "attachment",
}

func (t OptionType) String() string {
	if name, ok := optionTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("OptionType(%d)", int(t))
}

// Option is a single option of a command invocation. Subcommands and groups
// carry their own nested options.
type Option struct {
	Name    string          `json:"name"`
	Type    OptionType      `json:"type"`
	Value   json.RawMessage `json:"value,omitempty"`
	Options []Option        `json:"options,omitempty"`
	Focused bool            `json:"focused,omitempty"`
}

// OptionTypeError is raised (as a panic) when a handler reads an option with a
// getter that does not match the option's declared type. It always indicates a
// bug in the handler, never bad user input.
type OptionTypeError struct {
	Name     string
	Declared OptionType
	Wanted   OptionType
}

func (e *OptionTypeError) Error() string {
	return fmt.Sprintf("option %q is declared as %s, read as %s", e.Name, e.Declared, e.Wanted)
}

// OptionValueError is raised (as a panic) when an option value cannot be
// decoded as its declared type.
type OptionValueError struct {
	Name string
	Type OptionType
	Err  error
}

func (e *OptionValueError) Error() string {
	return fmt.Sprintf("option %q has an invalid %s value: %v", e.Name, e.Type, e.Err)
}

func (e *OptionValueError) Unwrap() error {
	return e.Err
}

// Mentionable is the value of a mentionable option. Exactly one field is set.
type Mentionable struct {
	Member *discord.Member
	User   *discord.User
	Role   *discord.Role
}

// OptionResolver gives typed access to the options of a command. Subcommand
// groups and subcommands are hoisted so lookups always run against the
// innermost option list.
type OptionResolver struct {
	group      string
	subcommand string
	hoisted    []Option
	resolved   Resolved
}

// NewOptionResolver hoists a leading subcommand group and then a leading
// subcommand out of options.
func NewOptionResolver(options []Option, resolved Resolved) *OptionResolver {
	r := &OptionResolver{
		hoisted:  options,
		resolved: resolved,
	}

	if len(r.hoisted) > 0 && r.hoisted[0].Type == SubcommandGroupOption {
		r.group = r.hoisted[0].Name
		r.hoisted = r.hoisted[0].Options
	}
	if len(r.hoisted) > 0 && r.hoisted[0].Type == SubcommandOption {
		r.subcommand = r.hoisted[0].Name
		r.hoisted = r.hoisted[0].Options
	}

	return r
}

// SubcommandGroup returns the invoked subcommand group, or "" if none.
func (r *OptionResolver) SubcommandGroup() string {
	return r.group
}

// Subcommand returns the invoked subcommand, or "" if none.
func (r *OptionResolver) Subcommand() string {
	return r.subcommand
}

// Hoisted returns the innermost option list.
func (r *OptionResolver) Hoisted() []Option {
	return r.hoisted
}

// Get returns the option with the given name.
func (r *OptionResolver) Get(name string) (Option, bool) {
	for _, opt := range r.hoisted {
		if opt.Name == name {
			return opt, true
		}
	}

	return Option{}, false
}

// typed looks up name and panics if it is declared as anything but want.
func (r *OptionResolver) typed(name string, want OptionType) (Option, bool) {
	opt, ok := r.Get(name)
	if !ok {
		return Option{}, false
	}

	if opt.Type != want {
		panic(&OptionTypeError{Name: name, Declared: opt.Type, Wanted: want})
	}

	return opt, true
}

func decodeValue(opt Option, v any) {
	dec := json.NewDecoder(bytes.NewReader(opt.Value))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		panic(&OptionValueError{Name: opt.Name, Type: opt.Type, Err: err})
	}
}

func snowflakeValue(opt Option) discord.Snowflake {
	var s string
	decodeValue(opt, &s)

	sf, err := discord.ParseSnowflake(s)
	if err != nil {
		panic(&OptionValueError{Name: opt.Name, Type: opt.Type, Err: err})
	}

	return sf
}

// String returns a string option.
func (r *OptionResolver) String(name string) (string, bool) {
	opt, ok := r.typed(name, StringOption)
	if !ok {
		return "", false
	}

	var s string
	decodeValue(opt, &s)

	return s, true
}

// Integer returns an integer option.
func (r *OptionResolver) Integer(name string) (int64, bool) {
	opt, ok := r.typed(name, IntegerOption)
	if !ok {
		return 0, false
	}

	var n json.Number
	decodeValue(opt, &n)

	i, err := n.Int64()
	if err != nil {
		panic(&OptionValueError{Name: name, Type: opt.Type, Err: err})
	}

	return i, true
}

// Number returns a number (double) option.
func (r *OptionResolver) Number(name string) (float64, bool) {
	opt, ok := r.typed(name, NumberOption)
	if !ok {
		return 0, false
	}

	var n json.Number
	decodeValue(opt, &n)

	f, err := n.Float64()
	if err != nil {
		panic(&OptionValueError{Name: name, Type: opt.Type, Err: err})
	}

	return f, true
}

// Boolean returns a boolean option.
func (r *OptionResolver) Boolean(name string) (bool, bool) {
	opt, ok := r.typed(name, BooleanOption)
	if !ok {
		return false, false
	}

	var b bool
	decodeValue(opt, &b)

	return b, true
}

// User returns the resolved user of a user option.
func (r *OptionResolver) User(name string) (*discord.User, bool) {
	opt, ok := r.typed(name, UserOption)
	if !ok {
		return nil, false
	}

	user, ok := r.resolved.Users[discord.UserID(snowflakeValue(opt))]
	if !ok {
		return nil, false
	}

	return &user, true
}

// Member returns the resolved guild member of a user option. Members are only
// resolved for interactions sent from a guild.
func (r *OptionResolver) Member(name string) (*discord.Member, bool) {
	opt, ok := r.typed(name, UserOption)
	if !ok {
		return nil, false
	}

	id := discord.UserID(snowflakeValue(opt))
	member, ok := r.resolved.Members[id]
	if !ok {
		return nil, false
	}

	// Resolved members omit the user object. Re-encoded gateway events carry a
	// null id in its place.
	if user, ok := r.resolved.Users[id]; ok && !member.User.ID.IsValid() {
		member.User = user
	}

	return &member, true
}

// Role returns the resolved role of a role option.
func (r *OptionResolver) Role(name string) (*discord.Role, bool) {
	opt, ok := r.typed(name, RoleOption)
	if !ok {
		return nil, false
	}

	role, ok := r.resolved.Roles[discord.RoleID(snowflakeValue(opt))]
	if !ok {
		return nil, false
	}

	return &role, true
}

// Channel returns the resolved (partial) channel of a channel option.
func (r *OptionResolver) Channel(name string) (*discord.Channel, bool) {
	opt, ok := r.typed(name, ChannelOption)
	if !ok {
		return nil, false
	}

	ch, ok := r.resolved.Channels[discord.ChannelID(snowflakeValue(opt))]
	if !ok {
		return nil, false
	}

	return &ch, true
}

// Attachment returns the resolved attachment of an attachment option.
func (r *OptionResolver) Attachment(name string) (*discord.Attachment, bool) {
	opt, ok := r.typed(name, AttachmentOption)
	if !ok {
		return nil, false
	}

	att, ok := r.resolved.Attachments[discord.AttachmentID(snowflakeValue(opt))]
	if !ok {
		return nil, false
	}

	return &att, true
}

// Mentionable returns the resolved entity of a mentionable option, preferring
// a member, then a user, then a role with the same id.
func (r *OptionResolver) Mentionable(name string) (Mentionable, bool) {
	opt, ok := r.typed(name, MentionableOption)
	if !ok {
		return Mentionable{}, false
	}

	id := snowflakeValue(opt)

	if member, ok := r.resolved.Members[discord.UserID(id)]; ok {
		if user, ok := r.resolved.Users[discord.UserID(id)]; ok && !member.User.ID.IsValid() {
			member.User = user
		}
		return Mentionable{Member: &member}, true
	}
	if user, ok := r.resolved.Users[discord.UserID(id)]; ok {
		return Mentionable{User: &user}, true
	}
	if role, ok := r.resolved.Roles[discord.RoleID(id)]; ok {
		return Mentionable{Role: &role}, true
	}

	return Mentionable{}, false
}

// FocusedOption returns the option the user is currently typing, for
// autocomplete.
func (r *OptionResolver) FocusedOption() (Option, bool) {
	for _, opt := range r.hoisted {
		switch opt.Type {
		case StringOption, IntegerOption, NumberOption:
			if opt.Focused {
				return opt, true
			}
		}
	}

	return Option{}, false
}
