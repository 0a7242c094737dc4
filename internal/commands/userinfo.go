package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

// UserinfoCommand shows account and server membership details of a user.
type UserinfoCommand struct{}

// NewUserinfoCommand creates a new UserinfoCommand instance.
func NewUserinfoCommand() Command {
	return &UserinfoCommand{}
}

// Name returns the name of the command.
func (c *UserinfoCommand) Name() string {
	return "userinfo"
}

// Description returns the description of the command.
func (c *UserinfoCommand) Description() string {
	return "Get information about a user"
}

// Options returns the command options.
func (c *UserinfoCommand) Options() []discord.CommandOption {
	return []discord.CommandOption{
		&discord.UserOption{
			OptionName:  "user",
			Description: "The user to get information about, yourself if not provided",
		},
	}
}

// Check rejects invocations from disabled channels.
func (c *UserinfoCommand) Check(ctx context.Context, deps *Deps, in *interaction.Interaction) (CheckResult, error) {
	return channelEnabled(ctx, deps, in)
}

// Execute runs the command.
func (c *UserinfoCommand) Execute(ctx context.Context, deps *Deps, in *interaction.Interaction) error {
	target, ok := in.Options().User("user")
	if !ok {
		target = in.Sender()
	}
	if target == nil {
		return errors.New("userinfo invoked without a user")
	}

	var member *discord.Member
	if in.IsGuild() {
		m, err := deps.REST.Member(ctx, in.GuildID, target.ID)
		switch {
		case err == nil:
			member = m
		case isHTTPStatus(err, http.StatusNotFound):
			// Not in this server, show the account only.
		default:
			return fmt.Errorf("failed to fetch member %s: %w", target.ID, err)
		}
	}

	return ReplyEmbeds(ctx, deps, in, userinfoEmbed(target, member))
}

func userinfoEmbed(user *discord.User, member *discord.Member) discord.Embed {
	authorName := user.Username
	if member != nil && member.Nick != "" {
		authorName = user.Username + " ~ " + member.Nick
	}

	avatar := user.AvatarURL()

	embed := discord.Embed{
		Author: &discord.EmbedAuthor{
			Name: authorName,
			Icon: avatar,
			URL:  avatar,
		},
		Thumbnail: &discord.EmbedThumbnail{URL: avatar},
		Footer:    &discord.EmbedFooter{Text: "ID: " + user.ID.String()},
		Fields: []discord.EmbedField{
			{Name: "Account Created", Value: discordTimestamp(user.ID.Time())},
		},
	}

	if user.Banner != "" {
		embed.Image = &discord.EmbedImage{
			URL: fmt.Sprintf("https://cdn.discordapp.com/banners/%s/%s.png?size=1024", user.ID, user.Banner),
		}
	}

	if member == nil {
		return embed
	}

	roles := "None"
	if len(member.RoleIDs) > 0 {
		mentions := make([]string, len(member.RoleIDs))
		for i, id := range member.RoleIDs {
			mentions[i] = id.Mention()
		}
		roles = strings.Join(mentions, " ")
	}

	embed.Fields = append(embed.Fields, discord.EmbedField{Name: "Roles", Value: roles})

	if member.Joined.IsValid() {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  "Joined Server",
			Value: discordTimestamp(member.Joined.Time()),
		})
	}

	if member.BoostedSince.IsValid() {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  "Boosting Since",
			Value: discordTimestamp(member.BoostedSince.Time()),
		})
	}

	return embed
}

// discordTimestamp renders t as a full date followed by a relative time.
func discordTimestamp(t time.Time) string {
	unix := t.Unix()

	return fmt.Sprintf("<t:%d:F> (<t:%d:R>)", unix, unix)
}

func isHTTPStatus(err error, status int) bool {
	var httpErr *httputil.HTTPError

	return errors.As(err, &httpErr) && httpErr.Status == status
}
