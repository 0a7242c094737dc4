package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil/httpdriver"
)

// Client is the Discord REST client used by handlers and command
// registration. Every call is bound to the caller's context so a dispatch
// deadline also cancels in-flight requests.
type Client struct {
	api *api.Client
}

// NewClient creates a REST client that sends every request through the proxy
// at proxyURL instead of directly to Discord.
func NewClient(token, proxyURL string, timeout time.Duration) (*Client, error) {
	c := api.NewClient("Bot " + token)

	if proxyURL != "" {
		target, err := url.Parse(proxyURL)
		if err != nil || target.Host == "" {
			return nil, fmt.Errorf("invalid REST proxy URL %q", proxyURL)
		}

		c.Client.Client = httpdriver.WrapClient(http.Client{
			Transport: &proxyTransport{target: target, base: http.DefaultTransport},
			Timeout:   timeout,
		})
	}

	return &Client{api: c}, nil
}

// RespondInteraction sends the initial response to an interaction.
func (c *Client) RespondInteraction(ctx context.Context, id discord.InteractionID, token string, resp api.InteractionResponse) error {
	return c.api.WithContext(ctx).RespondInteraction(id, token, resp)
}

// FollowUp sends a follow-up message to an interaction that was already
// responded to.
func (c *Client) FollowUp(ctx context.Context, appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error) {
	return c.api.WithContext(ctx).FollowUpInteraction(appID, token, data)
}

// Member fetches a guild member.
func (c *Client) Member(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	return c.api.WithContext(ctx).Member(guildID, userID)
}

// BulkOverwriteCommands replaces every global command of the application.
func (c *Client) BulkOverwriteCommands(ctx context.Context, appID discord.AppID, cmds []api.CreateCommandData) ([]discord.Command, error) {
	return c.api.WithContext(ctx).BulkOverwriteCommands(appID, cmds)
}

// BulkOverwriteGuildCommands replaces every command of the application in one
// guild.
func (c *Client) BulkOverwriteGuildCommands(ctx context.Context, appID discord.AppID, guildID discord.GuildID, cmds []api.CreateCommandData) ([]discord.Command, error) {
	return c.api.WithContext(ctx).BulkOverwriteGuildCommands(appID, guildID, cmds)
}

// proxyTransport rewrites the scheme and host of each request to the proxy,
// keeping the Discord API path.
type proxyTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t *proxyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host

	return t.base.RoundTrip(out)
}
