package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

const fishyButtonID = "fishy"

// FishyCommand catches a random fish for a user and adds its worth to the
// user's fishies. It also handles the "fish again" button on its replies.
type FishyCommand struct {
	random Random
	now    func() time.Time
}

// NewFishyCommand creates a new FishyCommand instance.
func NewFishyCommand() *FishyCommand {
	return NewFishyCommandWith(globalRandom{}, time.Now)
}

// NewFishyCommandWith creates a FishyCommand with a fixed randomness source
// and clock.
func NewFishyCommandWith(random Random, now func() time.Time) *FishyCommand {
	return &FishyCommand{random: random, now: now}
}

// Name returns the name of the command.
func (c *FishyCommand) Name() string {
	return "fishy"
}

// Description returns the description of the command.
func (c *FishyCommand) Description() string {
	return "Catch some fish!"
}

// Options returns the command options.
func (c *FishyCommand) Options() []discord.CommandOption {
	return []discord.CommandOption{
		&discord.UserOption{
			OptionName:  "user",
			Description: "Who to fishy for or yourself if you have no friends",
			Required:    true,
		},
	}
}

// GuildOnly reports that fishy can only be used in servers.
func (c *FishyCommand) GuildOnly() bool {
	return true
}

// Check rejects invocations from disabled channels.
func (c *FishyCommand) Check(ctx context.Context, deps *Deps, in *interaction.Interaction) (CheckResult, error) {
	return channelEnabled(ctx, deps, in)
}

// Execute runs the command.
func (c *FishyCommand) Execute(ctx context.Context, deps *Deps, in *interaction.Interaction) error {
	target, ok := in.Options().User("user")
	if !ok {
		return ReplyEphemeral(ctx, deps, in, "You need to provide a user to fishy for!")
	}

	return c.fishyFor(ctx, deps, in, target)
}

// ButtonID returns the custom id prefix of the "fish again" button.
func (c *FishyCommand) ButtonID() string {
	return fishyButtonID
}

// HandleButton fishes again for the user encoded in the button's custom id.
func (c *FishyCommand) HandleButton(ctx context.Context, deps *Deps, in *interaction.Interaction) error {
	userID, err := parseFishyButton(in.Data.CustomID)
	if err != nil {
		return err
	}

	if !in.IsGuild() {
		return ReplyEphemeral(ctx, deps, in, "Fishy can only be used in servers.")
	}

	// Buttons bypass the dispatcher's command checks.
	check, err := channelEnabled(ctx, deps, in)
	if err != nil {
		return err
	}
	if !check.OK {
		return ReplyEphemeral(ctx, deps, in, check.Message)
	}

	member, err := deps.REST.Member(ctx, in.GuildID, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch fishy target %s: %w", userID, err)
	}
	if member.User.ID == 0 {
		member.User.ID = userID
	}

	return c.fishyFor(ctx, deps, in, &member.User)
}

func (c *FishyCommand) fishyFor(ctx context.Context, deps *Deps, in *interaction.Interaction, target *discord.User) error {
	if target.Bot {
		return ReplyEphemeral(ctx, deps, in, "Bots don't need fishies :(")
	}

	user, err := deps.Data.GetUser(ctx, target.ID)
	if err != nil {
		return err
	}

	catch := RollCatch(c.random)

	oldAmount := user.Fishies
	if oldAmount == "" {
		oldAmount = "0"
	}

	newAmount, err := AddFishies(oldAmount, catch.Amount)
	if err != nil {
		return err
	}

	caughtAt := c.now().UnixMilli()
	user.Fishies = newAmount
	user.LastFishies = &caughtAt

	if err := deps.Data.UpdateUser(ctx, user); err != nil {
		return err
	}

	deps.Logger.Debug("Caught fishy",
		zap.Stringer("userID", target.ID),
		zap.String("caughtType", string(catch.Type)),
		zap.Int64("caughtAmount", catch.Amount),
		zap.String("newAmount", newAmount),
	)

	embed := discord.Embed{
		Description: fmt.Sprintf("%s caught a **%s** worth %d fishies!\n%s → %s fishies",
			target.Username, catch.Type, catch.Amount, oldAmount, newAmount),
	}
	if catch.Type == Golden {
		embed.Color = 0xF1C40F
	}

	components := discord.ContainerComponents{
		&discord.ActionRowComponent{
			&discord.ButtonComponent{
				Label:    "Fish again",
				CustomID: discord.ComponentID(fishyAgainCustomID(target.ID)),
				Style:    discord.SecondaryButtonStyle(),
			},
		},
	}

	return Reply(ctx, deps, in, api.InteractionResponseData{
		Embeds:     &[]discord.Embed{embed},
		Components: &components,
	})
}

func fishyAgainCustomID(userID discord.UserID) string {
	return fishyButtonID + ":again:" + userID.String()
}

func parseFishyButton(customID string) (discord.UserID, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != fishyButtonID || parts[1] != "again" {
		return 0, fmt.Errorf("unexpected fishy button id %q", customID)
	}

	sf, err := discord.ParseSnowflake(parts[2])
	if err != nil || sf == 0 {
		return 0, fmt.Errorf("invalid user in fishy button id %q", customID)
	}

	return discord.UserID(sf), nil
}
