package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

// PingCommand is a simple command that responds with "Pong!" and the age of
// the interaction when it was handled.
type PingCommand struct {
	now func() time.Time
}

// NewPingCommand creates a new PingCommand instance.
// This constructor will be used by Fx.
func NewPingCommand() Command {
	return &PingCommand{now: time.Now}
}

// Name returns the name of the command.
func (c *PingCommand) Name() string {
	return "ping"
}

// Description returns the description of the command.
func (c *PingCommand) Description() string {
	return "Responds with Pong!"
}

// Options returns the command options.
func (c *PingCommand) Options() []discord.CommandOption {
	return nil // No options for this command
}

// Execute runs the command.
func (c *PingCommand) Execute(ctx context.Context, deps *Deps, in *interaction.Interaction) error {
	latency := c.now().Sub(in.ID.Time()).Round(time.Millisecond)

	return ReplyText(ctx, deps, in, fmt.Sprintf("Pong! (%s)", latency))
}
