// Package commands provides command infrastructure and Fx modules.
package commands

import (
	"go.uber.org/fx"
)

// Module provides command-related dependencies.
var Module = fx.Module("commands",
	fx.Provide(
		NewRegistryFromGroups,
		NewCommandManager,
		NewFishyCommand,
		// Command providers with proper grouping
		fx.Annotate(
			NewPingCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewVersionCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewUserinfoCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewSettingsCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			func(c *FishyCommand) Command { return c },
			fx.ResultTags(`group:"commands"`),
		),
		// Component handlers
		fx.Annotate(
			func(c *FishyCommand) Button { return c },
			fx.ResultTags(`group:"buttons"`),
		),
	),
)
