// Package bot dispatches interactions to their handlers and owns the command
// registration lifecycle.
package bot

import (
	"go.uber.org/fx"
)

// Module provides bot service dependencies.
var Module = fx.Module("bot",
	fx.Provide(
		NewBot,
		NewDeps,
		NewDispatcherFromConfig,
	),
)
