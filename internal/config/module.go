// Package config provides configuration infrastructure and Fx modules.
package config

import (
	"os"

	"go.uber.org/fx"
)

// DefaultPath is the config file read when CONFIG_PATH is not set.
const DefaultPath = "config.yaml"

// Module provides the validated application config. The file path is taken
// from the `name:"configPath"` value.
var Module = fx.Module("config",
	fx.Provide(
		fx.Annotate(LoadConfig, fx.ParamTags(`name:"configPath"`)),
	),
)

// Path returns the config file path from CONFIG_PATH, or DefaultPath.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}

	return DefaultPath
}
