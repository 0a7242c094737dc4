package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestModulesWire(t *testing.T) {
	require.NoError(t, fx.ValidateApp(append(modules(), fx.NopLogger)...))
}
