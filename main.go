// Package main provides the entry point for the sushii interactions service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/sushiibot/sushii-interactions/internal/app"
	"github.com/sushiibot/sushii-interactions/internal/bot"
	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/config"
	"github.com/sushiibot/sushii-interactions/internal/data"
	"github.com/sushiibot/sushii-interactions/internal/discord"
	"github.com/sushiibot/sushii-interactions/internal/gateway"
	"github.com/sushiibot/sushii-interactions/internal/httpserver"
	"github.com/sushiibot/sushii-interactions/internal/infrastructure"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
	pkginfra "github.com/sushiibot/sushii-interactions/pkg/infrastructure"
)

const (
	startTimeout    = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

// modules returns every module of the service.
func modules() []fx.Option {
	return []fx.Option{
		// Core modules
		config.Module,
		infrastructure.LoggerModule,
		infrastructure.SentryModule,
		metrics.Module,

		// External service modules
		discord.Module,
		data.Module,

		// Application modules
		commands.Module,
		bot.Module,
		gateway.Module,
		httpserver.Module,

		fx.Supply(fx.Annotated{Name: "configPath", Target: config.Path()}),
	}
}

func main() {
	application := app.New(append(modules(), fx.WithLogger(pkginfra.NewFxLoggerAdapter))...)

	if err := application.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build application: %v\n", err)
		os.Exit(1)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), startTimeout)
	err := application.Start(startCtx)
	cancelStart()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start application: %v\n", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	fmt.Printf("Received signal: %s, initiating shutdown.\n", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	err = application.Stop(shutdownCtx)
	cancel()

	if err != nil {
		fmt.Printf("Error during shutdown: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Application has shut down gracefully.")
}
