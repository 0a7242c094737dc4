// Package httpserver serves the health check and Prometheus metrics.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/config"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// Module starts the HTTP server when an address is configured.
var Module = fx.Module("httpserver",
	fx.Invoke(RegisterServer),
)

// NewRouter creates the gin engine with the health and metrics routes.
func NewRouter(registry *prometheus.Registry, logLevel string) *gin.Engine {
	if logLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return router
}

// ServerParams holds dependencies for RegisterServer.
type ServerParams struct {
	fx.In
	Cfg      *config.Config
	LC       fx.Lifecycle
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// RegisterServer binds the HTTP server to the application lifecycle. It does
// nothing when no address is configured.
func RegisterServer(params ServerParams) {
	logger := params.Logger.Named("http")

	if params.Cfg.HTTP.Addr == "" {
		logger.Info("HTTP server disabled")

		return
	}

	server := &http.Server{
		Addr:         params.Cfg.HTTP.Addr,
		Handler:      NewRouter(params.Registry, params.Cfg.LogLevel),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	params.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
			}

			logger.Info("Serving health and metrics", zap.String("addr", ln.Addr().String()))

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
