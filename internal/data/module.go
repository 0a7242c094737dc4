package data

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/config"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
)

// Module provides the data service client.
var Module = fx.Module("data",
	fx.Provide(NewClientFromConfig),
)

// ClientParams holds dependencies for NewClientFromConfig.
type ClientParams struct {
	fx.In
	Cfg     *config.Config
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewClientFromConfig builds a Client with the configured timeout and guild
// config cache.
func NewClientFromConfig(params ClientParams) *Client {
	cache := NewGuildConfigCache(params.Cfg.Data.CacheSize, params.Cfg.Data.CacheTTL)
	httpClient := &http.Client{Timeout: params.Cfg.Data.Timeout}

	return NewClient(params.Cfg.Data.APIURL, httpClient, cache, params.Logger.Named("data")).
		WithMetrics(params.Metrics)
}
