package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportAMQP    = "amqp"
	TransportGateway = "gateway"
)

const (
	defaultDispatchTimeout = 3 * time.Second
	defaultDataTimeout     = 10 * time.Second
	defaultRESTTimeout     = 10 * time.Second
	defaultCacheSize       = 1000
	defaultCacheTTL        = 5 * time.Minute
	defaultHTTPAddr        = ":9090"
)

// DiscordConfig stores Discord specific configurations.
type DiscordConfig struct {
	BotToken      string `yaml:"bot_token" env:"DISCORD_TOKEN"`
	ApplicationID string `yaml:"application_id" env:"APPLICATION_ID"`
	// GuildID restricts command registration to a single test guild.
	GuildID string `yaml:"guild_id" env:"GUILD_ID"`
	// ProxyURL is the base URL of the REST proxy all Discord API calls go through.
	ProxyURL         string        `yaml:"proxy_url" env:"TWILIGHT_PROXY_URL"`
	RESTTimeout      time.Duration `yaml:"rest_timeout" env:"DISCORD_REST_TIMEOUT"`
	UnregisterOnStop bool          `yaml:"unregister_on_stop" env:"UNREGISTER_ON_STOP"`
}

// TransportConfig selects where interactions come from.
type TransportConfig struct {
	Mode            string        `yaml:"mode" env:"TRANSPORT"`
	AMQPURL         string        `yaml:"amqp_url" env:"AMQP_URL"`
	QueueName       string        `yaml:"queue_name" env:"AMQP_QUEUE_NAME"`
	DispatchTimeout time.Duration `yaml:"dispatch_timeout" env:"DISPATCH_TIMEOUT"`
}

// DataConfig stores settings for the data service client.
type DataConfig struct {
	APIURL    string        `yaml:"api_url" env:"DATA_API_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"DATA_TIMEOUT"`
	CacheSize int           `yaml:"cache_size" env:"DATA_CACHE_SIZE"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env:"DATA_CACHE_TTL"`
}

// HTTPConfig stores the health and metrics server settings. Addr defaults to
// :9090; setting it to "" in the config file disables the server.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR"`
}

// SentryConfig stores error reporting settings. An empty DSN disables Sentry.
type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT"`
}

// Config stores the application configuration.
type Config struct {
	Discord   DiscordConfig   `yaml:"discord"`
	Transport TransportConfig `yaml:"transport"`
	Data      DataConfig      `yaml:"data"`
	HTTP      HTTPConfig      `yaml:"http"`
	Sentry    SentryConfig    `yaml:"sentry"`
	LogLevel  string          `yaml:"log_level" env:"LOG_LEVEL"`
}

// LoadConfig loads the configuration from the given file path, overlays
// environment variables (including a .env file in the working directory) and
// validates the result. A missing file is not an error.
func LoadConfig(filePath string) (*Config, error) {
	// Defaults that a file may clear go in before parsing.
	cfg := Config{
		HTTP: HTTPConfig{Addr: defaultHTTPAddr},
	}

	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Transport.Mode == "" {
		c.Transport.Mode = TransportAMQP
	}
	if c.Transport.DispatchTimeout <= 0 {
		c.Transport.DispatchTimeout = defaultDispatchTimeout
	}
	if c.Discord.RESTTimeout <= 0 {
		c.Discord.RESTTimeout = defaultRESTTimeout
	}
	if c.Data.Timeout <= 0 {
		c.Data.Timeout = defaultDataTimeout
	}
	if c.Data.CacheSize <= 0 {
		c.Data.CacheSize = defaultCacheSize
	}
	if c.Data.CacheTTL <= 0 {
		c.Data.CacheTTL = defaultCacheTTL
	}
}

// Validate reports every missing or malformed required setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Discord.BotToken == "" {
		errs = append(errs, errors.New("discord bot token (DISCORD_TOKEN) is not set"))
	}
	if c.Discord.ApplicationID == "" {
		errs = append(errs, errors.New("application ID (APPLICATION_ID) is not set"))
	} else if _, err := c.AppID(); err != nil {
		errs = append(errs, err)
	}
	if c.Discord.GuildID != "" {
		if _, err := c.GuildID(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Discord.ProxyURL == "" {
		errs = append(errs, errors.New("REST proxy URL (TWILIGHT_PROXY_URL) is not set"))
	}
	if c.Data.APIURL == "" {
		errs = append(errs, errors.New("data API URL (DATA_API_URL) is not set"))
	}

	switch c.Transport.Mode {
	case TransportAMQP:
		if c.Transport.AMQPURL == "" {
			errs = append(errs, errors.New("AMQP URL (AMQP_URL) is not set"))
		}
		if c.Transport.QueueName == "" {
			errs = append(errs, errors.New("AMQP queue name (AMQP_QUEUE_NAME) is not set"))
		}
	case TransportGateway:
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q, expected %q or %q", c.Transport.Mode, TransportAMQP, TransportGateway))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// AppID parses the configured application id.
func (c *Config) AppID() (discord.AppID, error) {
	sf, err := discord.ParseSnowflake(c.Discord.ApplicationID)
	if err != nil || sf == 0 {
		return 0, fmt.Errorf("invalid application ID %q", c.Discord.ApplicationID)
	}

	return discord.AppID(sf), nil
}

// GuildID parses the configured test guild id. It returns 0 when no guild is
// configured.
func (c *Config) GuildID() (discord.GuildID, error) {
	if c.Discord.GuildID == "" {
		return 0, nil
	}

	sf, err := discord.ParseSnowflake(c.Discord.GuildID)
	if err != nil || sf == 0 {
		return 0, fmt.Errorf("invalid guild ID %q", c.Discord.GuildID)
	}

	return discord.GuildID(sf), nil
}
