// Package data is the HTTP client for the sushii data service, which owns user
// and guild config records.
package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sushiibot/sushii-interactions/internal/metrics"
)

// APIError is returned for any non-2xx response from the data service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("data service returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the data service.
func IsNotFound(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the data service.
type Client struct {
	baseURL      string
	http         *http.Client
	guildConfigs *GuildConfigCache
	group        singleflight.Group

	// generation is bumped on every guild config write. A fetch that started
	// under an older generation does not populate the cache.
	mu         sync.Mutex
	generation uint64

	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient creates a client for the data service at baseURL. A nil cache
// disables guild config caching.
func NewClient(baseURL string, httpClient *http.Client, cache *GuildConfigCache, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         httpClient,
		guildConfigs: cache,
		logger:       logger,
	}
}

// WithMetrics records guild config cache results in m.
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.metrics = m

	return c
}

func (c *Client) recordLookup(result string) {
	if c.metrics != nil {
		c.metrics.RecordGuildConfigLookup(result)
	}
}

// GetUser fetches a user record. The data service returns a default record for
// users it has never seen.
func (c *Client) GetUser(ctx context.Context, id discord.UserID) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+id.String(), nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	return &user, nil
}

// UpdateUser replaces a user record.
func (c *Client) UpdateUser(ctx context.Context, user *User) error {
	if err := c.do(ctx, http.MethodPatch, "/users/"+user.ID.String(), user, nil); err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}

	return nil
}

// GetGuildConfig fetches a guild config, serving from the cache when possible.
// Concurrent misses for the same guild share one request.
func (c *Client) GetGuildConfig(ctx context.Context, id discord.GuildID) (*GuildConfig, error) {
	if c.guildConfigs != nil {
		if cfg, ok := c.guildConfigs.Get(id); ok {
			c.recordLookup("hit")

			return cfg, nil
		}
	}

	v, err, shared := c.group.Do(id.String(), func() (any, error) {
		gen := c.currentGeneration()

		var cfg GuildConfig
		if err := c.do(ctx, http.MethodGet, "/guild-configs/"+id.String(), nil, &cfg); err != nil {
			return nil, err
		}

		c.cacheGuildConfig(gen, &cfg)

		return &cfg, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config %s: %w", id, err)
	}

	if shared {
		c.recordLookup("shared")
		c.logger.Debug("Shared guild config fetch", zap.Stringer("guildID", id))
	} else {
		c.recordLookup("miss")
	}

	return v.(*GuildConfig).clone(), nil
}

// UpdateGuildConfig replaces a guild config. cfg must contain every field.
// The cached entry is dropped even when the request fails, since the write may
// have landed anyway.
func (c *Client) UpdateGuildConfig(ctx context.Context, id discord.GuildID, cfg *GuildConfig) error {
	err := c.do(ctx, http.MethodPatch, "/guild-configs/"+id.String(), cfg, nil)
	c.invalidateGuildConfig(id)

	if err != nil {
		return fmt.Errorf("failed to update guild config %s: %w", id, err)
	}

	return nil
}

func (c *Client) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generation
}

func (c *Client) cacheGuildConfig(gen uint64, cfg *GuildConfig) {
	if c.guildConfigs == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Not caching guild config fetched before an update", zap.Stringer("guildID", cfg.ID))

		return
	}
	c.guildConfigs.Add(cfg)
}

// invalidateGuildConfig drops the cached entry and detaches any in-flight
// fetch so later lookups read the updated record.
func (c *Client) invalidateGuildConfig(id discord.GuildID) {
	c.mu.Lock()
	c.generation++
	if c.guildConfigs != nil {
		c.guildConfigs.Remove(id)
	}
	c.mu.Unlock()

	c.group.Forget(id.String())
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Message) > 0 {
		// NestJS validation errors send a list of messages.
		var msg string
		var msgs []string
		switch {
		case json.Unmarshal(payload.Message, &msg) == nil:
			apiErr.Message = msg
		case json.Unmarshal(payload.Message, &msgs) == nil:
			apiErr.Message = strings.Join(msgs, "; ")
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
