package data

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// GuildConfigCache holds recently fetched guild configs. Entries expire after
// the configured TTL so edits made by other services are picked up.
type GuildConfigCache struct {
	lru *expirable.LRU[discord.GuildID, *GuildConfig]
}

// NewGuildConfigCache creates a cache holding at most size configs for ttl.
func NewGuildConfigCache(size int, ttl time.Duration) *GuildConfigCache {
	return &GuildConfigCache{
		lru: expirable.NewLRU[discord.GuildID, *GuildConfig](size, nil, ttl),
	}
}

// Add stores a copy of cfg.
func (c *GuildConfigCache) Add(cfg *GuildConfig) {
	c.lru.Add(cfg.ID, cfg.clone())
}

// Get returns a copy of the cached config for id.
func (c *GuildConfigCache) Get(id discord.GuildID) (*GuildConfig, bool) {
	cfg, ok := c.lru.Get(id)
	if !ok {
		return nil, false
	}

	return cfg.clone(), true
}

// Remove drops the cached config for id.
func (c *GuildConfigCache) Remove(id discord.GuildID) {
	c.lru.Remove(id)
}

// Purge is used to completely clear the cache.
func (c *GuildConfigCache) Purge() {
	c.lru.Purge()
}

// Len returns the number of items in the cache.
func (c *GuildConfigCache) Len() int {
	return c.lru.Len()
}
