package config

import (
	"time"

	"github.com/mezonai/nemclient/network"
)

// ClientConfig selects the network and the NIS node transactions are announced to
type ClientConfig struct {
	Network    string          `yaml:"network"`
	NodeURL    string          `yaml:"node_url"`
	TTLSeconds int32           `yaml:"ttl_seconds"`
	TimeoutMs  int             `yaml:"timeout_ms"`
	Breaker    BreakerConfig   `yaml:"breaker"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig caps announces per node. MaxAnnounces 0 disables the limit.
type RateLimitConfig struct {
	MaxAnnounces int `yaml:"max_announces"`
	WindowMs     int `yaml:"window_ms"`
}

// BreakerConfig tunes the circuit breaker in front of the node
type BreakerConfig struct {
	MaxFailures   uint32 `yaml:"max_failures"`
	OpenTimeoutMs int    `yaml:"open_timeout_ms"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ConfigFile is the top-level structure of the client YAML file
type ConfigFile struct {
	Client ClientConfig `yaml:"client"`
	Log    LogConfig    `yaml:"log"`
	// FeeSchedule is an optional INI file with a [fee] section
	FeeSchedule string `yaml:"fee_schedule"`
}

func (c ClientConfig) ResolveNetwork() (network.Network, error) {
	return network.ByName(c.Network)
}

func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMs) * time.Millisecond
}

func (b BreakerConfig) OpenTimeout() time.Duration {
	return time.Duration(b.OpenTimeoutMs) * time.Millisecond
}
