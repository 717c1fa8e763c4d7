package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "weft.yaml"

	// DefaultAddress is the default server listen address.
	DefaultAddress = ":8080"

	// DefaultSessionTTL is how long a closed session's snapshot is kept.
	DefaultSessionTTL = 24 * time.Hour
)

// Config is the complete weft.yaml configuration.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `yaml:"server,omitempty"`

	// Session contains per-session limits.
	Session SessionConfig `yaml:"session,omitempty"`

	// Redis configures snapshot persistence. When Addr is empty,
	// snapshots stay in process memory.
	Redis RedisConfig `yaml:"redis,omitempty"`

	// Metrics enables the Prometheus /metrics endpoint.
	Metrics bool `yaml:"metrics,omitempty"`

	// Tracing enables OpenTelemetry tracing of inputs.
	Tracing bool `yaml:"tracing,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Address to listen on.
	Address string `yaml:"address,omitempty"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// SessionConfig contains per-session limits and timeouts.
type SessionConfig struct {
	// ReadTimeout is the maximum wait for a client message.
	ReadTimeout time.Duration `yaml:"read_timeout,omitempty"`

	// WriteTimeout is the maximum wait when sending a message.
	WriteTimeout time.Duration `yaml:"write_timeout,omitempty"`

	// IdleTimeout closes a session with no client activity.
	IdleTimeout time.Duration `yaml:"idle_timeout,omitempty"`

	// TTL is how long a closed session's snapshot is kept.
	TTL time.Duration `yaml:"ttl,omitempty"`
}

// RedisConfig configures the Redis snapshot store.
type RedisConfig struct {
	// Addr is the Redis server address, host:port.
	Addr string `yaml:"addr,omitempty"`

	// Password authenticates against Redis, if set.
	Password string `yaml:"password,omitempty"`

	// DB selects the Redis database number.
	DB int `yaml:"db,omitempty"`

	// KeyPrefix namespaces snapshot keys. Default: "weft:session:".
	KeyPrefix string `yaml:"key_prefix,omitempty"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         DefaultAddress,
			ShutdownTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  5 * time.Minute,
			TTL:          DefaultSessionTTL,
		},
	}
}

// Load reads the configuration from path. A missing file is not an
// error: defaults are returned so a bare `weft serve` just works.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills zero fields after parsing, so a partial file only
// overrides what it mentions.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Session.ReadTimeout == 0 {
		c.Session.ReadTimeout = d.Session.ReadTimeout
	}
	if c.Session.WriteTimeout == 0 {
		c.Session.WriteTimeout = d.Session.WriteTimeout
	}
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = d.Session.IdleTimeout
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = d.Session.TTL
	}
	if c.Redis.Addr != "" && c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "weft:session:"
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Session.ReadTimeout < 0 || c.Session.WriteTimeout < 0 ||
		c.Session.IdleTimeout < 0 || c.Session.TTL < 0 {
		return fmt.Errorf("session timeouts must not be negative")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db must not be negative")
	}
	return nil
}
