package server

import "time"

// SessionConfig holds per-session limits and timeouts.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// IdleTimeout closes a session with no client activity.
	// Default: 5 minutes.
	IdleTimeout time.Duration

	// MaxMessageSize caps incoming WebSocket messages.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxEventQueue is the input frame buffer size.
	// Default: 256.
	MaxEventQueue int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    5 * time.Minute,
		MaxMessageSize: 64 * 1024,
		MaxEventQueue:  256,
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults fills unset fields from DefaultSessionConfig.
func (c *SessionConfig) withDefaults() *SessionConfig {
	if c == nil {
		return DefaultSessionConfig()
	}
	out := c.Clone()
	defaults := DefaultSessionConfig()
	if out.ReadTimeout == 0 {
		out.ReadTimeout = defaults.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = defaults.IdleTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = defaults.MaxMessageSize
	}
	if out.MaxEventQueue == 0 {
		out.MaxEventQueue = defaults.MaxEventQueue
	}
	return out
}

// Config holds configuration for the HTTP/WebSocket server.
type Config struct {
	// Address to listen on. Default: ":8080".
	Address string

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Session holds per-session settings.
	Session *SessionConfig
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		ShutdownTimeout: 10 * time.Second,
		Session:         DefaultSessionConfig(),
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	defaults := DefaultConfig()
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	out.Session = out.Session.withDefaults()
	return &out
}
