// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the conch server.
//
// Configuration is loaded from a single YAML file specified by:
//   - CONCH_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
// The only expansion performed is ${VAR} and ${VAR:-default} in path
// fields, for portability.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the configuration for conch-serve.
type Config struct {
	// Listen configures the network endpoints.
	Listen ListenConfig `yaml:"listen"`

	// Shell configures the per-connection shell instances.
	Shell ShellConfig `yaml:"shell"`

	// Server configures connection handling.
	Server ServerConfig `yaml:"server"`
}

// ListenConfig configures network endpoints. At least one of TCP or
// Socket must be set.
type ListenConfig struct {
	// TCP is the address to listen on, e.g. "127.0.0.1:7023".
	// Empty disables the TCP listener.
	TCP string `yaml:"tcp"`

	// Socket is a Unix domain socket path. Empty disables the
	// socket listener. Supports ${VAR} expansion.
	Socket string `yaml:"socket"`
}

// ShellConfig sets the fixed capacities of each connection's shell.
// Capacities are allocated once per connection and never grow.
type ShellConfig struct {
	// BufferSize is the line buffer size in bytes, including the
	// terminator slot. Lines longer than BufferSize-1 characters are
	// silently truncated.
	BufferSize int `yaml:"buffer_size"`

	// MaxArgs is the maximum number of arguments recorded per line.
	MaxArgs int `yaml:"max_args"`
}

// ServerConfig configures connection handling.
type ServerConfig struct {
	// MaxConnections caps concurrent client connections. Further
	// connections are accepted and immediately closed.
	MaxConnections int `yaml:"max_connections"`

	// IdleTimeout closes a connection that has sent no bytes for this
	// long, as a Go duration string (e.g. "5m"). Empty or "0" disables
	// the timeout.
	IdleTimeout string `yaml:"idle_timeout"`

	// Banner is written to each client on connect. Empty disables it.
	Banner string `yaml:"banner"`
}

// Default returns the default configuration. These exist to give every
// field a sensible zero-value base before the file is merged on top.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{
			TCP: "127.0.0.1:7023",
		},
		Shell: ShellConfig{
			BufferSize: 128,
			MaxArgs:    16,
		},
		Server: ServerConfig{
			MaxConnections: 64,
			IdleTimeout:    "5m",
		},
	}
}

// Load loads configuration from the file named by the CONCH_CONFIG
// environment variable. There are no fallbacks: if CONCH_CONFIG is
// not set, Load fails.
func Load() (*Config, error) {
	path := os.Getenv("CONCH_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("CONCH_CONFIG environment variable not set; " +
			"set it to the path of your conch.yaml config file, or use --config flag")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging the
// file's values over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Listen.Socket = expandVars(cfg.Listen.Socket, map[string]string{
		"HOME": os.Getenv("HOME"),
	})

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Listen.TCP == "" && c.Listen.Socket == "" {
		errs = append(errs, fmt.Errorf("at least one of listen.tcp or listen.socket is required"))
	}
	if c.Shell.BufferSize < 2 {
		errs = append(errs, fmt.Errorf("shell.buffer_size must be at least 2, got %d", c.Shell.BufferSize))
	}
	if c.Shell.MaxArgs < 1 {
		errs = append(errs, fmt.Errorf("shell.max_args must be positive, got %d", c.Shell.MaxArgs))
	}
	if c.Server.MaxConnections < 1 {
		errs = append(errs, fmt.Errorf("server.max_connections must be positive, got %d", c.Server.MaxConnections))
	}
	if _, err := c.IdleTimeout(); err != nil {
		errs = append(errs, fmt.Errorf("server.idle_timeout: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// IdleTimeout parses the configured idle timeout. A negative duration
// is rejected; empty means disabled.
func (c *Config) IdleTimeout() (time.Duration, error) {
	if c.Server.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", d)
	}
	return d, nil
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
