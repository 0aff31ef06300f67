// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Listen.TCP != "127.0.0.1:7023" {
		t.Errorf("expected listen.tcp=127.0.0.1:7023, got %s", cfg.Listen.TCP)
	}
	if cfg.Shell.BufferSize != 128 {
		t.Errorf("expected shell.buffer_size=128, got %d", cfg.Shell.BufferSize)
	}
	if cfg.Shell.MaxArgs != 16 {
		t.Errorf("expected shell.max_args=16, got %d", cfg.Shell.MaxArgs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresConchConfig(t *testing.T) {
	t.Setenv("CONCH_CONFIG", "")
	os.Unsetenv("CONCH_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when CONCH_CONFIG not set, got nil")
	}
	if !strings.Contains(err.Error(), "CONCH_CONFIG") {
		t.Errorf("expected error to mention CONCH_CONFIG, got %q", err)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "conch.yaml")
	content := `
listen:
  tcp: "0.0.0.0:9000"
  socket: "${HOME}/conch.sock"
shell:
  buffer_size: 256
server:
  idle_timeout: 30s
  banner: "conch ready"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Listen.TCP != "0.0.0.0:9000" {
		t.Errorf("listen.tcp = %q", cfg.Listen.TCP)
	}
	if home := os.Getenv("HOME"); home != "" && cfg.Listen.Socket != home+"/conch.sock" {
		t.Errorf("listen.socket = %q, want ${HOME} expanded", cfg.Listen.Socket)
	}
	// File values merge over defaults: buffer_size overridden,
	// max_args untouched.
	if cfg.Shell.BufferSize != 256 {
		t.Errorf("shell.buffer_size = %d, want 256", cfg.Shell.BufferSize)
	}
	if cfg.Shell.MaxArgs != 16 {
		t.Errorf("shell.max_args = %d, want default 16", cfg.Shell.MaxArgs)
	}
	if cfg.Server.Banner != "conch ready" {
		t.Errorf("server.banner = %q", cfg.Server.Banner)
	}

	timeout, err := cfg.IdleTimeout()
	if err != nil {
		t.Fatalf("IdleTimeout: %v", err)
	}
	if timeout != 30*time.Second {
		t.Errorf("idle timeout = %s, want 30s", timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no listeners",
			mutate:  func(c *Config) { c.Listen.TCP = ""; c.Listen.Socket = "" },
			wantErr: "listen.tcp or listen.socket",
		},
		{
			name:    "buffer too small",
			mutate:  func(c *Config) { c.Shell.BufferSize = 1 },
			wantErr: "buffer_size",
		},
		{
			name:    "zero max args",
			mutate:  func(c *Config) { c.Shell.MaxArgs = 0 },
			wantErr: "max_args",
		},
		{
			name:    "bad idle timeout",
			mutate:  func(c *Config) { c.Server.IdleTimeout = "soon" },
			wantErr: "idle_timeout",
		},
		{
			name:    "negative idle timeout",
			mutate:  func(c *Config) { c.Server.IdleTimeout = "-1s" },
			wantErr: "idle_timeout",
		},
		{
			name:    "zero connections",
			mutate:  func(c *Config) { c.Server.MaxConnections = 0 },
			wantErr: "max_connections",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}
