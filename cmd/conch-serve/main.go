// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/conchshell/conch/lib/config"
	"github.com/conchshell/conch/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "",
		"path to the YAML config file (overrides CONCH_CONFIG)")
	listenTCP := flag.String("listen", "",
		"TCP listen address, overriding the config file")
	logLevel := flag.String("log-level", "info",
		"log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false,
		"print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("conch-serve %s\n", version.Info())
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *listenTCP != "" {
		cfg.Listen.TCP = *listenTCP
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", *logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := NewServer(cfg, logger)
	if err != nil {
		return err
	}

	var listeners []net.Listener
	if cfg.Listen.TCP != "" {
		ln, err := net.Listen("tcp", cfg.Listen.TCP)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", cfg.Listen.TCP, err)
		}
		listeners = append(listeners, ln)
	}
	if cfg.Listen.Socket != "" {
		// A stale socket file from an unclean shutdown blocks bind.
		_ = os.Remove(cfg.Listen.Socket)
		ln, err := net.Listen("unix", cfg.Listen.Socket)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", cfg.Listen.Socket, err)
		}
		defer os.Remove(cfg.Listen.Socket)
		listeners = append(listeners, ln)
	}

	done := make(chan error, len(listeners))
	for _, ln := range listeners {
		logger.Info("listening", "address", ln.Addr().String(), "network", ln.Addr().Network())
		go func(ln net.Listener) {
			done <- server.Serve(ctx, ln)
		}(ln)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	for range listeners {
		if err := <-done; err != nil {
			logger.Error("listener error", "error", err)
		}
	}
	return nil
}

// loadConfig resolves configuration precedence: --config flag, then
// CONCH_CONFIG, then built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("CONCH_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}
