// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/conchshell/conch/lib/builtin"
	"github.com/conchshell/conch/lib/config"
	"github.com/conchshell/conch/lib/netutil"
	"github.com/conchshell/conch/lib/shell"
	"github.com/conchshell/conch/lib/suggest"
)

// sessionRegistryCapacity leaves room for the built-ins plus the
// server-specific commands registered per session.
const sessionRegistryCapacity = 16

// Server accepts connections and runs one shell session per
// connection. Sessions share nothing except the live connection
// counter.
type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	idleTimeout time.Duration
	active      atomic.Int64
}

// NewServer validates the server-level settings and returns a Server.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	idleTimeout, err := cfg.IdleTimeout()
	if err != nil {
		return nil, fmt.Errorf("server.idle_timeout: %w", err)
	}
	return &Server{cfg: cfg, logger: logger, idleTimeout: idleTimeout}, nil
}

// Serve accepts connections on ln until ctx is cancelled. Each
// accepted connection runs in its own goroutine; connections beyond
// the configured limit are closed immediately.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		if s.active.Load() >= int64(s.cfg.Server.MaxConnections) {
			s.logger.Warn("connection limit reached, rejecting",
				"remote", conn.RemoteAddr().String(),
				"limit", s.cfg.Server.MaxConnections,
			)
			conn.Close()
			continue
		}

		s.active.Add(1)
		go func() {
			defer s.active.Add(-1)
			s.handle(conn)
		}()
	}
}

// handle runs one shell session over conn. It returns when the client
// disconnects, the idle timeout fires, or the session's exit command
// closes the connection.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With("remote", conn.RemoteAddr().String())
	logger.Info("session opened")
	start := time.Now()
	defer func() {
		logger.Info("session closed", "duration", time.Since(start).Round(time.Millisecond))
	}()

	if s.cfg.Server.Banner != "" {
		fmt.Fprintf(conn, "%s\n", s.cfg.Server.Banner)
	}

	sh, err := s.newSession(conn)
	if err != nil {
		logger.Error("session setup failed", "error", err)
		return
	}

	buf := make([]byte, 512)
	for {
		if s.idleTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
				return
			}
		}
		n, err := conn.Read(buf)
		if n > 0 {
			// Input only fails on an empty slice, which n > 0 rules out.
			_ = sh.Input(buf[:n])
		}
		if err != nil {
			switch {
			case netutil.IsExpectedCloseError(err):
			case errors.Is(err, os.ErrDeadlineExceeded):
				logger.Info("idle timeout")
			default:
				logger.Warn("read error", "error", err)
			}
			return
		}
	}
}

// newSession builds the per-connection registry and shell. Handler
// output goes straight back over the connection; the exit built-in
// closes it, which unblocks the read loop.
func (s *Server) newSession(conn net.Conn) (*shell.Shell, error) {
	registry := shell.NewRegistry(sessionRegistryCapacity)

	err := builtin.Register(registry, builtin.Options{
		Output: conn,
		OnExit: func() { conn.Close() },
	})
	if err != nil {
		return nil, err
	}

	if err := registry.Register("sessions", func([]string) {
		fmt.Fprintf(conn, "%d active session(s)\n", s.active.Load())
	}, "show active session count"); err != nil {
		return nil, err
	}

	sh := shell.New(registry,
		shell.WithBufferSize(s.cfg.Shell.BufferSize),
		shell.WithMaxArgs(s.cfg.Shell.MaxArgs),
		shell.WithUnknownHandler(func(args []string) {
			names := make([]string, 0, registry.Len())
			for _, command := range registry.Commands() {
				names = append(names, command.Name)
			}
			if hint := suggest.Command(args[0], names); hint != "" {
				fmt.Fprintf(conn, "unknown command %q (did you mean %q?)\n", args[0], hint)
				return
			}
			fmt.Fprintf(conn, "unknown command %q\n", args[0])
		}),
	)
	return sh, nil
}
