// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conchshell/conch/lib/config"
	"github.com/conchshell/conch/lib/testutil"
)

// startServer runs a Server on a fresh listener and returns the
// address to dial. The server shuts down with the test.
func startServer(t *testing.T, cfg *config.Config, network, address string) string {
	t.Helper()

	ln, err := net.Listen(network, address)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server, err := NewServer(cfg, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(ctx, ln); err != nil {
			t.Errorf("Serve: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		testutil.RequireClosed(t, done, 5*time.Second, "server shutdown")
	})

	return ln.Addr().String()
}

func dial(t *testing.T, network, address string) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.Dial(network, address)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("setting deadline: %v", err)
	}
	return conn, bufio.NewReader(conn)
}

func TestSessionRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Banner = "conch test"
	address := startServer(t, cfg, "tcp", "127.0.0.1:0")

	conn, reader := dial(t, "tcp", address)

	banner, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading banner: %v", err)
	}
	if strings.TrimSpace(banner) != "conch test" {
		t.Errorf("banner = %q", banner)
	}

	if _, err := conn.Write([]byte("echo hello \"wide world\"\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading echo response: %v", err)
	}
	if strings.TrimSpace(line) != "hello wide world" {
		t.Errorf("echo response = %q", line)
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	address := startServer(t, config.Default(), "tcp", "127.0.0.1:0")
	conn, reader := dial(t, "tcp", address)

	if _, err := conn.Write([]byte("ecoh hi\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if !strings.Contains(line, "unknown command") || !strings.Contains(line, "echo") {
		t.Errorf("response = %q, want unknown-command line suggesting echo", line)
	}
}

func TestExitClosesConnection(t *testing.T) {
	address := startServer(t, config.Default(), "tcp", "127.0.0.1:0")
	conn, reader := dial(t, "tcp", address)

	if _, err := conn.Write([]byte("exit\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := reader.ReadString('\n'); err != io.EOF {
		t.Errorf("expected EOF after exit, got %v", err)
	}
}

func TestConnectionLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxConnections = 1
	address := startServer(t, cfg, "tcp", "127.0.0.1:0")

	first, firstReader := dial(t, "tcp", address)
	// Confirm the first session is live before dialing the second.
	if _, err := first.Write([]byte("echo up\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := firstReader.ReadString('\n'); err != nil {
		t.Fatalf("first session not live: %v", err)
	}

	// The second connection must be closed without a session.
	_, secondReader := dial(t, "tcp", address)
	if _, err := secondReader.ReadString('\n'); err != io.EOF {
		t.Errorf("expected EOF on rejected connection, got %v", err)
	}
}

func TestUnixSocketSession(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "conch.sock")
	cfg := config.Default()
	cfg.Listen.TCP = ""
	cfg.Listen.Socket = socketPath
	startServer(t, cfg, "unix", socketPath)

	conn, reader := dial(t, "unix", socketPath)
	if _, err := conn.Write([]byte("version\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if !strings.HasPrefix(line, "conch ") {
		t.Errorf("version response = %q", line)
	}
}

func TestIdleTimeoutClosesSession(t *testing.T) {
	cfg := config.Default()
	cfg.Server.IdleTimeout = "50ms"
	address := startServer(t, cfg, "tcp", "127.0.0.1:0")

	_, reader := dial(t, "tcp", address)
	if _, err := reader.ReadString('\n'); err != io.EOF {
		t.Errorf("expected EOF after idle timeout, got %v", err)
	}
}
