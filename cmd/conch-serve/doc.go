// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Conch-serve exposes a line shell over TCP and/or a Unix domain
// socket. Every connection gets its own shell instance with the
// standard built-in commands (help, echo, version, exit); bytes from
// the connection are fed straight into the shell and handler output is
// written back.
//
// Configuration comes from a YAML file named by --config or the
// CONCH_CONFIG environment variable; without either, built-in defaults
// apply (TCP on 127.0.0.1:7023). The --listen flag overrides the TCP
// address from any source.
//
// The server applies two limits from configuration: a cap on
// concurrent connections (further connections are closed immediately)
// and a per-connection idle timeout.
//
// This binary is also the reference for wiring the shell core to a
// transport: a raw byte stream in, handler writes out, no protocol
// beyond the ASCII line convention.
package main
