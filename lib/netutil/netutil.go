// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies connection errors for the shell server.
package netutil

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsExpectedCloseError reports whether err is a normal session
// termination: EOF, closed connection, broken pipe, or connection
// reset. A client that drops its connection mid-read, or an exit
// command that closes the connection under the read loop, surfaces as
// one of these. None of them indicate a server fault and they should
// not be logged as errors.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}
