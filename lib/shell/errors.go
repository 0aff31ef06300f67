// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "errors"

// ErrInvalidArgument indicates a missing or empty required parameter:
// an empty command name or nil handler passed to [Registry.Register],
// or a nil/empty byte slice passed to [Shell.Input].
var ErrInvalidArgument = errors.New("shell: invalid argument")

// ErrRegistryFull indicates that [Registry.Register] was called on a
// registry that has reached its fixed capacity. The table is left
// unchanged.
var ErrRegistryFull = errors.New("shell: registry full")
