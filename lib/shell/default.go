// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "sync"

// DefaultRegistryCapacity is the command capacity of the lazily
// created process-wide default instance.
const DefaultRegistryCapacity = 32

// The package-level convenience API mirrors the explicit
// [Registry]+[Shell] pair with a single process-wide instance, for
// programs that only ever have one input stream. The instance is
// created on first use with the default capacities.
var (
	defaultOnce     sync.Once
	defaultShell    *Shell
	defaultRegistry *Registry
)

func defaultInstance() *Shell {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(DefaultRegistryCapacity)
		defaultShell = New(defaultRegistry)
	})
	return defaultShell
}

// Init resets the default instance's accumulator state. Commands
// registered with [Register] survive: the default registry, like any
// other, is append-only for the life of the process. Calling Init is
// optional — the default instance starts zeroed — but callers porting
// from init-then-use APIs can call it for parity.
func Init() error {
	defaultInstance().Reset()
	return nil
}

// Register adds a command to the default instance's registry. See
// [Registry.Register].
func Register(name string, handler HandlerFunc, description string) error {
	defaultInstance()
	return defaultRegistry.Register(name, handler, description)
}

// Input feeds bytes to the default instance. See [Shell.Input].
func Input(data []byte) error {
	return defaultInstance().Input(data)
}
