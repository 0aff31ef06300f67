// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "fmt"

// HandlerFunc is a command handler. The args slice holds the tokens of
// the dispatched line, args[0] being the command name. The slice and
// its strings are valid only for the duration of the call; handlers
// must not retain them.
type HandlerFunc func(args []string)

// Command is one registry entry.
type Command struct {
	// Name is matched exactly (case-sensitive) against the first
	// token of a completed line.
	Name string

	// Handler is invoked on every match.
	Handler HandlerFunc

	// Description is free-form text for help listings. Optional.
	Description string
}

// Registry is a fixed-capacity, append-only command table. Capacity is
// set at construction and never grows; there is no unregister. The
// same name may be registered more than once — dispatch invokes all
// matches in registration order, so duplicate registration means both
// handlers fire.
//
// Registration is not synchronized with dispatch: populate the
// registry fully before any Shell using it starts consuming input.
type Registry struct {
	entries []Command
}

// NewRegistry creates a Registry with room for capacity commands.
// The capacity must be positive.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		panic(fmt.Sprintf("shell: registry capacity must be positive, got %d", capacity))
	}
	return &Registry{entries: make([]Command, 0, capacity)}
}

// Register appends a command to the table. Returns
// [ErrInvalidArgument] if name is empty or handler is nil, and
// [ErrRegistryFull] if the table is at capacity; in both cases the
// table is unchanged. No duplicate-name check is performed.
func (r *Registry) Register(name string, handler HandlerFunc, description string) error {
	if name == "" || handler == nil {
		return ErrInvalidArgument
	}
	if len(r.entries) == cap(r.entries) {
		return ErrRegistryFull
	}
	r.entries = append(r.entries, Command{Name: name, Handler: handler, Description: description})
	return nil
}

// Commands returns a snapshot of the registered commands in
// registration order. The returned slice is a copy; mutating it does
// not affect the registry.
func (r *Registry) Commands() []Command {
	snapshot := make([]Command, len(r.entries))
	copy(snapshot, r.entries)
	return snapshot
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Capacity returns the fixed capacity set at construction.
func (r *Registry) Capacity() int {
	return cap(r.entries)
}
