// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
)

// Schedulable is a system that can be run by a [StageExecutor].
// Its [Access] must cover every resource that Run touches.
type Schedulable interface {

	// ID returns the unique identity of the system instance.
	ID() uuid.UUID

	// Name returns the name given to [NewSystemBuilder].
	Name() string

	// Access returns the declared resource accesses.
	Access() *Access

	// Run resolves the declared resources from the world and
	// runs the system body, recording mutations in cmd.
	Run(w *World, cmd *CommandBuffer) error
}

// SystemFunc is the body of a built system. It receives the injected
// command buffer and world snapshot, the resolved resources in
// declaration order, and a pass-through state slot that is
// currently always nil.
type SystemFunc func(cmd *CommandBuffer, world *PreparedWorld, resources Fetched, state *struct{})

// Fetched holds the resources resolved for one run of a system,
// as pointers, in the order they were declared to the builder.
type Fetched []any

// Get returns the i-th fetched resource as a *T.
// It panics if the declared type at i is not T.
func Get[T any](f Fetched, i int) *T {
	return f[i].(*T)
}

// system is the [Schedulable] produced by [SystemBuilder.Build].
type system struct {
	id     uuid.UUID
	name   string
	access Access
	run    SystemFunc
}

func (s *system) ID() uuid.UUID { return s.id }

func (s *system) Name() string { return s.name }

func (s *system) Access() *Access { return &s.access }

func (s *system) String() string { return fmt.Sprintf("%s (%s)", s.name, s.id) }

func (s *system) Run(w *World, cmd *CommandBuffer) (err error) {
	if typ, ok := s.access.Aliased(); ok {
		return fmt.Errorf("system %q: %w: %v", s.name, ErrAliasedResource, typ)
	}
	fetched, err := w.Resources.fetch(s.access.Order)
	if err != nil {
		return fmt.Errorf("system %q: %w", s.name, err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ecs: panic in system %q: %v\n%s", s.name, r, debug.Stack())
		}
	}()
	s.run(cmd, w.Prepare(), fetched, nil)
	return nil
}
