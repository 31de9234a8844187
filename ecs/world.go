// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"reflect"
	"sync/atomic"
)

// World holds the resources that systems operate on.
type World struct {

	// Resources are the singleton values of the world.
	Resources *Resources

	tick atomic.Uint64
}

// NewWorld returns a new world with an empty resource store.
func NewWorld() *World {
	return &World{Resources: NewResources()}
}

// Tick returns the number of stages the world has completed.
func (w *World) Tick() uint64 {
	return w.tick.Load()
}

// Prepare returns the snapshot handle handed to systems.
func (w *World) Prepare() *PreparedWorld {
	return &PreparedWorld{world: w, tick: w.Tick()}
}

// PreparedWorld is the read-only view of a [World] that is
// injected into running systems. Mutations go through the
// [CommandBuffer] instead.
type PreparedWorld struct {
	world *World
	tick  uint64
}

// Tick returns the tick of the world when the snapshot was taken.
func (p *PreparedWorld) Tick() uint64 {
	return p.tick
}

// Has returns whether the world contains a resource of the given type.
func (p *PreparedWorld) Has(typ reflect.Type) bool {
	return p.world.Resources.Has(typ)
}
