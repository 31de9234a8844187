// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"reflect"

	"github.com/google/uuid"
)

// SystemBuilder declares the resource accesses of a system
// and then wraps its body into a [Schedulable]. It is what the
// factories emitted by systemgen call:
//
//	ecs.NewSystemBuilder("move").
//		ReadResource(ecs.TypeOf[Clock]()).
//		WriteResource(ecs.TypeOf[Bodies]()).
//		Build(func(_ *ecs.CommandBuffer, _ *ecs.PreparedWorld, fetched ecs.Fetched, _ *struct{}) { ... })
type SystemBuilder struct {
	name   string
	access Access
}

// NewSystemBuilder returns a new builder for a system with the given name.
func NewSystemBuilder(name string) *SystemBuilder {
	return &SystemBuilder{name: name}
}

// ReadResource declares a shared borrow of the given resource type.
func (b *SystemBuilder) ReadResource(typ reflect.Type) *SystemBuilder {
	b.access.Read(typ)
	return b
}

// WriteResource declares an exclusive borrow of the given resource type.
func (b *SystemBuilder) WriteResource(typ reflect.Type) *SystemBuilder {
	b.access.Write(typ)
	return b
}

// Build returns the system running the given body. The resources
// passed to run are in the order they were declared.
func (b *SystemBuilder) Build(run SystemFunc) Schedulable {
	return &system{id: uuid.New(), name: b.name, access: b.access, run: run}
}
