// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"reflect"
	"slices"
)

// Access describes the resources a system reads and writes,
// in the order they were declared. It is used by the
// [StageExecutor] to decide which systems may run together.
// A type may be declared more than once only if every declaration
// is a read; see [Access.Aliased].
type Access struct {
	Reads  []reflect.Type
	Writes []reflect.Type

	// Order is every declared resource type in declaration
	// order; it is the order in which [Fetched] is resolved.
	Order []reflect.Type
}

// Read adds a shared borrow of the given type.
func (a *Access) Read(typ reflect.Type) {
	a.Reads = append(a.Reads, typ)
	a.Order = append(a.Order, typ)
}

// Write adds an exclusive borrow of the given type.
func (a *Access) Write(typ reflect.Type) {
	a.Writes = append(a.Writes, typ)
	a.Order = append(a.Order, typ)
}

// Reading returns whether the access reads the given type.
func (a *Access) Reading(typ reflect.Type) bool {
	return slices.Contains(a.Reads, typ)
}

// Writing returns whether the access writes the given type.
func (a *Access) Writing(typ reflect.Type) bool {
	return slices.Contains(a.Writes, typ)
}

// Conflicts returns true if this access pattern conflicts with another,
// which is the case when either side writes a type the other touches.
func (a *Access) Conflicts(other *Access) bool {
	for _, w := range a.Writes {
		if other.Writing(w) || other.Reading(w) {
			return true
		}
	}
	for _, r := range a.Reads {
		if other.Writing(r) {
			return true
		}
	}
	return false
}

// Aliased returns a written type that is declared more than once, if
// any. A system with such an access would hold an exclusive borrow of
// a resource alongside another borrow of it, so it fails to run.
func (a *Access) Aliased() (reflect.Type, bool) {
	for _, w := range a.Writes {
		n := 0
		for _, typ := range a.Order {
			if typ == w {
				n++
			}
		}
		if n > 1 {
			return w, true
		}
	}
	return nil, false
}
