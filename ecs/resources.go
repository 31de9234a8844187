// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrResourceNotFound is returned when a system declares a resource
// that has not been inserted into the world.
var ErrResourceNotFound = errors.New("resource not found")

// ErrAliasedResource is returned when a system borrows a resource
// exclusively and also borrows it again.
var ErrAliasedResource = errors.New("resource borrowed exclusively more than once by one system")

// Resources is a store of singleton values keyed by their type.
// Values are held by pointer so that systems borrow them in place.
// It is safe for concurrent use; exclusive access to the values
// themselves is the job of the [StageExecutor].
type Resources struct {
	mu  sync.RWMutex
	res map[reflect.Type]any
}

// NewResources returns a new empty resource store.
func NewResources() *Resources {
	return &Resources{res: make(map[reflect.Type]any)}
}

// Insert adds the given resource, which must be a non-nil pointer,
// replacing any previous resource of the same type.
func (r *Resources) Insert(res any) error {
	v := reflect.ValueOf(res)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("ecs: resource must be a non-nil pointer, got %T", res)
	}
	r.mu.Lock()
	r.res[v.Type().Elem()] = res
	r.mu.Unlock()
	return nil
}

// Get returns the pointer stored for the given resource type, or nil.
func (r *Resources) Get(typ reflect.Type) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.res[typ]
}

// Has returns whether a resource of the given type is present.
func (r *Resources) Has(typ reflect.Type) bool {
	return r.Get(typ) != nil
}

// Remove deletes the resource of the given type and returns whether
// it was present.
func (r *Resources) Remove(typ reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.res[typ]
	delete(r.res, typ)
	return ok
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.res)
}

// Resource returns the resource of type T in r, or nil if there is none.
func Resource[T any](r *Resources) *T {
	res, _ := r.Get(TypeOf[T]()).(*T)
	return res
}

// fetch resolves the given resource types in order.
func (r *Resources) fetch(types []reflect.Type) (Fetched, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := make(Fetched, len(types))
	for i, typ := range types {
		res, ok := r.res[typ]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrResourceNotFound, typ)
		}
		f[i] = res
	}
	return f, nil
}
