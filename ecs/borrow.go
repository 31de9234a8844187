// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import "reflect"

// Read marks a system parameter as a shared borrow of the resource T.
// It is identical to *T; the system must not modify the value.
type Read[T any] = *T

// Write marks a system parameter as an exclusive borrow of the resource T.
// It is identical to *T, which may also be used directly.
type Write[T any] = *T

// TypeOf returns the resource type key of T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
