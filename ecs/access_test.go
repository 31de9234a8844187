// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type resA struct{ N int }
type resB struct{ N int }

func TestAccessConflicts(t *testing.T) {
	a, b := TypeOf[resA](), TypeOf[resB]()
	access := func(reads, writes []reflect.Type) *Access {
		acc := &Access{}
		for _, r := range reads {
			acc.Read(r)
		}
		for _, w := range writes {
			acc.Write(w)
		}
		return acc
	}
	tests := []struct {
		name  string
		x, y  *Access
		wants bool
	}{
		{"read-read", access([]reflect.Type{a}, nil), access([]reflect.Type{a}, nil), false},
		{"read-write", access([]reflect.Type{a}, nil), access(nil, []reflect.Type{a}), true},
		{"write-read", access(nil, []reflect.Type{a}), access([]reflect.Type{a}, nil), true},
		{"write-write", access(nil, []reflect.Type{a}), access(nil, []reflect.Type{a}), true},
		{"disjoint", access(nil, []reflect.Type{a}), access(nil, []reflect.Type{b}), false},
		{"empty", access(nil, nil), access(nil, []reflect.Type{b}), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.wants, test.x.Conflicts(test.y))
			assert.Equal(t, test.wants, test.y.Conflicts(test.x))
		})
	}
}

func TestAccessOrder(t *testing.T) {
	acc := &Access{}
	acc.Write(TypeOf[resB]())
	acc.Read(TypeOf[resA]())
	assert.Equal(t, []reflect.Type{TypeOf[resB](), TypeOf[resA]()}, acc.Order)
	assert.True(t, acc.Writing(TypeOf[resB]()))
	assert.True(t, acc.Reading(TypeOf[resA]()))
	assert.False(t, acc.Writing(TypeOf[resA]()))
}

func TestAccessAliased(t *testing.T) {
	a, b := TypeOf[resA](), TypeOf[resB]()
	acc := &Access{}
	acc.Read(a)
	acc.Read(a)
	acc.Write(b)
	_, ok := acc.Aliased()
	assert.False(t, ok)

	acc.Read(b)
	typ, ok := acc.Aliased()
	assert.True(t, ok)
	assert.Equal(t, b, typ)

	acc = &Access{}
	acc.Write(a)
	acc.Write(a)
	typ, ok = acc.Aliased()
	assert.True(t, ok)
	assert.Equal(t, a, typ)
}
