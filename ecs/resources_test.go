// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources(t *testing.T) {
	r := NewResources()
	require.NoError(t, r.Insert(&resA{N: 1}))
	assert.Error(t, r.Insert(resB{N: 2}))
	assert.Error(t, r.Insert((*resB)(nil)))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, Resource[resA](r).N)
	assert.Nil(t, Resource[resB](r))

	require.NoError(t, r.Insert(&resA{N: 3}))
	assert.Equal(t, 3, Resource[resA](r).N)

	assert.True(t, r.Remove(TypeOf[resA]()))
	assert.False(t, r.Remove(TypeOf[resA]()))
	assert.False(t, r.Has(TypeOf[resA]()))
}

func TestCommandBuffer(t *testing.T) {
	w := NewWorld()
	var cmd CommandBuffer
	cmd.InsertResource(&resA{N: 7})
	cmd.Exec(func(w *World) error {
		Resource[resA](w.Resources).N++
		return nil
	})
	assert.Equal(t, 2, cmd.Len())
	assert.Nil(t, Resource[resA](w.Resources))

	require.NoError(t, cmd.Flush(w))
	assert.Equal(t, 8, Resource[resA](w.Resources).N)
	assert.Equal(t, 0, cmd.Len())

	cmd.RemoveResource(TypeOf[resA]())
	cmd.InsertResource(resB{})
	assert.Error(t, cmd.Flush(w))
	assert.Nil(t, Resource[resA](w.Resources))
}
