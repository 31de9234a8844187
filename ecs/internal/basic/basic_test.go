// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !ecssystems

package basic

import (
	"context"
	"reflect"
	"testing"

	"cogentcore.org/cohort/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem(t *testing.T) {
	sys := testSystem()
	assert.Equal(t, "test_system", sys.Name())
	assert.True(t, sys.Access().Reading(ecs.TypeOf[TestResource1]()))
	assert.False(t, sys.Access().Writing(ecs.TypeOf[TestResource1]()))
	assert.True(t, sys.Access().Writing(ecs.TypeOf[TestResource2]()))
	assert.Equal(t, []reflect.Type{ecs.TypeOf[TestResource1](), ecs.TypeOf[TestResource2]()}, sys.Access().Order)

	w := ecs.NewWorld()
	require.NoError(t, w.Resources.Insert(&TestResource1{Value: 1}))
	require.NoError(t, w.Resources.Insert(&TestResource2{Value: 4}))

	e := ecs.NewStageExecutor(sys)
	require.NoError(t, e.Execute(context.Background(), w))
	assert.Equal(t, 1, ecs.Resource[TestResource1](w.Resources).Value)
	assert.Equal(t, 5, ecs.Resource[TestResource2](w.Resources).Value)
	assert.Equal(t, uint64(1), w.Tick())

	require.NoError(t, e.Execute(context.Background(), w))
	assert.Equal(t, 6, ecs.Resource[TestResource2](w.Resources).Value)
}

func TestSystemMissingResource(t *testing.T) {
	w := ecs.NewWorld()
	require.NoError(t, w.Resources.Insert(&TestResource2{Value: 4}))
	err := ecs.NewStageExecutor(testSystem()).Execute(context.Background(), w)
	assert.ErrorIs(t, err, ecs.ErrResourceNotFound)
	assert.Equal(t, 4, ecs.Resource[TestResource2](w.Resources).Value)
}
