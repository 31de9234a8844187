// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ecs provides the runtime side of cohort systems: the resource
// store of a [World], the [SystemBuilder] that generated system factories
// call into, and a [StageExecutor] that runs [Schedulable] systems in
// parallel while honoring their declared resource accesses.
//
// Systems are plain functions marked with an ecs:system comment directive
// in a file guarded by the ecssystems build tag:
//
//	//go:build ecssystems
//
//	//ecs:system
//	func move(cmd *ecs.CommandBuffer, clock ecs.Read[Clock], bodies *Bodies) {
//		...
//	}
//
// The systemgen tool (see package [cogentcore.org/cohort/ecs/systemgen])
// turns each such function into a factory of the same name that returns
// a [Schedulable]:
//
//	exec := ecs.NewStageExecutor(move())
//	err := exec.Execute(ctx, world)
package ecs
