// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// StageExecutor runs a fixed set of systems as one stage. Systems
// whose accesses do not conflict run in parallel; conflicting systems
// run in the order they were added.
type StageExecutor struct {
	systems []Schedulable
	ids     map[uuid.UUID]bool

	// batches are indexes into systems; systems in one batch
	// never conflict with each other.
	batches [][]int
}

// NewStageExecutor returns a new executor for the given systems.
// Systems added twice are logged and skipped.
func NewStageExecutor(systems ...Schedulable) *StageExecutor {
	e := &StageExecutor{ids: make(map[uuid.UUID]bool)}
	for _, sys := range systems {
		errors.Log(e.Add(sys))
	}
	return e
}

// Add adds the given system to the end of the stage.
func (e *StageExecutor) Add(sys Schedulable) error {
	if sys == nil {
		return errors.New("ecs: StageExecutor.Add: nil system")
	}
	if e.ids[sys.ID()] {
		return fmt.Errorf("ecs: StageExecutor.Add: system %q (%s) already added", sys.Name(), sys.ID())
	}
	e.ids[sys.ID()] = true
	e.systems = append(e.systems, sys)
	e.place(len(e.systems) - 1)
	return nil
}

// place puts the system at index i into the batch after the last
// batch holding a system it conflicts with.
func (e *StageExecutor) place(i int) {
	acc := e.systems[i].Access()
	b := 0
	for bi := len(e.batches) - 1; bi >= 0; bi-- {
		conflict := false
		for _, j := range e.batches[bi] {
			if acc.Conflicts(e.systems[j].Access()) {
				conflict = true
				break
			}
		}
		if conflict {
			b = bi + 1
			break
		}
	}
	if b == len(e.batches) {
		e.batches = append(e.batches, nil)
	}
	e.batches[b] = append(e.batches[b], i)
}

// Systems returns the systems of the stage in the order they were added.
func (e *StageExecutor) Systems() []Schedulable {
	return append([]Schedulable(nil), e.systems...)
}

// Batches returns the systems grouped into the batches that run in parallel.
func (e *StageExecutor) Batches() [][]Schedulable {
	res := make([][]Schedulable, len(e.batches))
	for bi, batch := range e.batches {
		for _, i := range batch {
			res[bi] = append(res[bi], e.systems[i])
		}
	}
	return res
}

// Execute runs every system once against the given world. Batches run
// one after another, the systems of a batch in parallel. The command
// buffers of all systems are then flushed in system order and the world
// tick advances. The first system error stops the stage before the
// next batch and is returned; commands are not applied in that case.
func (e *StageExecutor) Execute(ctx context.Context, w *World) error {
	cmds := make([]CommandBuffer, len(e.systems))
	for bi, batch := range e.batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		slog.Debug("ecs: running batch", "tick", w.Tick(), "batch", bi, "systems", len(batch))
		g, _ := errgroup.WithContext(ctx)
		for _, i := range batch {
			g.Go(func() error {
				return e.systems[i].Run(w, &cmds[i])
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	var errs []error
	for i := range cmds {
		if err := cmds[i].Flush(w); err != nil {
			errs = append(errs, fmt.Errorf("system %q: %w", e.systems[i].Name(), err))
		}
	}
	w.tick.Add(1)
	return errors.Join(errs...)
}
