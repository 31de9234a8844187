// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"errors"
	"reflect"
)

// CommandBuffer records world mutations made by a system so
// that they can be applied after the stage finishes, when no
// system holds a borrow.
type CommandBuffer struct {
	cmds []func(w *World) error
}

// InsertResource queues the insertion of the given resource pointer.
func (c *CommandBuffer) InsertResource(res any) {
	c.cmds = append(c.cmds, func(w *World) error {
		return w.Resources.Insert(res)
	})
}

// RemoveResource queues the removal of the resource of the given type.
func (c *CommandBuffer) RemoveResource(typ reflect.Type) {
	c.cmds = append(c.cmds, func(w *World) error {
		w.Resources.Remove(typ)
		return nil
	})
}

// Exec queues an arbitrary mutation of the world.
func (c *CommandBuffer) Exec(fun func(w *World) error) {
	c.cmds = append(c.cmds, fun)
}

// Len returns the number of queued commands.
func (c *CommandBuffer) Len() int {
	return len(c.cmds)
}

// Flush applies the queued commands to the given world in the
// order they were recorded and empties the buffer.
func (c *CommandBuffer) Flush(w *World) error {
	var errs []error
	for _, cmd := range c.cmds {
		if err := cmd(w); err != nil {
			errs = append(errs, err)
		}
	}
	c.cmds = c.cmds[:0]
	return errors.Join(errs...)
}
