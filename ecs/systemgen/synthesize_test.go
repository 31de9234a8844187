// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"go/format"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthesize(t *testing.T, decl, pkg string) string {
	t.Helper()
	sys, err := classify(t, decl)
	require.NoError(t, err)
	out, err := Synthesize(sys, pkg)
	require.NoError(t, err)
	formatted, err := format.Source(append(out, '\n'))
	require.NoError(t, err, string(out))
	return string(formatted)
}

func TestSynthesize(t *testing.T) {
	have := synthesize(t, `//ecs:system
func testSystem(test1 ecs.Read[TestResource1], test2 *TestResource2) {
	test2.Value += test1.Value
}`, "ecs")
	want := `func testSystem() ecs.Schedulable {
	return ecs.NewSystemBuilder("test_system").
		ReadResource(ecs.TypeOf[TestResource1]()).
		WriteResource(ecs.TypeOf[TestResource2]()).
		Build(func(_ *ecs.CommandBuffer, _ *ecs.PreparedWorld, fetched ecs.Fetched, _ *struct{}) {
			func(test1 ecs.Read[TestResource1], test2 *TestResource2) {
				test2.Value += test1.Value
			}(ecs.Get[TestResource1](fetched, 0), ecs.Get[TestResource2](fetched, 1))
		})
}
`
	assert.Equal(t, want, have)
}

func TestSynthesizeChain(t *testing.T) {
	have := synthesize(t, `// step advances the bodies.
//ecs:system
func step(a ecs.Read[A], cmd *ecs.CommandBuffer, b *B, c ecs.Write[pkg.C], d ecs.Read[D]) {
	cmd.InsertResource(&E{})
}`, "ecs")
	assert.True(t, strings.HasPrefix(have, "// step advances the bodies.\nfunc step() ecs.Schedulable {"), have)
	assert.Equal(t, 2, strings.Count(have, "ReadResource("))
	assert.Equal(t, 2, strings.Count(have, "WriteResource("))
	assert.NotContains(t, have, "CommandBuffer]()")

	chain := []string{
		"ReadResource(ecs.TypeOf[A]())",
		"WriteResource(ecs.TypeOf[B]())",
		"WriteResource(ecs.TypeOf[pkg.C]())",
		"ReadResource(ecs.TypeOf[D]())",
		"Build(func(cmd *ecs.CommandBuffer, _ *ecs.PreparedWorld, fetched ecs.Fetched, _ *struct{}) {",
		"func(a ecs.Read[A], b *B, c ecs.Write[pkg.C], d ecs.Read[D]) {",
		"cmd.InsertResource(&E{})",
		"(ecs.Get[A](fetched, 0), ecs.Get[B](fetched, 1), ecs.Get[pkg.C](fetched, 2), ecs.Get[D](fetched, 3))",
	}
	last := -1
	for _, s := range chain {
		i := strings.Index(have, s)
		if assert.GreaterOrEqual(t, i, 0, s) {
			assert.Greater(t, i, last, s)
			last = i
		}
	}
}

func TestSynthesizeNoResources(t *testing.T) {
	have := synthesize(t, `//ecs:system name=noop
func noop(cmd *ecs.CommandBuffer) {}`, "ecs")
	want := `func noop() ecs.Schedulable {
	return ecs.NewSystemBuilder("noop").
		Build(func(cmd *ecs.CommandBuffer, _ *ecs.PreparedWorld, fetched ecs.Fetched, _ *struct{}) {
			func() {}()
		})
}
`
	assert.Equal(t, want, have)
}

func TestSynthesizeHandlePosition(t *testing.T) {
	first := synthesize(t, `//ecs:system
func sys(cmd *ecs.CommandBuffer, a *A, w ecs.Read[ecs.PreparedWorld], b ecs.Read[B]) {
	_ = w.Tick()
}`, "ecs")
	last := synthesize(t, `//ecs:system
func sys(a *A, b ecs.Read[B], w ecs.Read[ecs.PreparedWorld], cmd *ecs.CommandBuffer) {
	_ = w.Tick()
}`, "ecs")
	assert.Equal(t, first, last)
}

func TestSynthesizeDeterministic(t *testing.T) {
	decl := `//ecs:system
func sys(a *A, b ecs.Read[B]) {
	a.N += b.N
}`
	assert.Equal(t, synthesize(t, decl, "ecs"), synthesize(t, decl, "ecs"))
}

func TestSynthesizePkg(t *testing.T) {
	decl := `//ecs:system
func sys(a *A) {}`
	have := synthesize(t, decl, "e")
	assert.Contains(t, have, "func sys() e.Schedulable {")
	assert.Contains(t, have, `e.NewSystemBuilder("sys")`)
	assert.Contains(t, have, "e.Get[A](fetched, 0)")

	have = synthesize(t, decl, "")
	assert.Contains(t, have, "func sys() Schedulable {")
	assert.Contains(t, have, `return NewSystemBuilder("sys")`)
	assert.Contains(t, have, "WriteResource(TypeOf[A]())")
	assert.Contains(t, have, "(Get[A](fetched, 0))")
}

func TestSynthesizeFetchedName(t *testing.T) {
	have := synthesize(t, `//ecs:system
func sys(fetched *ecs.CommandBuffer, fetched1 ecs.Read[ecs.PreparedWorld], a *A) {}`, "ecs")
	assert.Contains(t, have, "Build(func(fetched *ecs.CommandBuffer, fetched1 *ecs.PreparedWorld, fetched2 ecs.Fetched, _ *struct{}) {")
	assert.Contains(t, have, "(ecs.Get[A](fetched2, 0))")
}

func TestUniqueName(t *testing.T) {
	assert.Equal(t, "fetched", uniqueName("fetched", "cmdBuf", "world"))
	assert.Equal(t, "fetched1", uniqueName("fetched", "fetched", "world"))
	assert.Equal(t, "fetched2", uniqueName("fetched", "fetched1", "fetched"))
}

func TestSynthesizeUndeclaredHandles(t *testing.T) {
	have := synthesize(t, `//ecs:system
func grow(m *world.Map, cmd *ecs.CommandBuffer, c ecs.Read[cmdBuf.Config], f ecs.Read[fetched.Log]) {
	m.N++
}`, "ecs")
	want := `func grow() ecs.Schedulable {
	return ecs.NewSystemBuilder("grow").
		WriteResource(ecs.TypeOf[world.Map]()).
		ReadResource(ecs.TypeOf[cmdBuf.Config]()).
		ReadResource(ecs.TypeOf[fetched.Log]()).
		Build(func(cmd *ecs.CommandBuffer, _ *ecs.PreparedWorld, fetched1 ecs.Fetched, _ *struct{}) {
			func(m *world.Map, c ecs.Read[cmdBuf.Config], f ecs.Read[fetched.Log]) {
				m.N++
			}(ecs.Get[world.Map](fetched1, 0), ecs.Get[cmdBuf.Config](fetched1, 1), ecs.Get[fetched.Log](fetched1, 2))
		})
}
`
	assert.Equal(t, want, have)

	sys, err := classify(t, "//ecs:system\nfunc grow(m *world.Map) {}")
	require.NoError(t, err)
	assert.Equal(t, DefaultCommandBufferBinding, sys.CommandBufferBinding)
	assert.Equal(t, DefaultWorldSnapshotBinding, sys.WorldSnapshotBinding)
	assert.Nil(t, sys.Handle(InjectedCommandBuffer))
	assert.Nil(t, sys.Handle(InjectedWorldSnapshot))
}

func TestSynthesizeHandleNamedPkg(t *testing.T) {
	sys, err := classify(t, "//ecs:system\nfunc sys(ecs *ecs.CommandBuffer, a *A) {}")
	require.NoError(t, err)
	_, err = Synthesize(sys, "ecs")
	assert.ErrorIs(t, err, ErrShadowedPackage)
	var gerr *Error
	if assert.ErrorAs(t, err, &gerr) {
		assert.Equal(t, "ecs", gerr.Param)
		assert.Equal(t, 4, gerr.Pos.Line)
	}

	_, err = Synthesize(sys, "e")
	assert.NoError(t, err)
}
