// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

// FactoryTmpl is the template of the factory function that replaces
// a system. Its data is a [Factory].
var FactoryTmpl = template.Must(template.New("Factory").
	Funcs(template.FuncMap{
		"ResourceParams": ResourceParams,
		"ResourceArgs":   ResourceArgs,
	}).Parse(
	`{{range .Doc}}{{.}}
{{end}}func {{.Name}}() {{.Pkg}}Schedulable {
	return {{.Pkg}}NewSystemBuilder({{printf "%q" .Label}}){{range .Resources}}.
		{{if .Mutable}}WriteResource{{else}}ReadResource{{end}}({{$.Pkg}}TypeOf[{{.Type}}]()){{end}}.
		Build(func({{.CommandBuffer}} *{{.Pkg}}CommandBuffer, {{.WorldSnapshot}} *{{.Pkg}}PreparedWorld, {{.Fetched}} {{.Pkg}}Fetched, _ *struct{}) {
			func({{ResourceParams .}}) {{.Body}}({{ResourceArgs .}})
		})
}`))

// Factory is the data of [FactoryTmpl].
type Factory struct {
	*System

	// Pkg is the qualifier of the ecs package in the generated
	// file, including the trailing dot (eg: "ecs.").
	Pkg string

	// CommandBuffer and WorldSnapshot are the names of the handle
	// parameters of the built closure: the declared binding, or _
	// if the system does not declare the handle.
	CommandBuffer string
	WorldSnapshot string

	// Fetched is the name bound to the fetched resources; it never
	// collides with the handles or the packages of the resource types.
	Fetched string
}

// NewFactory returns the factory data for the given system, with
// pkg as the name of the ecs package in the generated file ("" for
// a dot import).
func NewFactory(sys *System, pkg string) *Factory {
	f := &Factory{System: sys, Pkg: pkg}
	if pkg != "" {
		f.Pkg = pkg + "."
	}
	f.CommandBuffer = handleName(sys, InjectedCommandBuffer)
	f.WorldSnapshot = handleName(sys, InjectedWorldSnapshot)
	taken := []string{f.CommandBuffer, f.WorldSnapshot, pkg}
	for _, p := range sys.Resources() {
		taken = append(taken, p.Qualifiers...)
	}
	f.Fetched = uniqueName("fetched", taken...)
	return f
}

// handleName returns the declared binding of the given handle, or _.
func handleName(sys *System, c Classification) string {
	if p := sys.Handle(c); p != nil {
		return p.Name
	}
	return "_"
}

// ResourceParams returns the parameter list of the function literal
// that runs the system body: every resource parameter as declared,
// in declaration order.
func ResourceParams(f *Factory) string {
	var params []string
	for _, p := range f.Resources() {
		params = append(params, p.Name+" "+p.Decl)
	}
	return strings.Join(params, ", ")
}

// ResourceArgs returns the arguments the body function literal is called
// with: the fetched resources, in the order they were declared to the builder.
func ResourceArgs(f *Factory) string {
	var args []string
	for i, p := range f.Resources() {
		args = append(args, fmt.Sprintf("%sGet[%s](%s, %d)", f.Pkg, p.Type, f.Fetched, i))
	}
	return strings.Join(args, ", ")
}

// Synthesize returns the source of the factory function that replaces
// the given system, with pkg as the name of the ecs package.
func Synthesize(sys *System, pkg string) ([]byte, error) {
	for _, c := range []Classification{InjectedCommandBuffer, InjectedWorldSnapshot} {
		if p := sys.Handle(c); p != nil && pkg != "" && p.Name == pkg {
			return nil, &Error{Pos: p.Position, System: sys.Name, Param: p.Name, Err: ErrShadowedPackage, Detail: "the factory refers to package " + pkg}
		}
	}
	var buf bytes.Buffer
	err := FactoryTmpl.Execute(&buf, NewFactory(sys, pkg))
	if err != nil {
		return nil, fmt.Errorf("programmer error: internal error: error executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// uniqueName returns base, or base followed by the smallest
// number that makes it differ from all of taken.
func uniqueName(base string, taken ...string) string {
	name := base
	for i := 1; slices.Contains(taken, name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}
