// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strings"

	"cogentcore.org/core/base/strcase"
)

// Classification is the role of a system parameter.
type Classification int32

const (
	// Resource is a resource borrowed from the world.
	Resource Classification = iota

	// InjectedCommandBuffer is the command buffer handle.
	InjectedCommandBuffer

	// InjectedWorldSnapshot is the prepared world handle.
	InjectedWorldSnapshot
)

// String returns the name of the classification.
func (c Classification) String() string {
	switch c {
	case Resource:
		return "Resource"
	case InjectedCommandBuffer:
		return "InjectedCommandBuffer"
	case InjectedWorldSnapshot:
		return "InjectedWorldSnapshot"
	default:
		return fmt.Sprintf("Classification(%d)", int32(c))
	}
}

const (
	// CommandBufferType is the simple type name of the command buffer handle.
	CommandBufferType = "CommandBuffer"

	// PreparedWorldType is the simple type name of the prepared world handle.
	PreparedWorldType = "PreparedWorld"

	// DefaultCommandBufferBinding is the binding reported for the command
	// buffer when a system does not declare it. Generated factories leave
	// an undeclared handle unnamed.
	DefaultCommandBufferBinding = "cmdBuf"

	// DefaultWorldSnapshotBinding is the binding reported for the prepared
	// world when a system does not declare it.
	DefaultWorldSnapshotBinding = "world"
)

// handles maps the reserved simple type names to the handle they inject.
var handles = map[string]Classification{
	CommandBufferType: InjectedCommandBuffer,
	PreparedWorldType: InjectedWorldSnapshot,
}

// Param describes one declared parameter of a system.
type Param struct {

	// Name is the binding identifier of the parameter.
	Name string

	// Type is the borrowed type path (eg: physics.Gravity).
	Type string

	// Decl is the source text of the declared parameter type
	// (eg: ecs.Read[physics.Gravity]).
	Decl string

	// Mutable is whether the parameter is an exclusive borrow.
	Mutable bool

	Classification Classification

	// Qualifiers are the package names referenced by the declared type
	// (eg: ecs and physics for ecs.Read[physics.Gravity]).
	Qualifiers []string

	Pos token.Pos

	// Position is Pos resolved in the file set of the system.
	Position token.Position
}

// System describes one function marked with the ecs:system directive.
type System struct {

	// Name is the function name, reused for the generated factory.
	Name string

	// Label is the name passed to the system builder.
	Label string

	// Doc are the doc comment lines of the function, without
	// the ecs directives.
	Doc []string

	// Params are all of the parameters in declaration order.
	Params []*Param

	// Body is the source text of the function body, braces
	// included, exactly as written.
	Body string

	// CommandBufferBinding is the name bound to the command buffer.
	CommandBufferBinding string

	// WorldSnapshotBinding is the name bound to the prepared world.
	WorldSnapshotBinding string

	// Func is the AST of the function.
	Func *ast.FuncDecl
}

// Resources returns the resource parameters in declaration order.
func (s *System) Resources() []*Param {
	var res []*Param
	for _, p := range s.Params {
		if p.Classification == Resource {
			res = append(res, p)
		}
	}
	return res
}

// Handle returns the parameter declaring the given injected handle,
// or nil if the system does not declare it.
func (s *System) Handle(c Classification) *Param {
	for _, p := range s.Params {
		if c != Resource && p.Classification == c {
			return p
		}
	}
	return nil
}

// Classify reads the signature of the given system function, whose
// source is src, and returns its description. Every parameter must be
// a named read or write borrow; methods and generic functions are
// rejected. The returned error joins one [*Error] per offending construct.
func Classify(fset *token.FileSet, src []byte, fn *ast.FuncDecl) (*System, error) {
	sys := &System{Name: fn.Name.Name, Func: fn}
	fail := func(pos token.Pos, param string, err error, detail string) *Error {
		return &Error{Pos: fset.Position(pos), System: sys.Name, Param: param, Err: err, Detail: detail}
	}

	dir, err := systemDirective(fn.Doc)
	if err != nil {
		return nil, fail(fn.Pos(), "", ErrInvalidDirective, err.Error())
	}
	sys.Label = strcase.ToSnake(sys.Name)
	if dir != nil && dir.NameValue["name"] != "" {
		sys.Label = dir.NameValue["name"]
	}
	sys.Doc = docLines(fn.Doc)

	if fn.Recv != nil {
		return nil, fail(fn.Recv.Pos(), "", ErrUnsupportedReceiver, "systems may not be methods")
	}
	if fn.Type.TypeParams != nil && fn.Type.TypeParams.NumFields() > 0 {
		return nil, fail(fn.Type.TypeParams.Pos(), "", ErrUnsupportedGenerics, "")
	}
	if fn.Body == nil {
		return nil, fail(fn.Pos(), "", ErrInvalidParameterShape, "system has no body")
	}
	if fn.Type.Results != nil && fn.Type.Results.NumFields() > 0 {
		return nil, fail(fn.Type.Results.Pos(), "", ErrInvalidParameterShape, "systems may not return values")
	}

	var errs []error
	seen := map[Classification]*Param{}
	for _, field := range fn.Type.Params.List {
		if len(field.Names) == 0 {
			errs = append(errs, fail(field.Pos(), "", ErrUnsupportedReceiver, "parameter has no name to bind"))
			continue
		}
		for _, name := range field.Names {
			p, err := classifyParam(fset, src, name, field.Type)
			if err != nil {
				errs = append(errs, fail(name.Pos(), name.Name, ErrInvalidParameterShape, err.Error()))
				continue
			}
			if p.Classification != Resource {
				if prev := seen[p.Classification]; prev != nil {
					errs = append(errs, fail(name.Pos(), name.Name, ErrDuplicateInjectedHandle,
						fmt.Sprintf("%s already bound to %q at %v", p.Classification, prev.Name, fset.Position(prev.Pos))))
					continue
				}
				seen[p.Classification] = p
			}
			sys.Params = append(sys.Params, p)
		}
	}
	for _, c := range []Classification{InjectedCommandBuffer, InjectedWorldSnapshot} {
		h := seen[c]
		if h == nil {
			continue
		}
		for _, p := range sys.Resources() {
			if slices.Contains(p.Qualifiers, h.Name) {
				errs = append(errs, fail(h.Pos, h.Name, ErrShadowedPackage,
					fmt.Sprintf("resource %q has type %s", p.Name, p.Decl)))
				break
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sys.CommandBufferBinding = DefaultCommandBufferBinding
	if p := seen[InjectedCommandBuffer]; p != nil {
		sys.CommandBufferBinding = p.Name
	}
	sys.WorldSnapshotBinding = DefaultWorldSnapshotBinding
	if p := seen[InjectedWorldSnapshot]; p != nil {
		sys.WorldSnapshotBinding = p.Name
	}
	sys.Body = nodeText(fset, src, fn.Body)
	return sys, nil
}

// classifyParam classifies one parameter with the given name and type.
func classifyParam(fset *token.FileSet, src []byte, name *ast.Ident, typ ast.Expr) (*Param, error) {
	elem, mutable, ok := borrow(typ)
	if !ok {
		return nil, fmt.Errorf("got %s", nodeText(fset, src, typ))
	}
	path, simple, ok := typePath(elem)
	if !ok {
		return nil, fmt.Errorf("borrowed type %s is not a named type", nodeText(fset, src, elem))
	}
	p := &Param{
		Name:           name.Name,
		Type:           path,
		Decl:           nodeText(fset, src, typ),
		Mutable:        mutable,
		Classification: Resource,
		Qualifiers:     qualifiers(typ),
		Pos:            name.Pos(),
		Position:       fset.Position(name.Pos()),
	}
	if c, ok := handles[simple]; ok {
		p.Classification = c
	}
	return p, nil
}

// borrow returns the borrowed element type of the given parameter type
// and whether it is an exclusive borrow. *T and Write[T] are exclusive,
// Read[T] is shared; the markers are matched by simple name.
func borrow(typ ast.Expr) (elem ast.Expr, mutable bool, ok bool) {
	switch t := ast.Unparen(typ).(type) {
	case *ast.StarExpr:
		return t.X, true, true
	case *ast.IndexExpr:
		switch simpleName(t.X) {
		case "Read":
			return t.Index, false, true
		case "Write":
			return t.Index, true, true
		}
	}
	return nil, false, false
}

// typePath returns the path (eg: pkg.Name) and simple name of the
// given named type expression.
func typePath(typ ast.Expr) (path, simple string, ok bool) {
	switch t := ast.Unparen(typ).(type) {
	case *ast.Ident:
		return t.Name, t.Name, true
	case *ast.SelectorExpr:
		pkg, isIdent := t.X.(*ast.Ident)
		if !isIdent {
			return "", "", false
		}
		return pkg.Name + "." + t.Sel.Name, t.Sel.Name, true
	}
	return "", "", false
}

// qualifiers returns the package names used in the given type expression,
// in order of first appearance.
func qualifiers(typ ast.Expr) []string {
	var res []string
	ast.Inspect(typ, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && !slices.Contains(res, id.Name) {
			res = append(res, id.Name)
		}
		return false
	})
	return res
}

// simpleName returns the last segment of an identifier or
// qualified identifier, or "" for anything else.
func simpleName(x ast.Expr) string {
	switch t := x.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if _, ok := t.X.(*ast.Ident); ok {
			return t.Sel.Name
		}
	}
	return ""
}

// docLines returns the lines of the given doc comment group
// with any ecs directives removed.
func docLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var res []string
	for _, c := range doc.List {
		if dir, _ := ParseDirective(c.Text); dir != nil && dir.Tool == Tool {
			continue
		}
		res = append(res, c.Text)
	}
	// a trailing empty comment line only separated the directive
	for len(res) > 0 && strings.TrimSpace(res[len(res)-1]) == "//" {
		res = res[:len(res)-1]
	}
	return res
}

// nodeText returns the source text of the given node.
func nodeText(fset *token.FileSet, src []byte, n ast.Node) string {
	tf := fset.File(n.Pos())
	return string(src[tf.Offset(n.Pos()):tf.Offset(n.End())])
}
