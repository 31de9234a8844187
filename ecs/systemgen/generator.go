// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/format"
	"go/token"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

// EcsPackage is the import path of the package that generated
// factories build their systems with.
const EcsPackage = "cogentcore.org/cohort/ecs"

// Header is the first line of every generated file.
const Header = `// Code generated by "systemgen"; DO NOT EDIT.`

// Generator holds the state of the generator.
// It is primarily used to buffer the output.
type Generator struct {
	Config *Config             // The configuration information
	Buf    bytes.Buffer        // The accumulated output.
	Pkgs   []*packages.Package // The packages we are scanning.
	Pkg    *packages.Package   // The packages we are currently on.
	Files  []*File             // The files of Pkg that declare systems
}

// File is a source file that declares systems.
type File struct {
	Filename string    // The absolute path of the file
	Syntax   *ast.File // The parsed file
	Src      []byte    // The source of the file
}

// NewGenerator returns a new generator with the
// given configuration information and parsed packages.
func NewGenerator(config *Config, pkgs []*packages.Package) *Generator {
	return &Generator{Config: config, Pkgs: pkgs}
}

// Find goes through all of the files in the package and adds
// those with functions marked with ecs:system to [Generator.Files].
func (g *Generator) Find() error {
	g.Files = nil
	for _, file := range g.Pkg.Syntax {
		if ast.IsGenerated(file) || !HasSystems(file) {
			continue
		}
		filename := g.Pkg.Fset.Position(file.Package).Filename
		src, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading system file: %w", err)
		}
		g.Files = append(g.Files, &File{Filename: filename, Syntax: file, Src: src})
	}
	return nil
}

// Generate generates the output for the given file
// and stores it in [Generator.Buf].
func (g *Generator) Generate(f *File) error {
	out, err := GenerateFile(g.Pkg.Fset, f.Syntax, f.Src, g.Config)
	if err != nil {
		return err
	}
	g.Buf.Write(out)
	return nil
}

// Write formats the data in the the Generator's buffer
// ([Generator.Buf]) and writes it next to the given file,
// named according to [Config.OutputName].
func (g *Generator) Write(f *File) error {
	dir, name := filepath.Split(f.Filename)
	out := filepath.Join(dir, g.Config.OutputName(name))
	src, err := imports.Process(out, g.Buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("error formatting generated code for %s: %w", out, err)
	}
	if err := os.WriteFile(out, src, 0666); err != nil {
		return err
	}
	slog.Info("systemgen: wrote file", "file", out)
	return nil
}

// HasSystems returns whether the given file has a function marked
// with an ecs comment directive.
func HasSystems(file *ast.File) bool {
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && isSystem(fn) {
			return true
		}
	}
	return false
}

// isSystem returns whether the doc comment of fn has an ecs directive;
// malformed ones count so that they get reported.
func isSystem(fn *ast.FuncDecl) bool {
	if fn.Doc == nil {
		return false
	}
	for _, c := range fn.Doc.List {
		dir, err := ParseDirective(c.Text)
		if err != nil || (dir != nil && dir.Tool == Tool) {
			return true
		}
	}
	return false
}

// edit replaces src[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// GenerateFile returns the formatted source of the file generated from
// the given file, or nil if it declares no systems. The generated file
// is the source file with the negation of its build constraint and with
// every system replaced by its factory; everything else is kept as is.
// All invalid systems are reported in the returned error, in which case
// there is no output.
func GenerateFile(fset *token.FileSet, file *ast.File, src []byte, cfg *Config) ([]byte, error) {
	tag := cfg.Tag
	if tag == "" {
		tag = DefaultTag
	}
	tf := fset.File(file.Pos())
	offset := func(p token.Pos) int { return tf.Offset(p) }

	var systems []*ast.FuncDecl
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && isSystem(fn) {
			systems = append(systems, fn)
		}
	}
	if len(systems) == 0 {
		return nil, nil
	}

	var errs []error
	var edits []edit
	guarded := false
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			break
		}
		for _, c := range cg.List {
			switch {
			case constraint.IsGoBuild(c.Text):
				expr, err := constraint.Parse(c.Text)
				if err != nil {
					errs = append(errs, &Error{Pos: fset.Position(c.Pos()), Err: ErrUnguardedFile, Detail: err.Error()})
					continue
				}
				if expr.Eval(func(t string) bool { return t != tag }) {
					continue
				}
				guarded = true
				neg := &constraint.NotExpr{X: expr}
				edits = append(edits, edit{offset(c.Pos()), offset(c.End()), "//go:build " + neg.String()})
			case constraint.IsPlusBuild(c.Text):
				edits = append(edits, edit{offset(c.Pos()), offset(c.End()), ""})
			}
		}
	}
	if !guarded {
		errs = append(errs, &Error{Pos: fset.Position(file.Package), Err: ErrUnguardedFile, Detail: "add //go:build " + tag})
	}

	pkg, imported := ecsImport(file)
	if !imported {
		spec := strconv.Quote(EcsPackage)
		if pkg != path.Base(EcsPackage) {
			spec = pkg + " " + spec
		}
		edits = append(edits, edit{offset(file.Name.End()), offset(file.Name.End()), "\n\nimport " + spec})
	}

	for _, fn := range systems {
		sys, err := Classify(fset, src, fn)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out, err := Synthesize(sys, pkg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		start := fn.Pos()
		if fn.Doc != nil {
			start = fn.Doc.Pos()
		}
		edits = append(edits, edit{offset(start), offset(fn.End()), string(out)})
		slog.Debug("systemgen: generated system", "system", sys.Name, "resources", len(sys.Resources()))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortFunc(edits, func(a, b edit) int { return b.start - a.start })
	res := slices.Clone(src)
	for _, e := range edits {
		res = slices.Concat(res[:e.start], []byte(e.text), res[e.end:])
	}
	res = slices.Concat([]byte(Header+"\n\n"), res)
	formatted, err := format.Source(res)
	if err != nil {
		return nil, fmt.Errorf("programmer error: internal error: generated code for %s does not parse: %w", fset.Position(file.Package).Filename, err)
	}
	return formatted, nil
}

// ecsImport returns the name the given file refers to [EcsPackage] by
// ("" for a dot import) and whether the file imports it at all. If it
// does not, the name is one that no other import of the file uses.
func ecsImport(file *ast.File) (string, bool) {
	var names []string
	for _, imp := range file.Imports {
		ipath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(ipath)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if ipath != EcsPackage || name == "_" {
			names = append(names, name)
			continue
		}
		if name == "." {
			return "", true
		}
		return name, true
	}
	return uniqueName(path.Base(EcsPackage), names...), false
}
