// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"fmt"
	"go/ast"
	"slices"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
)

const (
	// Tool is the tool name of the comment directives read by systemgen.
	Tool = "ecs"

	// SystemDirective marks a function as a system:
	//
	//	//ecs:system
	//	//ecs:system name=physics_step
	SystemDirective = "system"
)

// Directive represents a comment directive
// that has been parsed or created in code.
type Directive struct {

	// Source is the source string of the comment directive.
	Source string

	// Tool is the name of the tool that
	// the directive is for.
	Tool string

	// Directive is the actual directive
	// string that is placed after the
	// name of the tool and a colon.
	Directive string

	// Args are the positional arguments
	// passed to the directive
	Args []string

	// NameValue are the key-value arguments
	// passed to the directive
	NameValue map[string]string
}

// String returns the directive as a formatted string suitable for use in
// code. It includes two slashes (`//`) at the start.
func (d *Directive) String() string {
	if d == nil {
		return "<nil>"
	}
	res := "//" + d.Tool + ":" + d.Directive
	for _, arg := range d.Args {
		res += " " + arg
	}
	keys := make([]string, 0, len(d.NameValue))
	for k := range d.NameValue {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		res += " " + k + "=" + d.NameValue[k]
	}
	return res
}

// ParseDirective parses the given comment string and returns any [Directive]
// inside it. If no such directive is found, it returns nil. Directives are of
// the form:
//
//	//tool:directive arg0 key0=value0 arg1 key1=value1
//
// (the two slashes are optional, and the positional and key-value arguments
// can be in any order).
func ParseDirective(comment string) (*Directive, error) {
	source := comment
	comment = strings.TrimPrefix(comment, "//")
	rs := []rune(comment)
	if len(rs) == 0 || unicode.IsSpace(rs[0]) { // directives must not have whitespace as their first character
		return nil, nil
	}
	before, after, found := strings.Cut(comment, ":")
	if !found || before == "" {
		return nil, nil
	}
	for _, r := range before {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return nil, nil
		}
	}
	directive := &Directive{Source: source, Tool: before, Args: []string{}, NameValue: map[string]string{}}
	args, err := shellwords.Parse(after)
	if err != nil {
		return nil, fmt.Errorf("error parsing args %w", err)
	}
	if len(args) > 0 {
		directive.Directive = args[0]
		args = args[1:]
	}
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			directive.NameValue[k] = v
		} else {
			directive.Args = append(directive.Args, arg)
		}
	}
	return directive, nil
}

// systemDirective returns the ecs:system directive in the given doc
// comment group, or nil if there is none. Other ecs directives, and
// arguments other than name=, are errors.
func systemDirective(doc *ast.CommentGroup) (*Directive, error) {
	if doc == nil {
		return nil, nil
	}
	var res *Directive
	for _, c := range doc.List {
		dir, err := ParseDirective(c.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidDirective, c.Text, err)
		}
		if dir == nil || dir.Tool != Tool {
			continue
		}
		if dir.Directive != SystemDirective {
			return nil, fmt.Errorf("%w: unrecognized directive %q (from %q)", ErrInvalidDirective, dir.Directive, c.Text)
		}
		if res != nil {
			return nil, fmt.Errorf("%w: %q given more than once", ErrInvalidDirective, dir.String())
		}
		if len(dir.Args) > 0 {
			return nil, fmt.Errorf("%w: expected 0 positional arguments but got %d (list: %v) (from %q)", ErrInvalidDirective, len(dir.Args), dir.Args, c.Text)
		}
		for k, v := range dir.NameValue {
			if k != "name" || v == "" {
				return nil, fmt.Errorf("%w: unexpected argument %s=%q (from %q)", ErrInvalidDirective, k, v, c.Text)
			}
		}
		res = dir
	}
	return res, nil
}
