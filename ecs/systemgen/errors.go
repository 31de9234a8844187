// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"errors"
	"fmt"
	"go/token"
)

// Errors reported for invalid system definitions. They are build-time
// failures of the offending definition and are always wrapped in an [*Error]
// carrying the source position.
var (
	// ErrUnsupportedGenerics is returned for a system with type parameters.
	ErrUnsupportedGenerics = errors.New("systems may not have generic parameters")

	// ErrUnsupportedReceiver is returned for a method, or for a parameter
	// without a name to bind it to.
	ErrUnsupportedReceiver = errors.New("receiver parameters not permitted")

	// ErrInvalidParameterShape is returned for a parameter that is not
	// a read or write borrow of a named type.
	ErrInvalidParameterShape = errors.New("argument must be a read or write borrow")

	// ErrDuplicateInjectedHandle is returned when a command buffer or a
	// prepared world is declared more than once.
	ErrDuplicateInjectedHandle = errors.New("injected handle declared more than once")

	// ErrShadowedPackage is returned when a declared handle has the name
	// of a package that a resource type refers to; the handle is in scope
	// where the generated factory spells the resource types.
	ErrShadowedPackage = errors.New("injected handle hides a package used by a resource type")

	// ErrUnguardedFile is returned for a file declaring systems that is
	// not excluded from normal builds by the system build tag.
	ErrUnguardedFile = errors.New("system files must be excluded from normal builds by the system build tag")

	// ErrInvalidDirective is returned for a malformed ecs comment directive.
	ErrInvalidDirective = errors.New("invalid ecs directive")
)

// Error is a generation error at a position in the source.
type Error struct {

	// Pos is where the offending construct starts.
	Pos token.Position

	// System is the name of the system, if any.
	System string

	// Param is the name of the parameter, if any.
	Param string

	// Detail further describes the offending construct.
	Detail string

	// Err is one of the sentinel errors of this package.
	Err error
}

func (e *Error) Error() string {
	res := ""
	if e.Pos.IsValid() {
		res = e.Pos.String() + ": "
	}
	if e.System != "" {
		res += fmt.Sprintf("system %q: ", e.System)
	}
	if e.Param != "" {
		res += fmt.Sprintf("parameter %q: ", e.Param)
	}
	res += e.Err.Error()
	if e.Detail != "" {
		res += ": " + e.Detail
	}
	return res
}

func (e *Error) Unwrap() error {
	return e.Err
}
