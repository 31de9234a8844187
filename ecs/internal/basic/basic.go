// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package basic checks a generated system end to end: the system in
// basic_systems.go is built only with the ecssystems tag, and
// basic_systems_gen.go is what systemgen generates from it.
package basic

//go:generate go run ../../cmd/systemgen

// TestResource1 is read by testSystem.
type TestResource1 struct {
	Value int
}

// TestResource2 is written by testSystem.
type TestResource2 struct {
	Value int
}
