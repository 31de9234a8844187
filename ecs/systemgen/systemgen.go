// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package systemgen generates scheduler registrations for ECS systems.
//
// A system is a function marked with an ecs:system comment directive in a
// file guarded by the system build tag (ecssystems by default). Each of its
// parameters must borrow a named type: ecs.Read[T] for shared access, and
// *T or ecs.Write[T] for exclusive access. Parameters borrowing a type named
// CommandBuffer or PreparedWorld receive the injected command buffer and
// world snapshot; all others are resources.
//
// For every such file, systemgen writes a file built without the tag in
// which every system is replaced by a factory of the same name. The factory
// declares the resources to an [ecs.SystemBuilder] in parameter order and
// runs the original body, unchanged, on the resolved resources.
package systemgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/tools/go/packages"
)

// PackageModes returns the package load modes needed for this generator.
// Systems are read from syntax alone, so no type information is loaded.
func PackageModes() packages.LoadMode {
	return packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax
}

// ParsePackages parses the package(s) located in the configuration source
// directory, including the files guarded by the system build tag.
func ParsePackages(cfg *Config) ([]*packages.Package, error) {
	pcfg := &packages.Config{
		Mode:       PackageModes(),
		BuildFlags: []string{"-tags=" + cfg.Tag},
		Tests:      false,
	}
	pkgs, err := packages.Load(pcfg, cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("systemgen: error parsing package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("systemgen: no packages found in %q", cfg.Dir)
	}
	var errs []error
	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			errs = append(errs, perr)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("systemgen: error parsing package: %w", errors.Join(errs...))
	}
	return pkgs, nil
}

// Generate generates system factories, using the
// configuration information, loading the packages from the
// configuration source directory, and writing the results
// next to the system source files. If [Config.Watch] is set,
// it keeps regenerating until interrupted.
//
// It is a simple entry point to systemgen that does all
// of the steps; for more specific functionality, create
// a new [Generator] with [NewGenerator] and call methods on it.
func Generate(cfg *Config) error {
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cfg.Watch {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		return Watch(ctx, cfg)
	}
	pkgs, err := ParsePackages(cfg)
	if err != nil {
		return err
	}
	return GeneratePkgs(cfg, pkgs)
}

// GeneratePkgs generates system factories using
// the given configuration object and packages parsed
// from the configuration source directory,
// and writes the results next to the system source files.
// Every system of every file is processed; a file with an
// invalid system is not written, and all errors are returned.
func GeneratePkgs(cfg *Config, pkgs []*packages.Package) error {
	g := NewGenerator(cfg, pkgs)
	var errs []error
	for _, pkg := range g.Pkgs {
		g.Pkg = pkg
		err := g.Find()
		if err != nil {
			errs = append(errs, fmt.Errorf("systemgen: Generate: error finding systems for package %q: %w", pkg.Name, err))
			continue
		}
		for _, f := range g.Files {
			g.Buf.Reset()
			err := g.Generate(f)
			if err != nil {
				errs = append(errs, fmt.Errorf("systemgen: Generate: error generating code for package %q: %w", pkg.Name, err))
				continue
			}
			err = g.Write(f)
			if err != nil {
				errs = append(errs, fmt.Errorf("systemgen: Generate: error writing code for package %q: %w", pkg.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}
