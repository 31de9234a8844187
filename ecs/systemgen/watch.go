// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
)

// watchDelay is how long Watch waits for changes to settle.
const watchDelay = 100 * time.Millisecond

// Watch generates once and then again whenever a Go source file in the
// loaded package directories changes, until ctx is done. Generation
// errors are logged and do not stop watching.
func Watch(ctx context.Context, cfg *Config) error {
	pkgs, err := ParsePackages(cfg)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	dirs := map[string]bool{}
	for _, pkg := range pkgs {
		for _, fn := range pkg.GoFiles {
			dirs[filepath.Dir(fn)] = true
		}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
		slog.Info("systemgen: watching", "dir", dir)
	}
	errors.Log(GeneratePkgs(cfg, pkgs))

	timer := time.NewTimer(watchDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Chmod) || !IsSource(ev.Name, cfg) {
				continue
			}
			slog.Debug("systemgen: change", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(watchDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("systemgen: watcher error: " + err.Error())
		case <-timer.C:
			pkgs, err := ParsePackages(cfg)
			if errors.Log(err) != nil {
				continue
			}
			errors.Log(GeneratePkgs(cfg, pkgs))
		}
	}
}

// IsSource returns whether the given file could declare systems: a Go
// file that is neither a test nor generated by systemgen.
func IsSource(filename string, cfg *Config) bool {
	base := filepath.Base(filename)
	if !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go") {
		return false
	}
	return !strings.HasSuffix(base, cfg.OutputName(""))
}
