// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systemgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultTag is the default build tag guarding system source files.
	DefaultTag = "ecssystems"

	// DefaultSuffix is the default suffix of generated file names.
	DefaultSuffix = "_gen"
)

// Config contains the configuration information
// used by systemgen
type Config struct {

	// the source directory to run systemgen on (can be set to multiple through paths like ./...)
	Dir string `default:"." posarg:"0" required:"-" env:"SYSTEMGEN_DIR"`

	// the build tag that guards system source files; generated files are built with its negation
	Tag string `default:"ecssystems" env:"SYSTEMGEN_TAG"`

	// the suffix added to the base name of a system source file to name its generated file
	Suffix string `default:"_gen" env:"SYSTEMGEN_SUFFIX"`

	// an optional dotenv file with SYSTEMGEN_* values; variables set in the environment take precedence
	EnvFile string

	// whether to keep running and regenerate whenever a system source file changes
	Watch bool
}

// ApplyEnv applies any SYSTEMGEN_* environment variables that are set,
// or else set in [Config.EnvFile], to the fields that are still unset or
// at their default value, and then fills in the remaining defaults. Flags
// and config file values therefore take precedence over the environment.
func (c *Config) ApplyEnv() error {
	environ := env.ToMap(os.Environ())
	if c.EnvFile != "" {
		file, err := godotenv.Read(c.EnvFile)
		if err != nil {
			return fmt.Errorf("systemgen: read env file: %w", err)
		}
		for k, v := range file {
			if _, ok := environ[k]; !ok {
				environ[k] = v
			}
		}
	}
	ec := &Config{}
	if err := env.ParseWithOptions(ec, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("systemgen: parse env: %w", err)
	}
	c.Dir = envValue(c.Dir, ".", ec.Dir)
	c.Tag = envValue(c.Tag, DefaultTag, ec.Tag)
	c.Suffix = envValue(c.Suffix, DefaultSuffix, ec.Suffix)
	return nil
}

// envValue returns the value of a field given its current value, its
// default and its environment value: the current value unless it is
// unset or the default, and the default if nothing else is set.
func envValue(cur, def, fromEnv string) string {
	switch {
	case cur != "" && cur != def:
		return cur
	case fromEnv != "":
		return fromEnv
	}
	return def
}

// OutputName returns the name of the file generated from the given
// system source file name (eg: physics.go => physics_gen.go).
func (c *Config) OutputName(filename string) string {
	suffix := c.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSuffix(filename, ".go") + suffix + ".go"
}
