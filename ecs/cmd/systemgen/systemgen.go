// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command systemgen generates scheduler registrations for ECS systems.
package main

import (
	"cogentcore.org/cohort/ecs/systemgen"
	"cogentcore.org/core/cli"
)

func main() {
	opts := cli.DefaultOptions("systemgen", "Systemgen generates scheduler registrations for functions marked with ecs:system.")
	opts.DefaultFiles = []string{"systemgen.toml"}
	cli.Run(opts, &systemgen.Config{}, systemgen.Generate)
}
