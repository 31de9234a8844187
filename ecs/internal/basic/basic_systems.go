// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ecssystems

package basic

import "cogentcore.org/cohort/ecs"

//ecs:system
func testSystem(test1 ecs.Read[TestResource1], test2 *TestResource2) {
	test2.Value += test1.Value
}
