// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package codegen

import (
	"runtime/debug"
)

// Version is the jnisig module version recorded in generated file headers, "unknown" when it
// cannot be determined from the build info (e.g. during development).
var Version = "unknown"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path == "github.com/dartnative/jnisig" && info.Main.Version != "" {
			Version = info.Main.Version
			return
		}
		for _, dep := range info.Deps {
			if dep.Path == "github.com/dartnative/jnisig" {
				Version = dep.Version
				break
			}
		}
	}
}
