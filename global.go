// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package jnisig

import "sync"

var (
	globalEncoder      *Encoder
	globalEncoderMutex sync.Mutex
)

func GetGlobalEncoder() *Encoder {
	globalEncoderMutex.Lock()
	defer globalEncoderMutex.Unlock()

	if globalEncoder == nil {
		globalEncoder = NewEncoder()
	}
	return globalEncoder
}

// SetGlobalClassAliases replaces the global encoder with one using the given class aliases.
func SetGlobalClassAliases(aliases map[any]string) {
	globalEncoderMutex.Lock()
	defer globalEncoderMutex.Unlock()

	globalEncoder = NewEncoder(WithClassAliases(aliases))
}
