// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package jnisig

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/dartnative/jnisig/sigtypes"
)

// classRegistry holds the go type -> java class aliases of an Encoder.
type classRegistry struct {
	mutex   sync.RWMutex
	classes map[reflect.Type]string
}

func newClassRegistry() *classRegistry {
	return &classRegistry{
		classes: map[reflect.Type]string{},
	}
}

// ResolveClassName implements sigtypes.ClassResolver.
func (r *classRegistry) ResolveClassName(t reflect.Type) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	name, ok := r.classes[t]
	return name, ok
}

func (r *classRegistry) register(sample any, className string) error {
	t := aliasType(sample)
	if t == nil {
		return fmt.Errorf("cannot register class alias for nil sample")
	}
	if err := sigtypes.ValidateClassName(className); err != nil {
		return fmt.Errorf("invalid class alias for %v: %w", t, err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.classes[t] = className
	return nil
}

// aliasType returns the go type a class alias sample refers to. reflect.Type values are used as is,
// nil pointers to interfaces refer to the interface type.
func aliasType(sample any) reflect.Type {
	if t, ok := sample.(reflect.Type); ok {
		return t
	}

	t := reflect.TypeOf(sample)
	if t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	return t
}
