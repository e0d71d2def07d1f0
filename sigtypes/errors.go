// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package sigtypes

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedDescriptor = errors.New("unsupported descriptor")
	ErrInvalidSignature      = errors.New("invalid signature")
)

// MaxArrayDimensions is the deepest array nesting the JVM accepts in a descriptor.
const MaxArrayDimensions = 255

// UnsupportedDescriptorError is returned when a descriptor cannot be classified as primitive,
// array or object, or when its variant data is malformed.
type UnsupportedDescriptorError struct {
	Desc   *TypeDescriptor
	Reason string
}

func (e *UnsupportedDescriptorError) Error() string {
	if e.Desc == nil {
		return fmt.Sprintf("%v: %v", ErrUnsupportedDescriptor, e.Reason)
	}
	return fmt.Sprintf("%v (%v): %v", ErrUnsupportedDescriptor, e.Desc.Kind, e.Reason)
}

func (e *UnsupportedDescriptorError) Unwrap() error {
	return ErrUnsupportedDescriptor
}

// Unsupported builds an UnsupportedDescriptorError for desc.
func Unsupported(desc *TypeDescriptor, format string, args ...any) error {
	return &UnsupportedDescriptorError{
		Desc:   desc,
		Reason: fmt.Sprintf(format, args...),
	}
}
