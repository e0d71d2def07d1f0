// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package sigtypes

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseJavaType parses a java source type name like "int", "byte[][]", "java.lang.String..." or
// "java.util.Map$Entry" into a descriptor. Varargs ("...") are treated as one array dimension.
func ParseJavaType(name string) (*TypeDescriptor, error) {
	name = strings.TrimSpace(name)
	dims := 0

	if strings.HasSuffix(name, "...") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "..."))
		dims++
	}
	for strings.HasSuffix(name, "]") {
		trimmed := strings.TrimSpace(strings.TrimSuffix(name, "]"))
		if !strings.HasSuffix(trimmed, "[") {
			return nil, fmt.Errorf("unbalanced array brackets in java type '%v'", name)
		}
		name = strings.TrimSpace(strings.TrimSuffix(trimmed, "["))
		dims++
	}

	if dims > MaxArrayDimensions {
		return nil, fmt.Errorf("java type has %v array dimensions, max is %v", dims, MaxArrayDimensions)
	}

	var desc *TypeDescriptor
	if prim, ok := PrimitiveByName(name); ok {
		if prim == Void && dims > 0 {
			return nil, fmt.Errorf("void cannot be used as array element")
		}
		desc = NewPrimitive(prim)
	} else {
		if err := ValidateClassName(name); err != nil {
			return nil, err
		}
		desc = NewObject(name)
	}

	for i := 0; i < dims; i++ {
		desc = NewArray(desc)
	}
	return desc, nil
}

// ValidateClassName checks that name is a dot separated binary class name made of java identifiers.
func ValidateClassName(name string) error {
	if name == "" {
		return fmt.Errorf("empty class name")
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return fmt.Errorf("class name '%v' has an empty segment", name)
		}
		if r, ok := invalidIdentifierRune(part); ok {
			return fmt.Errorf("class name '%v' contains invalid character %q", name, r)
		}
	}
	return nil
}

// JNI names of constructors and static initializers.
const (
	ConstructorName       = "<init>"
	StaticInitializerName = "<clinit>"
)

// ValidateMethodName checks that name is a java identifier or one of the special JNI method names
// "<init>" and "<clinit>".
func ValidateMethodName(name string) error {
	switch name {
	case "":
		return fmt.Errorf("empty method name")
	case ConstructorName, StaticInitializerName:
		return nil
	}
	if r, ok := invalidIdentifierRune(name); ok {
		return fmt.Errorf("method name '%v' contains invalid character %q", name, r)
	}
	return nil
}

// invalidIdentifierRune returns the first rune of ident that is not valid in a java identifier.
func invalidIdentifierRune(ident string) (rune, bool) {
	for i, r := range ident {
		switch {
		case r == '_' || r == '$':
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return r, true
		}
	}
	return 0, false
}
