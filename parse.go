// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package jnisig

import (
	"fmt"
	"strings"

	"github.com/dartnative/jnisig/sigtypes"
)

// ParseTypeSignature decodes a single type signature like "[Ljava/lang/String;" into a descriptor.
func ParseTypeSignature(sig string) (*sigtypes.TypeDescriptor, error) {
	offset := 0
	desc, err := parseType(sig, &offset)
	if err != nil {
		return nil, err
	}
	if offset != len(sig) {
		return nil, fmt.Errorf("%w: trailing data after type at offset %v in '%v'", sigtypes.ErrInvalidSignature, offset, sig)
	}
	return desc, nil
}

// ParseMethodSignature decodes a method signature like "(ZLcom/example/Foo;)I" into a descriptor.
func ParseMethodSignature(sig string) (*sigtypes.MethodDescriptor, error) {
	if !strings.HasPrefix(sig, "(") {
		return nil, fmt.Errorf("%w: method signature must start with '(': '%v'", sigtypes.ErrInvalidSignature, sig)
	}

	method := &sigtypes.MethodDescriptor{
		Params: []*sigtypes.TypeDescriptor{},
	}

	offset := 1
	for {
		if offset >= len(sig) {
			return nil, fmt.Errorf("%w: unterminated parameter list in '%v'", sigtypes.ErrInvalidSignature, sig)
		}
		if sig[offset] == ')' {
			offset++
			break
		}

		param, err := parseType(sig, &offset)
		if err != nil {
			return nil, err
		}
		if param.Kind == sigtypes.PrimitiveKind && param.Primitive == sigtypes.Void {
			return nil, fmt.Errorf("%w: void parameter at index %v in '%v'", sigtypes.ErrInvalidSignature, len(method.Params), sig)
		}
		method.Params = append(method.Params, param)
	}

	ret, err := parseType(sig, &offset)
	if err != nil {
		return nil, err
	}
	if offset != len(sig) {
		return nil, fmt.Errorf("%w: trailing data after return type at offset %v in '%v'", sigtypes.ErrInvalidSignature, offset, sig)
	}
	method.Return = ret

	return method, nil
}

// parseType returns the type for the signature starting at offset and advances offset past it.
func parseType(sig string, offset *int) (*sigtypes.TypeDescriptor, error) {
	if *offset >= len(sig) {
		return nil, fmt.Errorf("%w: unexpected end of '%v'", sigtypes.ErrInvalidSignature, sig)
	}

	tag := sig[*offset]
	*offset++

	switch tag {
	case 'L':
		end := strings.IndexByte(sig[*offset:], ';')
		if end < 0 {
			return nil, fmt.Errorf("%w: class name missing terminating ';' in '%v'", sigtypes.ErrInvalidSignature, sig)
		}
		internalName := sig[*offset : *offset+end]
		*offset += end + 1

		if strings.Contains(internalName, ".") {
			return nil, fmt.Errorf("%w: class name '%v' must use '/' separators", sigtypes.ErrInvalidSignature, internalName)
		}
		className := strings.ReplaceAll(internalName, "/", ".")
		if err := sigtypes.ValidateClassName(className); err != nil {
			return nil, fmt.Errorf("%w: %v", sigtypes.ErrInvalidSignature, err)
		}
		return sigtypes.NewObject(className), nil
	case '[':
		dims := 1
		for *offset < len(sig) && sig[*offset] == '[' {
			dims++
			*offset++
		}
		if dims > sigtypes.MaxArrayDimensions {
			return nil, fmt.Errorf("%w: more than %v array dimensions in '%v'", sigtypes.ErrInvalidSignature, sigtypes.MaxArrayDimensions, sig)
		}

		elem, err := parseType(sig, offset)
		if err != nil {
			return nil, err
		}
		if elem.Kind == sigtypes.PrimitiveKind && elem.Primitive == sigtypes.Void {
			return nil, fmt.Errorf("%w: void array element in '%v'", sigtypes.ErrInvalidSignature, sig)
		}
		for i := 0; i < dims; i++ {
			elem = sigtypes.NewArray(elem)
		}
		return elem, nil
	default:
		prim, ok := sigtypes.PrimitiveByCode(tag)
		if !ok {
			return nil, fmt.Errorf("%w: unknown signature type tag '%c' in '%v'", sigtypes.ErrInvalidSignature, tag, sig)
		}
		return sigtypes.NewPrimitive(prim), nil
	}
}
