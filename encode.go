// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package jnisig

import (
	"strings"

	"github.com/dartnative/jnisig/sigtypes"
)

// EncodeType encodes a type descriptor into its JVM signature fragment.
//
// Primitives encode to their single character code (boolean -> Z, int -> I, void -> V, ...),
// arrays to '[' followed by the encoding of their element type and objects to
// 'L' + class name with '.' replaced by '/' + ';'.
//
// Any descriptor that does not match exactly one of these variants is rejected with an
// error wrapping sigtypes.ErrUnsupportedDescriptor.
//
// Example:
//
//	sig, _ := jnisig.EncodeType(sigtypes.NewArray(sigtypes.NewObject("com.example.Foo")))
//	// sig == "[Lcom/example/Foo;"
func EncodeType(desc *sigtypes.TypeDescriptor) (string, error) {
	var sb strings.Builder
	if err := appendType(&sb, desc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodeMethod encodes a method descriptor into its JVM signature:
// "(" + encoded parameters in declaration order + ")" + encoded return type.
//
// Example:
//
//	m := sigtypes.NewMethod(
//	    sigtypes.NewPrimitive(sigtypes.Int),
//	    sigtypes.NewPrimitive(sigtypes.Boolean),
//	    sigtypes.NewObject("com.example.Foo"),
//	)
//	sig, _ := jnisig.EncodeMethod(m)
//	// sig == "(ZLcom/example/Foo;)I"
func EncodeMethod(method *sigtypes.MethodDescriptor) (string, error) {
	if method == nil {
		return "", sigtypes.Unsupported(nil, "nil method descriptor")
	}

	var sb strings.Builder
	sb.WriteByte('(')
	for i, param := range method.Params {
		if param != nil && param.Kind == sigtypes.PrimitiveKind && param.Primitive == sigtypes.Void {
			return "", sigtypes.Unsupported(param, "parameter %v of %v is void", i, methodName(method))
		}
		if err := appendType(&sb, param); err != nil {
			return "", err
		}
	}
	sb.WriteByte(')')

	if method.Return == nil {
		return "", sigtypes.Unsupported(nil, "method %v has no return descriptor", methodName(method))
	}
	if err := appendType(&sb, method.Return); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// MustEncodeType is like EncodeType but panics on unsupported descriptors.
func MustEncodeType(desc *sigtypes.TypeDescriptor) string {
	sig, err := EncodeType(desc)
	if err != nil {
		panic(err)
	}
	return sig
}

// MustEncodeMethod is like EncodeMethod but panics on unsupported descriptors.
func MustEncodeMethod(method *sigtypes.MethodDescriptor) string {
	sig, err := EncodeMethod(method)
	if err != nil {
		panic(err)
	}
	return sig
}

func appendType(sb *strings.Builder, desc *sigtypes.TypeDescriptor) error {
	dims := 0
	for desc != nil && desc.Kind == sigtypes.ArrayKind {
		if desc.ElemDesc == nil {
			return sigtypes.Unsupported(desc, "array without element descriptor")
		}
		dims++
		if dims > sigtypes.MaxArrayDimensions {
			return sigtypes.Unsupported(desc, "more than %v array dimensions", sigtypes.MaxArrayDimensions)
		}
		desc = desc.ElemDesc
	}

	if desc == nil {
		return sigtypes.Unsupported(nil, "nil type descriptor")
	}

	switch desc.Kind {
	case sigtypes.PrimitiveKind:
		code := desc.Primitive.Code()
		if code == 0 {
			return sigtypes.Unsupported(desc, "unknown primitive %d", desc.Primitive)
		}
		if desc.Primitive == sigtypes.Void && dims > 0 {
			return sigtypes.Unsupported(desc, "void cannot be used as array element")
		}
		writeDims(sb, dims)
		sb.WriteByte(code)
	case sigtypes.ObjectKind:
		if err := sigtypes.ValidateClassName(desc.ClassName); err != nil {
			return sigtypes.Unsupported(desc, "%v", err)
		}
		writeDims(sb, dims)
		sb.WriteByte('L')
		sb.WriteString(strings.ReplaceAll(desc.ClassName, ".", "/"))
		sb.WriteByte(';')
	default:
		return sigtypes.Unsupported(desc, "unknown descriptor kind %d", desc.Kind)
	}

	return nil
}

func writeDims(sb *strings.Builder, dims int) {
	for i := 0; i < dims; i++ {
		sb.WriteByte('[')
	}
}

func methodName(method *sigtypes.MethodDescriptor) string {
	if method.Name == "" {
		return "<anonymous>"
	}
	return method.Name
}
