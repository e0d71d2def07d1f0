// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package sigtypes

import (
	"reflect"
)

// TypeKind is the variant tag of a TypeDescriptor
type TypeKind uint8

const (
	InvalidKind TypeKind = iota
	PrimitiveKind
	ArrayKind
	ObjectKind
)

func (k TypeKind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "invalid"
	}
}

// Primitive identifies one of the JVM primitive types (including void)
type Primitive uint8

const (
	InvalidPrimitive Primitive = iota
	Boolean
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
	Void
)

var primitiveNames = [...]string{
	InvalidPrimitive: "invalid",
	Boolean:          "boolean",
	Byte:             "byte",
	Char:             "char",
	Short:            "short",
	Int:              "int",
	Long:             "long",
	Float:            "float",
	Double:           "double",
	Void:             "void",
}

var primitiveCodes = [...]byte{
	Boolean: 'Z',
	Byte:    'B',
	Char:    'C',
	Short:   'S',
	Int:     'I',
	Long:    'J',
	Float:   'F',
	Double:  'D',
	Void:    'V',
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "invalid"
}

// Code returns the single character signature code of the primitive, or 0 for unknown values.
func (p Primitive) Code() byte {
	if p == InvalidPrimitive || int(p) >= len(primitiveCodes) {
		return 0
	}
	return primitiveCodes[p]
}

// IsValid reports whether p is one of the known primitives.
func (p Primitive) IsValid() bool {
	return p.Code() != 0
}

// PrimitiveByName looks up a primitive by its java keyword (e.g. "int").
func PrimitiveByName(name string) (Primitive, bool) {
	for p, n := range primitiveNames {
		if p != int(InvalidPrimitive) && n == name {
			return Primitive(p), true
		}
	}
	return InvalidPrimitive, false
}

// PrimitiveByCode looks up a primitive by its signature code (e.g. 'I').
func PrimitiveByCode(code byte) (Primitive, bool) {
	for p, c := range primitiveCodes {
		if c != 0 && c == code {
			return Primitive(p), true
		}
	}
	return InvalidPrimitive, false
}

// TypeDescriptor describes a JVM type. Exactly one of the variants is set, selected by Kind:
// Primitive for PrimitiveKind, ElemDesc for ArrayKind and ClassName for ObjectKind.
type TypeDescriptor struct {
	Type        reflect.Type    `json:"-"`               // Go type the descriptor was built from (nil for hand built descriptors)
	CodegenInfo *any            `json:"-"`               // Codegen information
	Kind        TypeKind        `json:"kind"`            // Variant tag
	Primitive   Primitive       `json:"prim,omitempty"`  // For primitives
	ElemDesc    *TypeDescriptor `json:"elem,omitempty"`  // For arrays
	ClassName   string          `json:"class,omitempty"` // For objects (binary name, dot separated)
}

// MethodDescriptor describes a method profile. Name and Static are bridge metadata and do not
// take part in the signature.
type MethodDescriptor struct {
	Name   string            `json:"name,omitempty"`
	Static bool              `json:"static,omitempty"`
	Params []*TypeDescriptor `json:"params"`
	Return *TypeDescriptor   `json:"return"`
}

// NewPrimitive returns a descriptor for the given primitive.
func NewPrimitive(p Primitive) *TypeDescriptor {
	return &TypeDescriptor{Kind: PrimitiveKind, Primitive: p}
}

// NewArray returns a descriptor for an array of elem.
func NewArray(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{Kind: ArrayKind, ElemDesc: elem}
}

// NewObject returns a descriptor for the class with the given dot separated name.
func NewObject(className string) *TypeDescriptor {
	return &TypeDescriptor{Kind: ObjectKind, ClassName: className}
}

// NewMethod returns a method descriptor with the given return and parameter types.
func NewMethod(ret *TypeDescriptor, params ...*TypeDescriptor) *MethodDescriptor {
	if params == nil {
		params = []*TypeDescriptor{}
	}
	return &MethodDescriptor{Params: params, Return: ret}
}

// Dimensions returns the array depth of the descriptor and the innermost element descriptor.
func (d *TypeDescriptor) Dimensions() (int, *TypeDescriptor) {
	dims := 0
	for d != nil && d.Kind == ArrayKind {
		dims++
		d = d.ElemDesc
	}
	return dims, d
}

// JavaName renders the descriptor in java source form, e.g. "int[][]" or "java.lang.String".
func (d *TypeDescriptor) JavaName() string {
	dims, inner := d.Dimensions()
	name := "?"
	if inner != nil {
		switch inner.Kind {
		case PrimitiveKind:
			name = inner.Primitive.String()
		case ObjectKind:
			name = inner.ClassName
		}
	}
	for i := 0; i < dims; i++ {
		name += "[]"
	}
	return name
}

// Equal reports whether two descriptors describe the same JVM type.
func (d *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Kind != o.Kind {
		return false
	}
	switch d.Kind {
	case PrimitiveKind:
		return d.Primitive == o.Primitive
	case ArrayKind:
		return d.ElemDesc.Equal(o.ElemDesc)
	case ObjectKind:
		return d.ClassName == o.ClassName
	}
	return false
}
