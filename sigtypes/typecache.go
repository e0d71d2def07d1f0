// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package sigtypes

import (
	"fmt"
	"reflect"
	"sync"
)

// JavaClassNamer is implemented by go types that stand in for a java class.
type JavaClassNamer interface {
	JavaClassName() string
}

// ClassResolver maps go types to java class names registered outside of the type itself.
type ClassResolver interface {
	ResolveClassName(t reflect.Type) (string, bool)
}

var (
	javaClassNamerType = reflect.TypeOf((*JavaClassNamer)(nil)).Elem()
	errorType          = reflect.TypeOf((*error)(nil)).Elem()
)

// TypeCache manages cached type descriptors
type TypeCache struct {
	classes     ClassResolver
	mutex       sync.RWMutex
	descriptors map[reflect.Type]*TypeDescriptor
}

// NewTypeCache creates a new type cache. classes may be nil.
func NewTypeCache(classes ClassResolver) *TypeCache {
	return &TypeCache{
		classes:     classes,
		descriptors: make(map[reflect.Type]*TypeDescriptor),
	}
}

// GetTypeDescriptor returns a cached type descriptor for the given go type, computing it if necessary.
//
// The go type is mapped to the JVM type the native bridge expects for it:
//   - bool -> boolean, int8/uint8 -> byte, uint16 -> char, int16 -> short
//   - int32/uint32 -> int, int/int64/uint/uint64 -> long
//   - float32 -> float, float64 -> double, string -> java.lang.String
//   - slices and arrays -> arrays of the element type, pointers are dereferenced
//   - types implementing JavaClassNamer or known to the ClassResolver -> objects
//
// Parameters:
//   - t: The reflect.Type for which to obtain a descriptor
//   - typeHints: Optional type hints from `jni` tags. Pass nil for top-level types.
//
// Returns:
//   - *TypeDescriptor: The type descriptor
//   - error: An UnsupportedDescriptorError if the type has no JVM representation
//
// Type descriptors are only cached when no type hints are provided.
//
// Example:
//
//	desc, err := cache.GetTypeDescriptor(reflect.TypeOf([]int32{}), nil)
//	if err != nil {
//	    log.Fatal("Failed to get type descriptor:", err)
//	}
//	fmt.Println(desc.JavaName()) // int[]
func (tc *TypeCache) GetTypeDescriptor(t reflect.Type, typeHints []JniTypeHint) (*TypeDescriptor, error) {
	if t == nil {
		return nil, Unsupported(nil, "nil type")
	}

	if len(typeHints) == 0 {
		tc.mutex.RLock()
		if desc, exists := tc.descriptors[t]; exists {
			tc.mutex.RUnlock()
			return desc, nil
		}
		tc.mutex.RUnlock()
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	return tc.getTypeDescriptor(t, typeHints, 0)
}

func (tc *TypeCache) getTypeDescriptor(t reflect.Type, typeHints []JniTypeHint, depth int) (*TypeDescriptor, error) {
	cacheable := len(typeHints) == 0

	if desc, exists := tc.descriptors[t]; exists && cacheable {
		return desc, nil
	}

	var hint *TypeDescriptor
	if len(typeHints) > 0 {
		hint = typeHints[0].Desc
	}

	desc, err := tc.buildTypeDescriptor(t, hint, depth)
	if err != nil {
		return nil, err
	}

	if cacheable {
		tc.descriptors[t] = desc
	}

	return desc, nil
}

func (tc *TypeCache) buildTypeDescriptor(t reflect.Type, hint *TypeDescriptor, depth int) (*TypeDescriptor, error) {
	if depth > MaxArrayDimensions {
		return nil, Unsupported(nil, "type %v exceeds %v array dimensions", t, MaxArrayDimensions)
	}

	if hint != nil {
		return tc.buildHintedDescriptor(t, hint, depth)
	}

	if className, ok := tc.resolveClassName(t); ok {
		if err := ValidateClassName(className); err != nil {
			return nil, Unsupported(nil, "java class of %v: %v", t, err)
		}
		return &TypeDescriptor{Type: t, Kind: ObjectKind, ClassName: className}, nil
	}

	desc := &TypeDescriptor{Type: t}

	switch t.Kind() {
	case reflect.Bool:
		desc.Kind, desc.Primitive = PrimitiveKind, Boolean
	case reflect.Int8, reflect.Uint8:
		desc.Kind, desc.Primitive = PrimitiveKind, Byte
	case reflect.Uint16:
		desc.Kind, desc.Primitive = PrimitiveKind, Char
	case reflect.Int16:
		desc.Kind, desc.Primitive = PrimitiveKind, Short
	case reflect.Int32, reflect.Uint32:
		desc.Kind, desc.Primitive = PrimitiveKind, Int
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		desc.Kind, desc.Primitive = PrimitiveKind, Long
	case reflect.Float32:
		desc.Kind, desc.Primitive = PrimitiveKind, Float
	case reflect.Float64:
		desc.Kind, desc.Primitive = PrimitiveKind, Double
	case reflect.String:
		desc.Kind, desc.ClassName = ObjectKind, "java.lang.String"
	case reflect.Slice, reflect.Array:
		elemDesc, err := tc.getTypeDescriptor(t.Elem(), nil, depth+1)
		if err != nil {
			return nil, err
		}
		desc.Kind, desc.ElemDesc = ArrayKind, elemDesc
	case reflect.Ptr:
		if pointerCycle(t) {
			return nil, Unsupported(nil, "recursive pointer type %v", t)
		}
		elemDesc, err := tc.getTypeDescriptor(t.Elem(), nil, depth)
		if err != nil {
			return nil, err
		}
		copied := *elemDesc
		copied.Type = t
		desc = &copied
	case reflect.Struct:
		return nil, Unsupported(nil, "struct %v has no java class (implement JavaClassName or register a class alias)", t)
	case reflect.Interface:
		return nil, Unsupported(nil, "interface %v has no java class (register a class alias)", t)
	case reflect.Complex64, reflect.Complex128:
		return nil, Unsupported(nil, "complex numbers have no jvm representation")
	case reflect.Map:
		return nil, Unsupported(nil, "maps are not supported (use a jni tag to map to a java class)")
	case reflect.Chan:
		return nil, Unsupported(nil, "channels are not supported")
	case reflect.Func:
		return nil, Unsupported(nil, "functions are not supported as values")
	case reflect.UnsafePointer, reflect.Uintptr:
		return nil, Unsupported(nil, "unsafe pointers are not supported")
	default:
		return nil, Unsupported(nil, "unsupported type kind: %v", t.Kind())
	}

	return desc, nil
}

// buildHintedDescriptor builds the descriptor selected by a jni tag and checks that the go type can carry it.
func (tc *TypeCache) buildHintedDescriptor(t reflect.Type, hint *TypeDescriptor, depth int) (*TypeDescriptor, error) {
	desc := &TypeDescriptor{Type: t, Kind: hint.Kind}
	kind := t.Kind()
	if kind == reflect.Ptr {
		kind = t.Elem().Kind()
	}

	switch hint.Kind {
	case PrimitiveKind:
		desc.Primitive = hint.Primitive
		switch hint.Primitive {
		case Boolean:
			if kind != reflect.Bool {
				return nil, Unsupported(hint, "boolean can only be represented by bool types, got %v", kind)
			}
		case Byte, Char, Short, Int, Long:
			if !isIntegerKind(kind) {
				return nil, Unsupported(hint, "%v can only be represented by integer types, got %v", hint.Primitive, kind)
			}
		case Float, Double:
			if kind != reflect.Float32 && kind != reflect.Float64 {
				return nil, Unsupported(hint, "%v can only be represented by float types, got %v", hint.Primitive, kind)
			}
		case Void:
			return nil, Unsupported(hint, "void cannot be used as a value type")
		default:
			return nil, Unsupported(hint, "unknown primitive %d", hint.Primitive)
		}
	case ArrayKind:
		if kind != reflect.Slice && kind != reflect.Array {
			return nil, Unsupported(hint, "array can only be represented by slice or array types, got %v", kind)
		}
		if hint.ElemDesc == nil {
			return nil, Unsupported(hint, "array without element type")
		}
		elemType := t.Elem()
		if t.Kind() == reflect.Ptr {
			elemType = elemType.Elem()
		}
		elemDesc, err := tc.getTypeDescriptor(elemType, []JniTypeHint{{Desc: hint.ElemDesc}}, depth+1)
		if err != nil {
			return nil, err
		}
		desc.ElemDesc = elemDesc
	case ObjectKind:
		switch kind {
		case reflect.String, reflect.Struct, reflect.Interface, reflect.Map, reflect.Slice, reflect.Array:
		default:
			return nil, Unsupported(hint, "class %v can not be represented by %v types", hint.ClassName, kind)
		}
		if err := ValidateClassName(hint.ClassName); err != nil {
			return nil, Unsupported(hint, "%v", err)
		}
		desc.ClassName = hint.ClassName
	default:
		return nil, Unsupported(hint, "unknown descriptor kind %d", hint.Kind)
	}

	return desc, nil
}

func (tc *TypeCache) resolveClassName(t reflect.Type) (string, bool) {
	if tc.classes != nil {
		if name, ok := tc.classes.ResolveClassName(t); ok {
			return name, true
		}
	}

	switch t.Kind() {
	case reflect.Interface, reflect.Ptr:
		return "", false
	}

	if t.Implements(javaClassNamerType) {
		return reflect.New(t).Elem().Interface().(JavaClassNamer).JavaClassName(), true
	}
	if reflect.PointerTo(t).Implements(javaClassNamerType) {
		return reflect.New(t).Interface().(JavaClassNamer).JavaClassName(), true
	}

	return "", false
}

// pointerCycle reports whether the pointer chain starting at t leads back into itself,
// e.g. for "type P *P".
func pointerCycle(t reflect.Type) bool {
	seen := map[reflect.Type]bool{}
	for t.Kind() == reflect.Ptr {
		if seen[t] || len(seen) > MaxArrayDimensions {
			return true
		}
		seen[t] = true
		t = t.Elem()
	}
	return false
}

func isIntegerKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// GetFuncDescriptor builds a method descriptor from a go func type.
//
// The first skipIn parameters are ignored (use 1 for method values obtained from a concrete
// type, where the receiver is the first parameter). Variadic parameters become arrays.
// Results map as follows: none -> void, (T) -> T, (error) -> void, (T, error) -> T. The error
// result is the channel for java exceptions and does not take part in the signature.
func (tc *TypeCache) GetFuncDescriptor(fnType reflect.Type, skipIn int) (*MethodDescriptor, error) {
	if fnType == nil || fnType.Kind() != reflect.Func {
		return nil, Unsupported(nil, "%v is not a func type", fnType)
	}
	if skipIn > fnType.NumIn() {
		return nil, Unsupported(nil, "func %v has less than %v parameters", fnType, skipIn)
	}

	method := &MethodDescriptor{
		Params: make([]*TypeDescriptor, 0, fnType.NumIn()-skipIn),
	}

	for i := skipIn; i < fnType.NumIn(); i++ {
		paramDesc, err := tc.GetTypeDescriptor(fnType.In(i), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to map parameter %v of %v: %w", i-skipIn, fnType, err)
		}
		method.Params = append(method.Params, paramDesc)
	}

	var retType reflect.Type
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			retType = fnType.Out(0)
		}
	case 2:
		if fnType.Out(1) != errorType {
			return nil, Unsupported(nil, "second result of %v must be error", fnType)
		}
		retType = fnType.Out(0)
	default:
		return nil, Unsupported(nil, "func %v has %v results, max is 2", fnType, fnType.NumOut())
	}

	if retType == nil {
		method.Return = NewPrimitive(Void)
	} else {
		retDesc, err := tc.GetTypeDescriptor(retType, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to map result of %v: %w", fnType, err)
		}
		method.Return = retDesc
	}

	return method, nil
}

// GetStructMethodDescriptor builds a method descriptor from a call struct: every exported field is a
// parameter in declaration order, a field tagged `jni:",return"` is the return type (void if absent).
//
// Example:
//
//	type OpenFile struct {
//	    Path   string
//	    Flags  uint16 `jni:"char"`
//	    Result bool   `jni:",return"`
//	}
//
//	desc, _ := cache.GetStructMethodDescriptor(reflect.TypeOf(OpenFile{}))
//	// (Ljava/lang/String;C)Z
func (tc *TypeCache) GetStructMethodDescriptor(t reflect.Type) (*MethodDescriptor, error) {
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, Unsupported(nil, "call descriptor must be a struct, got %v", t)
	}

	method := &MethodDescriptor{
		Name:   t.Name(),
		Params: make([]*TypeDescriptor, 0, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, err := ParseJniTag(&field)
		if err != nil {
			return nil, err
		}
		if tag.Skip {
			continue
		}

		fieldDesc, err := tc.GetTypeDescriptor(field.Type, tag.TypeHints)
		if err != nil {
			return nil, fmt.Errorf("failed to map field %v of %v: %w", field.Name, t, err)
		}

		if tag.IsReturn {
			if method.Return != nil {
				return nil, fmt.Errorf("call descriptor %v has more than one return field", t)
			}
			method.Return = fieldDesc
		} else {
			method.Params = append(method.Params, fieldDesc)
		}
	}

	if method.Return == nil {
		method.Return = NewPrimitive(Void)
	}

	return method, nil
}

// GetAllTypes returns all types currently held in the cache.
func (tc *TypeCache) GetAllTypes() []reflect.Type {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	types := make([]reflect.Type, 0, len(tc.descriptors))
	for t := range tc.descriptors {
		types = append(types, t)
	}

	return types
}

// RemoveType removes a specific type from the cache.
func (tc *TypeCache) RemoveType(t reflect.Type) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	delete(tc.descriptors, t)
}

// RemoveAllTypes clears all cached type descriptors, e.g. after class aliases changed.
func (tc *TypeCache) RemoveAllTypes() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.descriptors = make(map[reflect.Type]*TypeDescriptor)
}
