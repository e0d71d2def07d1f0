// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package manifest

import (
	"fmt"
	"strings"

	"github.com/dartnative/jnisig"
	"github.com/dartnative/jnisig/sigtypes"
)

// BridgeMethod is a manifest method with its resolved signature.
type BridgeMethod struct {
	Class     string
	Name      string
	Static    bool
	Signature string
	Desc      *sigtypes.MethodDescriptor
}

// Resolve computes the signatures of all methods in the manifest, in manifest order.
func (m *Manifest) Resolve() ([]BridgeMethod, error) {
	methods := []BridgeMethod{}

	for _, class := range m.Classes {
		if err := sigtypes.ValidateClassName(class.Name); err != nil {
			return nil, fmt.Errorf("class %v: %w", class.Name, err)
		}

		for _, method := range class.Methods {
			if err := sigtypes.ValidateMethodName(method.Name); err != nil {
				return nil, fmt.Errorf("class %v: %w", class.Name, err)
			}

			desc, err := m.resolveMethod(&method)
			if err != nil {
				return nil, fmt.Errorf("%v.%v: %w", class.Name, method.Name, err)
			}
			if err := checkSpecialMethod(desc); err != nil {
				return nil, fmt.Errorf("%v.%v: %w", class.Name, method.Name, err)
			}

			sig, err := jnisig.EncodeMethod(desc)
			if err != nil {
				return nil, fmt.Errorf("%v.%v: %w", class.Name, method.Name, err)
			}

			methods = append(methods, BridgeMethod{
				Class:     class.Name,
				Name:      method.Name,
				Static:    method.Static,
				Signature: sig,
				Desc:      desc,
			})
		}
	}

	return methods, nil
}

// checkSpecialMethod enforces the JNI shape of constructors and static initializers.
func checkSpecialMethod(desc *sigtypes.MethodDescriptor) error {
	switch desc.Name {
	case sigtypes.ConstructorName:
		if desc.Static {
			return fmt.Errorf("constructors cannot be static")
		}
	case sigtypes.StaticInitializerName:
		if !desc.Static || len(desc.Params) != 0 {
			return fmt.Errorf("static initializers must be static and take no parameters")
		}
	default:
		return nil
	}
	if desc.Return.Kind != sigtypes.PrimitiveKind || desc.Return.Primitive != sigtypes.Void {
		return fmt.Errorf("%v must return void", desc.Name)
	}
	return nil
}

func (m *Manifest) resolveMethod(method *Method) (*sigtypes.MethodDescriptor, error) {
	var declared *sigtypes.MethodDescriptor
	if method.Signature != "" {
		parsed, err := jnisig.ParseMethodSignature(method.Signature)
		if err != nil {
			return nil, err
		}
		declared = parsed
		if len(method.Params) == 0 && method.Returns == "" {
			declared.Name, declared.Static = method.Name, method.Static
			return declared, nil
		}
	}

	desc := &sigtypes.MethodDescriptor{
		Name:   method.Name,
		Static: method.Static,
		Params: make([]*sigtypes.TypeDescriptor, 0, len(method.Params)),
	}

	for i, param := range method.Params {
		paramDesc, err := m.ParseType(param)
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", i, err)
		}
		desc.Params = append(desc.Params, paramDesc)
	}

	returns := method.Returns
	if returns == "" {
		returns = "void"
	}
	retDesc, err := m.ParseType(returns)
	if err != nil {
		return nil, fmt.Errorf("return type: %w", err)
	}
	desc.Return = retDesc

	if declared != nil && !sameProfile(declared, desc) {
		want, _ := jnisig.EncodeMethod(desc)
		return nil, fmt.Errorf("signature %v does not match declared types %v", method.Signature, want)
	}

	return desc, nil
}

// javaLangAliases are the java.lang classes java source refers to without import.
var javaLangAliases = map[string]string{
	"Boolean":      "java.lang.Boolean",
	"Byte":         "java.lang.Byte",
	"Character":    "java.lang.Character",
	"CharSequence": "java.lang.CharSequence",
	"Class":        "java.lang.Class",
	"Double":       "java.lang.Double",
	"Float":        "java.lang.Float",
	"Integer":      "java.lang.Integer",
	"Long":         "java.lang.Long",
	"Number":       "java.lang.Number",
	"Object":       "java.lang.Object",
	"Runnable":     "java.lang.Runnable",
	"Short":        "java.lang.Short",
	"String":       "java.lang.String",
	"Throwable":    "java.lang.Throwable",
}

// ParseType parses a java source type name, applying the manifest aliases to its element type.
// Simple java.lang class names resolve without alias unless the manifest overrides them.
func (m *Manifest) ParseType(name string) (*sigtypes.TypeDescriptor, error) {
	base, suffix := splitArraySuffix(strings.TrimSpace(name))
	if alias, ok := m.Aliases[base]; ok {
		name = alias + suffix
	} else if alias, ok := javaLangAliases[base]; ok {
		name = alias + suffix
	}

	return sigtypes.ParseJavaType(name)
}

// splitArraySuffix splits "String[][]" into "String" and "[][]", and "String..." into "String" and "...".
func splitArraySuffix(name string) (string, string) {
	base, suffix := name, ""
	if strings.HasSuffix(base, "...") {
		base, suffix = strings.TrimSuffix(base, "..."), "..."
	}
	if i := strings.Index(base, "["); i >= 0 {
		base, suffix = base[:i], base[i:]+suffix
	}
	return strings.TrimSpace(base), suffix
}

func sameProfile(a, b *sigtypes.MethodDescriptor) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !a.Params[i].Equal(b.Params[i]) {
			return false
		}
	}
	return a.Return.Equal(b.Return)
}
