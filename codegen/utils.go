// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// goTypeName derives a go identifier from the simple name of a java class.
//
// Parameters:
//   - className: The dot separated binary class name
//
// Returns:
//   - string: The go identifier
//
// Example:
//
//	goTypeName("com.example.Outer$Inner")
//	// Result: "OuterInner"
func goTypeName(className string) string {
	simple := className
	if idx := strings.LastIndex(simple, "."); idx >= 0 {
		simple = simple[idx+1:]
	}
	return goIdentifier(simple)
}

// goQualifiedTypeName derives a go identifier from the full class name, used when two bridged
// classes share a simple name.
//
// Example:
//
//	goQualifiedTypeName("com.example.Foo")
//	// Result: "ComExampleFoo"
func goQualifiedTypeName(className string) string {
	return goIdentifier(strings.ReplaceAll(className, ".", "$"))
}

// goMethodName derives a go identifier from a java method name. The JNI names "<init>" and
// "<clinit>" become Init and Clinit.
func goMethodName(javaName string) string {
	return goIdentifier(strings.Trim(javaName, "<>"))
}

func goIdentifier(name string) string {
	var sb strings.Builder
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '$' || r == '_' }) {
		sb.WriteString(upperFirst(part))
	}
	return sb.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
