// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package sigtypes

import (
	"fmt"
	"reflect"
	"strings"
)

// JniTypeHint overrides the descriptor derived from a go type, parsed from a `jni` tag.
type JniTypeHint struct {
	Desc *TypeDescriptor
}

// JniFieldTag is the parsed form of a `jni:"<java type>[,return]"` struct tag.
type JniFieldTag struct {
	Skip      bool
	IsReturn  bool
	TypeHints []JniTypeHint
}

// ParseJniTag parses the `jni` tag of a struct field.
//
// Supported forms:
//   - `jni:"-"`: field is ignored
//   - `jni:"char"`, `jni:"java.lang.CharSequence"`, `jni:"long[]"`: type override
//   - `jni:",return"` or `jni:"int,return"`: field describes the return type
func ParseJniTag(field *reflect.StructField) (*JniFieldTag, error) {
	return ParseJniTagString(field.Name, field.Tag)
}

// ParseJniTagString parses the `jni` entry of a raw struct tag. It is used by the code generator,
// which only sees struct tags as strings.
func ParseJniTagString(fieldName string, structTag reflect.StructTag) (*JniFieldTag, error) {
	tag := &JniFieldTag{}

	tagStr, ok := structTag.Lookup("jni")
	if !ok {
		return tag, nil
	}
	if tagStr == "-" {
		tag.Skip = true
		return tag, nil
	}

	parts := strings.Split(tagStr, ",")
	if typeName := strings.TrimSpace(parts[0]); typeName != "" {
		desc, err := ParseJavaType(typeName)
		if err != nil {
			return nil, fmt.Errorf("invalid jni tag for '%v' field: %w", fieldName, err)
		}
		tag.TypeHints = []JniTypeHint{{Desc: desc}}
	}

	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "return":
			tag.IsReturn = true
		case "":
		default:
			return nil, fmt.Errorf("invalid jni tag option for '%v' field: %v", fieldName, opt)
		}
	}

	return tag, nil
}
