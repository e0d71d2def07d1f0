// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package jnisig

import (
	"errors"
	"strings"
	"testing"

	"github.com/dartnative/jnisig/sigtypes"
)

func TestParseTypeSignature(t *testing.T) {
	tests := []struct {
		sig      string
		expected *sigtypes.TypeDescriptor
	}{
		{"Z", sigtypes.NewPrimitive(sigtypes.Boolean)},
		{"V", sigtypes.NewPrimitive(sigtypes.Void)},
		{"Lcom/example/Foo;", sigtypes.NewObject("com.example.Foo")},
		{"[I", sigtypes.NewArray(sigtypes.NewPrimitive(sigtypes.Int))},
		{"[[Ljava/util/Map$Entry;", sigtypes.NewArray(sigtypes.NewArray(sigtypes.NewObject("java.util.Map$Entry")))},
	}

	for _, test := range tests {
		t.Run(test.sig, func(t *testing.T) {
			desc, err := ParseTypeSignature(test.sig)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !desc.Equal(test.expected) {
				t.Errorf("Expected %v, got %v", test.expected.JavaName(), desc.JavaName())
			}

			sig, err := EncodeType(desc)
			if err != nil {
				t.Fatalf("Failed to encode parsed descriptor: %v", err)
			}
			if sig != test.sig {
				t.Errorf("Expected re-encoded %v, got %v", test.sig, sig)
			}
		})
	}
}

func TestParseTypeSignatureInvalid(t *testing.T) {
	invalid := []string{
		"",
		"Q",
		"II",
		"[",
		"[V",
		"Lcom/example/Foo",
		"L;",
		"Lcom.example.Foo;",
		"Lcom//Foo;",
		strings.Repeat("[", sigtypes.MaxArrayDimensions+1) + "I",
	}

	for _, sig := range invalid {
		_, err := ParseTypeSignature(sig)
		if !errors.Is(err, sigtypes.ErrInvalidSignature) {
			t.Errorf("Expected invalid signature error for %q, got %v", sig, err)
		}
	}
}

func TestParseMethodSignature(t *testing.T) {
	tests := []struct {
		sig    string
		params int
		ret    string
	}{
		{"()V", 0, "void"},
		{"(ZLcom/example/Foo;)I", 2, "int"},
		{"([B[[Ljava/lang/String;J)[D", 3, "double[]"},
	}

	for _, test := range tests {
		t.Run(test.sig, func(t *testing.T) {
			method, err := ParseMethodSignature(test.sig)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(method.Params) != test.params {
				t.Errorf("Expected %v params, got %v", test.params, len(method.Params))
			}
			if method.Return.JavaName() != test.ret {
				t.Errorf("Expected return %v, got %v", test.ret, method.Return.JavaName())
			}

			sig, err := EncodeMethod(method)
			if err != nil {
				t.Fatalf("Failed to encode parsed method: %v", err)
			}
			if sig != test.sig {
				t.Errorf("Expected re-encoded %v, got %v", test.sig, sig)
			}
		})
	}
}

func TestParseMethodSignatureInvalid(t *testing.T) {
	invalid := []string{
		"",
		"V",
		"(",
		"(I",
		"()",
		"(V)V",
		"(I)VV",
		"(Lcom/example/Foo)V",
		"(X)V",
	}

	for _, sig := range invalid {
		_, err := ParseMethodSignature(sig)
		if !errors.Is(err, sigtypes.ErrInvalidSignature) {
			t.Errorf("Expected invalid signature error for %q, got %v", sig, err)
		}
	}
}
