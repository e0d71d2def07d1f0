// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package manifest

import (
	"errors"
	"testing"

	"github.com/dartnative/jnisig"
	"github.com/dartnative/jnisig/sigtypes"
)

func TestParseDeclaration(t *testing.T) {
	m := &Manifest{
		Aliases: map[string]string{
			"Bitmap": "android.graphics.Bitmap",
		},
	}

	tests := []struct {
		decl      string
		name      string
		static    bool
		signature string
	}{
		{"void run()", "run", false, "()V"},
		{"public static int d(String tag, String msg);", "d", true, "(Ljava/lang/String;Ljava/lang/String;)I"},
		{"static Bitmap decodeByteArray(byte[] data, int offset, int length)", "decodeByteArray", true, "([BII)Landroid/graphics/Bitmap;"},
		{"boolean equals(Object)", "equals", false, "(Ljava/lang/Object;)Z"},
		{"public final native long nativeHandle(final int id)", "nativeHandle", false, "(I)J"},
		{"void main(String args[])", "main", false, "([Ljava/lang/String;)V"},
		{"void printf(String format, Object... args)", "printf", false, "(Ljava/lang/String;[Ljava/lang/Object;)V"},
		{"int[][] matrix( double  x ,  double y )", "matrix", false, "(DD)[[I"},
		{"synchronized java.util.Map$Entry entry(char c, short s, byte b, float f)", "entry", false, "(CSBF)Ljava/util/Map$Entry;"},
		{"void format(String ...args)", "format", false, "([Ljava/lang/String;)V"},
		{"void join(String ... args)", "join", false, "([Ljava/lang/String;)V"},
		{"void concat(String...)", "concat", false, "([Ljava/lang/String;)V"},
		{"void sort(int []values, final long[] keys[])", "sort", false, "([I[[J)V"},
		{"int [] indices(byte[]data)", "indices", false, "([B)[I"},
		{"static void größe(double wert)", "größe", true, "(D)V"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			method, err := m.ParseDeclaration(test.decl)
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", test.decl, err)
			}
			if method.Name != test.name {
				t.Errorf("Expected name %v, got %v", test.name, method.Name)
			}
			if method.Static != test.static {
				t.Errorf("Expected static=%v, got %v", test.static, method.Static)
			}

			sig, err := jnisig.EncodeMethod(method)
			if err != nil {
				t.Fatalf("Failed to encode %q: %v", test.decl, err)
			}
			if sig != test.signature {
				t.Errorf("Expected %v, got %v", test.signature, sig)
			}
		})
	}
}

func TestParseDeclarationErrors(t *testing.T) {
	m := &Manifest{}

	invalid := []string{
		"",
		"void run",
		"run()",
		"public void()",
		"void run(",
		"List<String> names()",
		"void run(int a b)",
		"void run(int, )",
		"void run(Map<String, Object> values)",
		"foo[ run()",
		"void run(int[ a)",
		"void run() throws java.io.IOException",
		"void run(String... args[])",
		"void run(String.. args)",
		"String... run()",
		"void a.b()",
		"void run(int ... ... a)",
	}

	for _, decl := range invalid {
		if _, err := m.ParseDeclaration(decl); err == nil {
			t.Errorf("Expected error for %q", decl)
		}
	}

	_, err := m.ParseDeclaration("void run(void x)")
	if !errors.Is(err, sigtypes.ErrUnsupportedDescriptor) {
		t.Errorf("Expected unsupported descriptor error for void parameter, got %v", err)
	}
}
