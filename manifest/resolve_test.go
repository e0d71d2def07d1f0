// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package manifest

import (
	"strings"
	"testing"

	"github.com/dartnative/jnisig/sigtypes"
)

func TestResolve(t *testing.T) {
	m, err := Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}

	methods, err := m.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve manifest: %v", err)
	}

	expected := []struct {
		class     string
		name      string
		static    bool
		signature string
	}{
		{"android.util.Log", "d", true, "(Ljava/lang/String;Ljava/lang/String;)I"},
		{"android.util.Log", "isLoggable", true, "(Ljava/lang/String;I)Z"},
		{"android.graphics.BitmapFactory", "decodeByteArray", true, "([BII)Landroid/graphics/Bitmap;"},
		{"android.content.Context", "getPackageName", false, "()Ljava/lang/String;"},
		{"android.content.Context", "checkPermissions", false, "([Ljava/lang/String;[[I)V"},
	}

	if len(methods) != len(expected) {
		t.Fatalf("Expected %v methods, got %v", len(expected), len(methods))
	}
	for i, exp := range expected {
		method := methods[i]
		if method.Class != exp.class || method.Name != exp.name || method.Static != exp.static {
			t.Errorf("Method %v: expected %v.%v (static=%v), got %v.%v (static=%v)",
				i, exp.class, exp.name, exp.static, method.Class, method.Name, method.Static)
		}
		if method.Signature != exp.signature {
			t.Errorf("Method %v: expected signature %v, got %v", i, exp.signature, method.Signature)
		}
		if method.Desc == nil || method.Desc.Name != exp.name || method.Desc.Static != exp.static {
			t.Errorf("Method %v: descriptor does not carry name and static flag: %+v", i, method.Desc)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		contains string
	}{
		{
			name:     "InvalidClass",
			manifest: "classes:\n  - name: com/example/Foo\n    methods:\n      - name: run\n",
			contains: "class com/example/Foo",
		},
		{
			name:     "InvalidParam",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: run\n        params: [\"int[\"]\n",
			contains: "a.B.run: parameter 0",
		},
		{
			name:     "VoidParam",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: run\n        params: [void]\n",
			contains: "a.B.run",
		},
		{
			name:     "InvalidReturn",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: run\n        returns: \"void[]\"\n",
			contains: "return type",
		},
		{
			name:     "InvalidSignature",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: run\n        signature: \"(Q)V\"\n",
			contains: "invalid signature",
		},
		{
			name:     "InvalidMethodName",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: 'a\"b'\n",
			contains: "class a.B: method name",
		},
		{
			name:     "QualifiedMethodName",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: c.run\n",
			contains: "invalid character",
		},
		{
			name:     "ConstructorReturn",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: <init>\n        returns: a.B\n",
			contains: "<init> must return void",
		},
		{
			name:     "StaticConstructor",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: <init>\n        static: true\n",
			contains: "constructors cannot be static",
		},
		{
			name:     "StaticInitializerParams",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: <clinit>\n        static: true\n        params: [int]\n",
			contains: "static initializers",
		},
		{
			name:     "SignatureMismatch",
			manifest: "classes:\n  - name: a.B\n    methods:\n      - name: run\n        params: [int]\n        signature: \"(J)V\"\n",
			contains: "does not match declared types (I)V",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := Parse([]byte(test.manifest))
			if err != nil {
				t.Fatalf("Failed to parse manifest: %v", err)
			}
			_, err = m.Resolve()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("Expected error containing %q, got %v", test.contains, err)
			}
		})
	}
}

func TestResolveConstructors(t *testing.T) {
	m, err := Parse([]byte(`
classes:
  - name: java.io.File
    methods:
      - name: <init>
        params: [String]
      - name: <init>
        signature: "(Ljava/io/File;Ljava/lang/String;)V"
      - name: <clinit>
        static: true
`))
	if err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}

	methods, err := m.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve manifest: %v", err)
	}

	expected := []string{"(Ljava/lang/String;)V", "(Ljava/io/File;Ljava/lang/String;)V", "()V"}
	if len(methods) != len(expected) {
		t.Fatalf("Expected %v methods, got %v", len(expected), len(methods))
	}
	for i, sig := range expected {
		if methods[i].Signature != sig {
			t.Errorf("Method %v: expected %v, got %v", i, sig, methods[i].Signature)
		}
	}
}

func TestParseType(t *testing.T) {
	m := &Manifest{
		Aliases: map[string]string{
			"Bitmap": "android.graphics.Bitmap",
			"String": "com.example.String",
		},
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"int", "int"},
		{"Bitmap", "android.graphics.Bitmap"},
		{"Bitmap[][]", "android.graphics.Bitmap[][]"},
		{"Bitmap...", "android.graphics.Bitmap[]"},
		{"Bitmap []", "android.graphics.Bitmap[]"},
		{"String", "com.example.String"},
		{"Integer", "java.lang.Integer"},
		{"Object[]", "java.lang.Object[]"},
		{"java.util.Map$Entry", "java.util.Map$Entry"},
		{" long ", "long"},
	}

	for _, test := range tests {
		desc, err := m.ParseType(test.input)
		if err != nil {
			t.Errorf("ParseType(%q): unexpected error: %v", test.input, err)
			continue
		}
		if desc.JavaName() != test.expected {
			t.Errorf("ParseType(%q): expected %v, got %v", test.input, test.expected, desc.JavaName())
		}
	}

	if _, err := m.ParseType("Map<String, Object>"); err == nil {
		t.Error("Expected error for generic type")
	}

	if desc, err := (&Manifest{}).ParseType("String"); err != nil || desc.ClassName != "java.lang.String" {
		t.Errorf("Expected java.lang.String without aliases, got %v (%v)", desc, err)
	}
}

func TestSplitArraySuffix(t *testing.T) {
	tests := []struct {
		input  string
		base   string
		suffix string
	}{
		{"String", "String", ""},
		{"String[]", "String", "[]"},
		{"String[][]...", "String", "[][]..."},
		{"String ...", "String", "..."},
		{"byte [ ]", "byte", "[ ]"},
	}

	for _, test := range tests {
		base, suffix := splitArraySuffix(test.input)
		if base != test.base || suffix != test.suffix {
			t.Errorf("splitArraySuffix(%q): expected %q %q, got %q %q", test.input, test.base, test.suffix, base, suffix)
		}
	}
}

func TestSameProfile(t *testing.T) {
	str := sigtypes.NewObject("java.lang.String")
	a := sigtypes.NewMethod(sigtypes.NewPrimitive(sigtypes.Int), str)
	b := sigtypes.NewMethod(sigtypes.NewPrimitive(sigtypes.Int), sigtypes.NewObject("java.lang.String"))
	b.Name, b.Static = "other", true

	if !sameProfile(a, b) {
		t.Error("Expected equal profiles regardless of name and static flag")
	}
	if sameProfile(a, sigtypes.NewMethod(sigtypes.NewPrimitive(sigtypes.Long), str)) {
		t.Error("Expected different return types to differ")
	}
	if sameProfile(a, sigtypes.NewMethod(sigtypes.NewPrimitive(sigtypes.Int))) {
		t.Error("Expected different param counts to differ")
	}
}
