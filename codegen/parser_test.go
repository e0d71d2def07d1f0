// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package codegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"

	"github.com/dartnative/jnisig/sigtypes"
)

// loadTestPackage type checks a single source file the way packages.Load would with
// NeedSyntax|NeedTypes|NeedTypesInfo.
func loadTestPackage(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "bridge.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse test source: %v", err)
	}

	info := &types.Info{
		Types: map[ast.Expr]types.TypeAndValue{},
		Defs:  map[*ast.Ident]types.Object{},
		Uses:  map[*ast.Ident]types.Object{},
	}
	conf := types.Config{}
	pkg, err := conf.Check("example.com/bridge", fset, []*ast.File{file}, info)
	if err != nil {
		t.Fatalf("Failed to type check test source: %v", err)
	}

	return &packages.Package{
		ID:        "example.com/bridge",
		Name:      pkg.Name(),
		PkgPath:   pkg.Path(),
		Fset:      fset,
		Syntax:    []*ast.File{file},
		Types:     pkg,
		TypesInfo: info,
	}
}

func lookupNamed(t *testing.T, pkg *packages.Package, name string) *types.Named {
	t.Helper()

	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		t.Fatalf("Type %v not found in test package", name)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		t.Fatalf("Type %v is not a named type", name)
	}
	return named
}

func encodeTestType(t *testing.T, p *Parser, typ types.Type) string {
	t.Helper()

	desc, err := p.GetTypeDescriptor(typ, nil)
	if err != nil {
		t.Fatalf("Failed to get descriptor for %v: %v", typ, err)
	}
	if desc.CodegenInfo == nil {
		t.Errorf("Expected codegen info on descriptor of %v", typ)
	}
	return descriptorString(t, desc)
}

func descriptorString(t *testing.T, desc *sigtypes.TypeDescriptor) string {
	t.Helper()

	str := ""
	for desc.Kind == sigtypes.ArrayKind {
		str += "["
		desc = desc.ElemDesc
	}
	switch desc.Kind {
	case sigtypes.PrimitiveKind:
		str += string(desc.Primitive.Code())
	case sigtypes.ObjectKind:
		str += "L" + desc.ClassName + ";"
	default:
		t.Fatalf("Unexpected descriptor kind %v", desc.Kind)
	}
	return str
}

func TestParser(t *testing.T) {
	parser := NewParser()

	t.Run("BasicTypes", func(t *testing.T) {
		tests := []struct {
			kind     types.BasicKind
			expected string
		}{
			{types.Bool, "Z"},
			{types.Int8, "B"},
			{types.Uint8, "B"},
			{types.Uint16, "C"},
			{types.Int16, "S"},
			{types.Int32, "I"},
			{types.Uint32, "I"},
			{types.Int, "J"},
			{types.Int64, "J"},
			{types.Uint64, "J"},
			{types.Float32, "F"},
			{types.Float64, "D"},
			{types.String, "Ljava.lang.String;"},
		}

		for _, test := range tests {
			if got := encodeTestType(t, parser, types.Typ[test.kind]); got != test.expected {
				t.Errorf("%v: expected %v, got %v", types.Typ[test.kind], test.expected, got)
			}
		}
	})

	t.Run("ArrayTypes", func(t *testing.T) {
		nested := types.NewSlice(types.NewArray(types.Typ[types.Int32], 4))
		if got := encodeTestType(t, parser, nested); got != "[[I" {
			t.Errorf("Expected [[I, got %v", got)
		}

		strSlice := types.NewSlice(types.Typ[types.String])
		if got := encodeTestType(t, parser, strSlice); got != "[Ljava.lang.String;" {
			t.Errorf("Expected [Ljava.lang.String;, got %v", got)
		}
	})

	t.Run("PointerTypes", func(t *testing.T) {
		ptr := types.NewPointer(types.Typ[types.Float64])
		if got := encodeTestType(t, parser, ptr); got != "D" {
			t.Errorf("Expected D, got %v", got)
		}
	})

	t.Run("UnsupportedTypes", func(t *testing.T) {
		unsupported := []types.Type{
			types.Typ[types.Complex128],
			types.Typ[types.Uintptr],
			types.NewMap(types.Typ[types.String], types.Typ[types.Int]),
			types.NewChan(types.SendRecv, types.Typ[types.Int]),
			types.NewStruct(nil, nil),
			types.NewInterfaceType(nil, nil),
			types.Universe.Lookup("error").Type(),
		}

		for _, typ := range unsupported {
			_, err := parser.GetTypeDescriptor(typ, nil)
			if err == nil {
				t.Errorf("Expected error for %v", typ)
				continue
			}
			if !errors.Is(err, sigtypes.ErrUnsupportedDescriptor) {
				t.Errorf("Expected unsupported descriptor error for %v, got %v", typ, err)
			}
		}
	})

	t.Run("TypeHints", func(t *testing.T) {
		desc, err := parser.GetTypeDescriptor(types.Typ[types.Uint16], []sigtypes.JniTypeHint{{Desc: sigtypes.NewPrimitive(sigtypes.Short)}})
		if err != nil {
			t.Fatalf("Failed to get hinted descriptor: %v", err)
		}
		if desc.Primitive != sigtypes.Short {
			t.Errorf("Expected short, got %v", desc.Primitive)
		}

		mapType := types.NewMap(types.Typ[types.String], types.Typ[types.String])
		desc, err = parser.GetTypeDescriptor(mapType, []sigtypes.JniTypeHint{{Desc: sigtypes.NewObject("java.util.Map")}})
		if err != nil {
			t.Fatalf("Failed to get hinted map descriptor: %v", err)
		}
		if desc.ClassName != "java.util.Map" {
			t.Errorf("Expected java.util.Map, got %v", desc.ClassName)
		}

		_, err = parser.GetTypeDescriptor(types.Typ[types.String], []sigtypes.JniTypeHint{{Desc: sigtypes.NewPrimitive(sigtypes.Int)}})
		if err == nil {
			t.Error("Expected error for string hinted as int")
		}

		_, err = parser.GetTypeDescriptor(types.Typ[types.Int32], []sigtypes.JniTypeHint{{Desc: sigtypes.NewPrimitive(sigtypes.Void)}})
		if err == nil {
			t.Error("Expected error for void hint")
		}
	})
}

const parserTestSource = `package bridge

//jnisig:class com.example.Widget
type Widget struct{}

type Gadget struct{}

func (*Gadget) JavaClassName() string { return "com.example.Gadget$Part" }

type Plain struct{}
`

func TestParserClassResolution(t *testing.T) {
	pkg := loadTestPackage(t, parserTestSource)

	parser := NewParser()
	if err := parser.AddPackage(pkg); err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	t.Run("Directive", func(t *testing.T) {
		got := encodeTestType(t, parser, types.NewPointer(lookupNamed(t, pkg, "Widget")))
		if got != "Lcom.example.Widget;" {
			t.Errorf("Expected Lcom.example.Widget;, got %v", got)
		}
	})

	t.Run("JavaClassNameLiteral", func(t *testing.T) {
		got := encodeTestType(t, parser, lookupNamed(t, pkg, "Gadget"))
		if got != "Lcom.example.Gadget$Part;" {
			t.Errorf("Expected Lcom.example.Gadget$Part;, got %v", got)
		}
	})

	t.Run("ClassAlias", func(t *testing.T) {
		plain := lookupNamed(t, pkg, "Plain")
		if _, err := parser.GetTypeDescriptor(plain, nil); err == nil {
			t.Fatal("Expected error for struct without java class")
		}

		aliased := NewParser()
		aliased.AddClassAlias("example.com/bridge.Plain", "com.example.Plain")
		if got := encodeTestType(t, aliased, plain); got != "Lcom.example.Plain;" {
			t.Errorf("Expected Lcom.example.Plain;, got %v", got)
		}
	})

	t.Run("InvalidDirectives", func(t *testing.T) {
		sources := []string{
			"package bridge\n\n//jnisig:class\ntype A struct{}\n",
			"package bridge\n\n//jnisig:class com..A\ntype A struct{}\n",
			"package bridge\n\n//jnisig:unknown\ntype A struct{}\n",
			"package bridge\n\n//jnisig:\ntype A struct{}\n",
			"package bridge\n\n//jnisig:name a.b\ntype A struct{}\n",
			"package bridge\n\n//jnisig:name <new>\ntype A struct{}\n",
		}

		for _, src := range sources {
			if err := NewParser().AddPackage(loadTestPackage(t, src)); err == nil {
				t.Errorf("Expected error for source %q", src)
			}
		}
	})

	t.Run("MissingTypeInfo", func(t *testing.T) {
		if err := NewParser().AddPackage(&packages.Package{PkgPath: "example.com/empty"}); err == nil {
			t.Error("Expected error for package without type info")
		}
	})
}

func TestParserFuncDescriptor(t *testing.T) {
	parser := NewParser()
	errType := types.Universe.Lookup("error").Type()

	newSig := func(params []types.Type, results []types.Type) *types.Signature {
		vars := func(typs []types.Type) *types.Tuple {
			list := make([]*types.Var, len(typs))
			for i, typ := range typs {
				list[i] = types.NewVar(token.NoPos, nil, "", typ)
			}
			return types.NewTuple(list...)
		}
		return types.NewSignatureType(nil, nil, nil, vars(params), vars(results), false)
	}

	tests := []struct {
		name    string
		params  []types.Type
		results []types.Type
		ret     string
		wantErr bool
	}{
		{"NoResults", []types.Type{types.Typ[types.Bool]}, nil, "V", false},
		{"ErrorOnly", nil, []types.Type{errType}, "V", false},
		{"Value", nil, []types.Type{types.Typ[types.Int32]}, "I", false},
		{"ValueAndError", nil, []types.Type{types.Typ[types.String], errType}, "Ljava.lang.String;", false},
		{"SecondNotError", nil, []types.Type{types.Typ[types.Int32], types.Typ[types.Int32]}, "", true},
		{"TooManyResults", nil, []types.Type{types.Typ[types.Int32], types.Typ[types.Int32], errType}, "", true},
		{"BadParam", []types.Type{types.Typ[types.Complex64]}, nil, "", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			method, err := parser.GetFuncDescriptor(newSig(test.params, test.results))
			if test.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(method.Params) != len(test.params) {
				t.Errorf("Expected %v params, got %v", len(test.params), len(method.Params))
			}
			if got := descriptorString(t, method.Return); got != test.ret {
				t.Errorf("Expected return %v, got %v", test.ret, got)
			}
		})
	}
}

func TestParserRecursivePointer(t *testing.T) {
	pkg := loadTestPackage(t, "package bridge\n\ntype P *P\n\ntype A *B\n\ntype B *A\n\ntype S []P\n")

	parser := NewParser()
	if err := parser.AddPackage(pkg); err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	for _, name := range []string{"P", "A", "S"} {
		_, err := parser.GetTypeDescriptor(lookupNamed(t, pkg, name), nil)
		if !errors.Is(err, sigtypes.ErrUnsupportedDescriptor) {
			t.Errorf("Expected unsupported descriptor error for %v, got %v", name, err)
		}
	}

	// finite pointer chains still resolve
	chain := types.NewPointer(types.NewPointer(types.Typ[types.Int32]))
	if got := encodeTestType(t, parser, chain); got != "I" {
		t.Errorf("Expected I, got %v", got)
	}
}
