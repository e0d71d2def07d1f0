// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package codegen

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/dartnative/jnisig/sigtypes"
)

const directivePrefix = "//jnisig:"

type CodegenInfo struct {
	Type types.Type
}

// directives holds the //jnisig: comments attached to a type or method declaration.
type directives struct {
	Class  string
	Name   string
	Static bool
	Skip   bool
}

// Parser builds signature descriptors from go/types information, mirroring the reflection
// based sigtypes.TypeCache for code that is not compiled into the generator.
type Parser struct {
	classAliases map[string]string
	directives   map[types.Object]*directives
	classNames   map[types.Object]string
}

func NewParser() *Parser {
	return &Parser{
		classAliases: map[string]string{},
		directives:   map[types.Object]*directives{},
		classNames:   map[types.Object]string{},
	}
}

// AddClassAlias maps a go type, given as "<package path>.<type name>", to a java class.
func (p *Parser) AddClassAlias(goType, className string) {
	p.classAliases[goType] = className
}

// AddPackage scans the syntax of a loaded package for //jnisig: directives and constant
// JavaClassName implementations. The package must be loaded with NeedSyntax and NeedTypesInfo.
func (p *Parser) AddPackage(pkg *packages.Package) error {
	if pkg.TypesInfo == nil {
		return fmt.Errorf("package %v was loaded without type info", pkg.PkgPath)
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}
				for _, spec := range decl.Specs {
					typeSpec := spec.(*ast.TypeSpec)
					doc := typeSpec.Doc
					if doc == nil && len(decl.Specs) == 1 {
						doc = decl.Doc
					}
					if err := p.addDirectives(pkg.TypesInfo.Defs[typeSpec.Name], doc); err != nil {
						return err
					}

					if iface, ok := typeSpec.Type.(*ast.InterfaceType); ok {
						for _, field := range iface.Methods.List {
							for _, name := range field.Names {
								if err := p.addDirectives(pkg.TypesInfo.Defs[name], field.Doc); err != nil {
									return err
								}
							}
						}
					}
				}
			case *ast.FuncDecl:
				obj := pkg.TypesInfo.Defs[decl.Name]
				if err := p.addDirectives(obj, decl.Doc); err != nil {
					return err
				}
				if decl.Name.Name == "JavaClassName" && decl.Recv != nil {
					p.addClassNameLiteral(pkg, decl)
				}
			}
		}
	}

	return nil
}

func (p *Parser) addDirectives(obj types.Object, doc *ast.CommentGroup) error {
	if obj == nil || doc == nil {
		return nil
	}

	var dirs *directives
	for _, comment := range doc.List {
		if !strings.HasPrefix(comment.Text, directivePrefix) {
			continue
		}
		if dirs == nil {
			dirs = &directives{}
		}

		fields := strings.Fields(strings.TrimPrefix(comment.Text, directivePrefix))
		if len(fields) == 0 {
			return fmt.Errorf("empty jnisig directive on %v", obj.Name())
		}

		switch fields[0] {
		case "class":
			if len(fields) != 2 {
				return fmt.Errorf("jnisig:class on %v expects one class name", obj.Name())
			}
			if err := sigtypes.ValidateClassName(fields[1]); err != nil {
				return fmt.Errorf("jnisig:class on %v: %w", obj.Name(), err)
			}
			dirs.Class = fields[1]
		case "name":
			if len(fields) != 2 {
				return fmt.Errorf("jnisig:name on %v expects one method name", obj.Name())
			}
			if err := sigtypes.ValidateMethodName(fields[1]); err != nil {
				return fmt.Errorf("jnisig:name on %v: %w", obj.Name(), err)
			}
			dirs.Name = fields[1]
		case "static":
			dirs.Static = true
		case "skip":
			dirs.Skip = true
		default:
			return fmt.Errorf("unknown jnisig directive '%v' on %v", fields[0], obj.Name())
		}
	}

	if dirs != nil {
		p.directives[obj] = dirs
	}
	return nil
}

// addClassNameLiteral records `func (T) JavaClassName() string { return "a.b.C" }` implementations.
func (p *Parser) addClassNameLiteral(pkg *packages.Package, decl *ast.FuncDecl) {
	if len(decl.Recv.List) != 1 || decl.Body == nil || len(decl.Body.List) != 1 {
		return
	}

	recvExpr := decl.Recv.List[0].Type
	if star, ok := recvExpr.(*ast.StarExpr); ok {
		recvExpr = star.X
	}
	recvIdent, ok := recvExpr.(*ast.Ident)
	if !ok {
		return
	}

	ret, ok := decl.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return
	}
	lit, ok := ret.Results[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return
	}
	className, err := strconv.Unquote(lit.Value)
	if err != nil {
		return
	}

	if obj := pkg.TypesInfo.Uses[recvIdent]; obj != nil {
		p.classNames[obj] = className
	}
}

func (p *Parser) getDirectives(obj types.Object) *directives {
	if dirs := p.directives[obj]; dirs != nil {
		return dirs
	}
	return &directives{}
}

// resolveClassName returns the java class bound to a named go type.
func (p *Parser) resolveClassName(named *types.Named) (string, bool) {
	obj := named.Obj()
	if obj.Pkg() != nil {
		if className, ok := p.classAliases[obj.Pkg().Path()+"."+obj.Name()]; ok {
			return className, true
		}
	}
	if dirs := p.directives[obj]; dirs != nil && dirs.Class != "" {
		return dirs.Class, true
	}
	if className, ok := p.classNames[obj]; ok {
		return className, true
	}
	return "", false
}

// GetTypeDescriptor builds the descriptor of a go/types type.
func (p *Parser) GetTypeDescriptor(typ types.Type, typeHints []sigtypes.JniTypeHint) (*sigtypes.TypeDescriptor, error) {
	var hint *sigtypes.TypeDescriptor
	if len(typeHints) > 0 {
		hint = typeHints[0].Desc
	}
	return p.buildTypeDescriptor(typ, hint, 0)
}

func (p *Parser) buildTypeDescriptor(typ types.Type, hint *sigtypes.TypeDescriptor, depth int) (*sigtypes.TypeDescriptor, error) {
	if depth > sigtypes.MaxArrayDimensions {
		return nil, sigtypes.Unsupported(nil, "type %v exceeds %v array dimensions", typ, sigtypes.MaxArrayDimensions)
	}

	codegenInfo := &CodegenInfo{Type: typ}
	var anyCodegenInfo any = codegenInfo

	if hint != nil {
		desc, err := p.buildHintedDescriptor(typ, hint, depth)
		if err != nil {
			return nil, err
		}
		desc.CodegenInfo = &anyCodegenInfo
		return desc, nil
	}

	desc := &sigtypes.TypeDescriptor{
		CodegenInfo: &anyCodegenInfo,
	}

	typ = types.Unalias(typ)
	if named, ok := typ.(*types.Named); ok {
		if className, ok := p.resolveClassName(named); ok {
			if err := sigtypes.ValidateClassName(className); err != nil {
				return nil, sigtypes.Unsupported(nil, "java class of %v: %v", typ, err)
			}
			desc.Kind, desc.ClassName = sigtypes.ObjectKind, className
			return desc, nil
		}
		if named.Obj().Pkg() == nil && named.Obj().Name() == "error" {
			return nil, sigtypes.Unsupported(nil, "error values are only supported as last result")
		}
	}

	switch t := typ.Underlying().(type) {
	case *types.Basic:
		switch t.Kind() {
		case types.Bool:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Boolean
		case types.Int8, types.Uint8:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Byte
		case types.Uint16:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Char
		case types.Int16:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Short
		case types.Int32, types.Uint32:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Int
		case types.Int, types.Int64, types.Uint, types.Uint64:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Long
		case types.Float32:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Float
		case types.Float64:
			desc.Kind, desc.Primitive = sigtypes.PrimitiveKind, sigtypes.Double
		case types.String:
			desc.Kind, desc.ClassName = sigtypes.ObjectKind, "java.lang.String"
		case types.Complex64, types.Complex128:
			return nil, sigtypes.Unsupported(nil, "complex numbers have no jvm representation")
		case types.UnsafePointer, types.Uintptr:
			return nil, sigtypes.Unsupported(nil, "unsafe pointers are not supported")
		default:
			return nil, sigtypes.Unsupported(nil, "unsupported basic type %v", t)
		}
	case *types.Slice:
		elemDesc, err := p.buildTypeDescriptor(t.Elem(), nil, depth+1)
		if err != nil {
			return nil, err
		}
		desc.Kind, desc.ElemDesc = sigtypes.ArrayKind, elemDesc
	case *types.Array:
		elemDesc, err := p.buildTypeDescriptor(t.Elem(), nil, depth+1)
		if err != nil {
			return nil, err
		}
		desc.Kind, desc.ElemDesc = sigtypes.ArrayKind, elemDesc
	case *types.Pointer:
		if pointerCycle(typ) {
			return nil, sigtypes.Unsupported(nil, "recursive pointer type %v", typ)
		}
		elemDesc, err := p.buildTypeDescriptor(t.Elem(), nil, depth)
		if err != nil {
			return nil, err
		}
		elemDesc.CodegenInfo = &anyCodegenInfo
		return elemDesc, nil
	case *types.Struct:
		return nil, sigtypes.Unsupported(nil, "struct %v has no java class (implement JavaClassName or add a jnisig:class directive)", typ)
	case *types.Interface:
		return nil, sigtypes.Unsupported(nil, "interface %v has no java class (add a jnisig:class directive)", typ)
	case *types.Map:
		return nil, sigtypes.Unsupported(nil, "maps are not supported (use a jni tag to map to a java class)")
	case *types.Chan:
		return nil, sigtypes.Unsupported(nil, "channels are not supported")
	case *types.Signature:
		return nil, sigtypes.Unsupported(nil, "functions are not supported as values")
	default:
		return nil, sigtypes.Unsupported(nil, "unsupported type %v", typ)
	}

	return desc, nil
}

func (p *Parser) buildHintedDescriptor(typ types.Type, hint *sigtypes.TypeDescriptor, depth int) (*sigtypes.TypeDescriptor, error) {
	desc := &sigtypes.TypeDescriptor{Kind: hint.Kind}

	under := typ.Underlying()
	if ptr, ok := under.(*types.Pointer); ok {
		under = ptr.Elem().Underlying()
	}
	basic, _ := under.(*types.Basic)

	switch hint.Kind {
	case sigtypes.PrimitiveKind:
		desc.Primitive = hint.Primitive
		switch hint.Primitive {
		case sigtypes.Boolean:
			if basic == nil || basic.Info()&types.IsBoolean == 0 {
				return nil, sigtypes.Unsupported(hint, "boolean can only be represented by bool types, got %v", typ)
			}
		case sigtypes.Byte, sigtypes.Char, sigtypes.Short, sigtypes.Int, sigtypes.Long:
			if basic == nil || basic.Info()&types.IsInteger == 0 {
				return nil, sigtypes.Unsupported(hint, "%v can only be represented by integer types, got %v", hint.Primitive, typ)
			}
		case sigtypes.Float, sigtypes.Double:
			if basic == nil || basic.Info()&types.IsFloat == 0 {
				return nil, sigtypes.Unsupported(hint, "%v can only be represented by float types, got %v", hint.Primitive, typ)
			}
		case sigtypes.Void:
			return nil, sigtypes.Unsupported(hint, "void cannot be used as a value type")
		default:
			return nil, sigtypes.Unsupported(hint, "unknown primitive %d", hint.Primitive)
		}
	case sigtypes.ArrayKind:
		var elemType types.Type
		switch t := under.(type) {
		case *types.Slice:
			elemType = t.Elem()
		case *types.Array:
			elemType = t.Elem()
		default:
			return nil, sigtypes.Unsupported(hint, "array can only be represented by slice or array types, got %v", typ)
		}
		if hint.ElemDesc == nil {
			return nil, sigtypes.Unsupported(hint, "array without element type")
		}
		elemDesc, err := p.buildTypeDescriptor(elemType, hint.ElemDesc, depth+1)
		if err != nil {
			return nil, err
		}
		desc.ElemDesc = elemDesc
	case sigtypes.ObjectKind:
		switch under.(type) {
		case *types.Struct, *types.Interface, *types.Map, *types.Slice, *types.Array:
		default:
			if basic == nil || basic.Info()&types.IsString == 0 {
				return nil, sigtypes.Unsupported(hint, "class %v can not be represented by %v", hint.ClassName, typ)
			}
		}
		if err := sigtypes.ValidateClassName(hint.ClassName); err != nil {
			return nil, sigtypes.Unsupported(hint, "%v", err)
		}
		desc.ClassName = hint.ClassName
	default:
		return nil, sigtypes.Unsupported(hint, "unknown descriptor kind %d", hint.Kind)
	}

	return desc, nil
}

// pointerCycle reports whether the pointer chain starting at typ leads back into itself.
func pointerCycle(typ types.Type) bool {
	seen := []types.Type{}
	for {
		ptr, ok := typ.Underlying().(*types.Pointer)
		if !ok {
			return false
		}
		if len(seen) > sigtypes.MaxArrayDimensions {
			return true
		}
		for _, prev := range seen {
			if types.Identical(prev, typ) {
				return true
			}
		}
		seen = append(seen, typ)
		typ = ptr.Elem()
	}
}

func isErrorType(typ types.Type) bool {
	return types.Identical(typ, types.Universe.Lookup("error").Type())
}

// GetFuncDescriptor builds a method descriptor from a go/types signature, using the same result
// rules as sigtypes.TypeCache.GetFuncDescriptor.
func (p *Parser) GetFuncDescriptor(sig *types.Signature) (*sigtypes.MethodDescriptor, error) {
	method := &sigtypes.MethodDescriptor{
		Params: make([]*sigtypes.TypeDescriptor, 0, sig.Params().Len()),
	}

	for i := 0; i < sig.Params().Len(); i++ {
		paramDesc, err := p.GetTypeDescriptor(sig.Params().At(i).Type(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to map parameter %v: %w", i, err)
		}
		method.Params = append(method.Params, paramDesc)
	}

	var retType types.Type
	results := sig.Results()
	switch results.Len() {
	case 0:
	case 1:
		if !isErrorType(results.At(0).Type()) {
			retType = results.At(0).Type()
		}
	case 2:
		if !isErrorType(results.At(1).Type()) {
			return nil, sigtypes.Unsupported(nil, "second result must be error, got %v", results.At(1).Type())
		}
		retType = results.At(0).Type()
	default:
		return nil, sigtypes.Unsupported(nil, "func has %v results, max is 2", results.Len())
	}

	if retType == nil {
		method.Return = sigtypes.NewPrimitive(sigtypes.Void)
	} else {
		retDesc, err := p.GetTypeDescriptor(retType, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to map result: %w", err)
		}
		method.Return = retDesc
	}

	return method, nil
}

// GetStructMethodDescriptor builds a method descriptor from a call struct, see
// sigtypes.TypeCache.GetStructMethodDescriptor.
func (p *Parser) GetStructMethodDescriptor(named *types.Named) (*sigtypes.MethodDescriptor, error) {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, sigtypes.Unsupported(nil, "call descriptor must be a struct, got %v", named)
	}

	method := &sigtypes.MethodDescriptor{
		Name:   named.Obj().Name(),
		Params: make([]*sigtypes.TypeDescriptor, 0, st.NumFields()),
	}

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		tag, err := sigtypes.ParseJniTagString(field.Name(), reflect.StructTag(st.Tag(i)))
		if err != nil {
			return nil, err
		}
		if tag.Skip {
			continue
		}

		fieldDesc, err := p.GetTypeDescriptor(field.Type(), tag.TypeHints)
		if err != nil {
			return nil, fmt.Errorf("failed to map field %v of %v: %w", field.Name(), named, err)
		}

		if tag.IsReturn {
			if method.Return != nil {
				return nil, fmt.Errorf("call descriptor %v has more than one return field", named)
			}
			method.Return = fieldDesc
		} else {
			method.Params = append(method.Params, fieldDesc)
		}
	}

	if method.Return == nil {
		method.Return = sigtypes.NewPrimitive(sigtypes.Void)
	}

	return method, nil
}
