// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package codegen

import (
	"fmt"
	"go/types"
	"sort"

	"github.com/dartnative/jnisig"
	"github.com/dartnative/jnisig/manifest"
	"github.com/dartnative/jnisig/sigtypes"
)

// BridgeType is a java class together with the methods a native bridge resolves on it.
type BridgeType struct {
	GoName    string
	ClassName string
	Methods   []*BridgeMethod
}

// BridgeMethod is a single resolvable java method.
type BridgeMethod struct {
	GoName    string
	JavaName  string
	Static    bool
	Signature string
	Desc      *sigtypes.MethodDescriptor
}

// BuildBridgeType describes a named go type as a bridge:
//   - interfaces contribute their methods
//   - structs contribute the exported methods of their pointer method set
//   - structs without such methods are call structs and describe a single method by their fields
//
// The java class comes from a //jnisig:class directive, a constant JavaClassName implementation
// or a class alias.
func (p *Parser) BuildBridgeType(named *types.Named) (*BridgeType, error) {
	className, ok := p.resolveClassName(named)
	if !ok {
		return nil, fmt.Errorf("type %v has no java class (add a jnisig:class directive)", named.Obj().Name())
	}
	if err := sigtypes.ValidateClassName(className); err != nil {
		return nil, fmt.Errorf("type %v: %w", named.Obj().Name(), err)
	}

	bridge := &BridgeType{
		GoName:    named.Obj().Name(),
		ClassName: className,
	}

	var funcs []*types.Func
	switch under := named.Underlying().(type) {
	case *types.Interface:
		for i := 0; i < under.NumMethods(); i++ {
			funcs = append(funcs, under.Method(i))
		}
	case *types.Struct:
		methodSet := types.NewMethodSet(types.NewPointer(named))
		for i := 0; i < methodSet.Len(); i++ {
			if fn, ok := methodSet.At(i).Obj().(*types.Func); ok {
				funcs = append(funcs, fn)
			}
		}
	default:
		return nil, fmt.Errorf("type %v must be an interface or struct, got %v", named.Obj().Name(), under)
	}

	for _, fn := range funcs {
		if !fn.Exported() || fn.Name() == "JavaClassName" {
			continue
		}
		dirs := p.getDirectives(fn)
		if dirs.Skip {
			continue
		}

		desc, err := p.GetFuncDescriptor(fn.Type().(*types.Signature))
		if err != nil {
			return nil, fmt.Errorf("%v.%v: %w", bridge.GoName, fn.Name(), err)
		}

		if err := bridge.addMethod(fn.Name(), javaMethodName(fn.Name(), dirs), dirs.Static, desc); err != nil {
			return nil, err
		}
	}

	if _, isStruct := named.Underlying().(*types.Struct); isStruct && len(bridge.Methods) == 0 {
		dirs := p.getDirectives(named.Obj())
		desc, err := p.GetStructMethodDescriptor(named)
		if err != nil {
			return nil, err
		}
		if err := bridge.addMethod("Call", javaMethodName(bridge.GoName, dirs), dirs.Static, desc); err != nil {
			return nil, err
		}
	}

	if len(bridge.Methods) == 0 {
		return nil, fmt.Errorf("type %v has no bridged methods", bridge.GoName)
	}

	return bridge, nil
}

func (b *BridgeType) addMethod(goName, javaName string, static bool, desc *sigtypes.MethodDescriptor) error {
	desc.Name, desc.Static = javaName, static

	sig, err := jnisig.EncodeMethod(desc)
	if err != nil {
		return fmt.Errorf("%v.%v: %w", b.GoName, goName, err)
	}

	b.Methods = append(b.Methods, &BridgeMethod{
		GoName:    goName,
		JavaName:  javaName,
		Static:    static,
		Signature: sig,
		Desc:      desc,
	})
	return nil
}

// BridgeTypesFromManifest groups resolved manifest methods by class. Overloaded java methods get
// numbered go names in manifest order, constructors are named Init.
func BridgeTypesFromManifest(methods []manifest.BridgeMethod) []*BridgeType {
	bridges := []*BridgeType{}
	byClass := map[string]*BridgeType{}
	usedNames := map[string]map[string]bool{}

	for _, method := range methods {
		bridge := byClass[method.Class]
		if bridge == nil {
			bridge = &BridgeType{
				GoName:    goTypeName(method.Class),
				ClassName: method.Class,
			}
			byClass[method.Class] = bridge
			usedNames[method.Class] = map[string]bool{}
			bridges = append(bridges, bridge)
		}

		used := usedNames[method.Class]
		goName := goMethodName(method.Name)
		if used[goName] {
			for n := 2; ; n++ {
				if candidate := fmt.Sprintf("%v%d", goName, n); !used[candidate] {
					goName = candidate
					break
				}
			}
		}
		used[goName] = true

		bridge.Methods = append(bridge.Methods, &BridgeMethod{
			GoName:    goName,
			JavaName:  method.Name,
			Static:    method.Static,
			Signature: method.Signature,
			Desc:      method.Desc,
		})
	}

	// disambiguate classes sharing a simple name
	counts := map[string]int{}
	for _, bridge := range bridges {
		counts[bridge.GoName]++
	}
	for _, bridge := range bridges {
		if counts[bridge.GoName] > 1 {
			bridge.GoName = goQualifiedTypeName(bridge.ClassName)
		}
	}

	sort.SliceStable(bridges, func(i, j int) bool {
		return bridges[i].GoName < bridges[j].GoName
	})

	return bridges
}

func javaMethodName(goName string, dirs *directives) string {
	if dirs.Name != "" {
		return dirs.Name
	}
	return lowerFirst(goName)
}
