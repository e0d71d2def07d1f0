// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

// Package codegen generates go source files holding the JNI class names and method signatures
// of bridge types, so native bridges can resolve java methods without computing signatures at
// runtime.
package codegen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/dartnative/jnisig/codegen/tmpl"
)

type CodeGeneratorOption func(*CodeGeneratorOptions)

type CodeGeneratorOptions struct {
	PackageName    string
	NoSignatureMap bool
	GoTypesTypes   []types.Type
	Bridges        []*BridgeType
}

// WithPackageName sets the package clause of the generated file. Defaults to the package of the
// go types the file is built from.
func WithPackageName(name string) CodeGeneratorOption {
	return func(opts *CodeGeneratorOptions) {
		opts.PackageName = name
	}
}

func WithNoSignatureMap() CodeGeneratorOption {
	return func(opts *CodeGeneratorOptions) {
		opts.NoSignatureMap = true
	}
}

// WithGoTypesType adds a named go type (interface, struct or call struct) to the file.
func WithGoTypesType(t types.Type) CodeGeneratorOption {
	return func(opts *CodeGeneratorOptions) {
		opts.GoTypesTypes = append(opts.GoTypesTypes, t)
	}
}

// WithBridgeTypes adds already resolved bridge types (e.g. from a manifest) to the file.
func WithBridgeTypes(bridges ...*BridgeType) CodeGeneratorOption {
	return func(opts *CodeGeneratorOptions) {
		opts.Bridges = append(opts.Bridges, bridges...)
	}
}

type generationFile struct {
	FileName string
	Options  CodeGeneratorOptions
}

// CodeGenerator manages batch generation of signature files.
type CodeGenerator struct {
	parser  *Parser
	options CodeGeneratorOptions
	files   []*generationFile
}

// NewCodeGenerator creates a new code generator. parser may be nil when only resolved bridge
// types are generated. The options serve as defaults for every file.
func NewCodeGenerator(parser *Parser, opts ...CodeGeneratorOption) *CodeGenerator {
	cg := &CodeGenerator{
		parser: parser,
	}
	for _, opt := range opts {
		opt(&cg.options)
	}
	return cg
}

// BuildFile registers a file to generate with its types.
func (cg *CodeGenerator) BuildFile(fileName string, opts ...CodeGeneratorOption) {
	fileOpts := cg.options
	fileOpts.GoTypesTypes = append([]types.Type{}, cg.options.GoTypesTypes...)
	fileOpts.Bridges = append([]*BridgeType{}, cg.options.Bridges...)
	for _, opt := range opts {
		opt(&fileOpts)
	}

	cg.files = append(cg.files, &generationFile{
		FileName: fileName,
		Options:  fileOpts,
	})
}

// GenerateToMap generates all registered files and returns their code by file name.
func (cg *CodeGenerator) GenerateToMap() (map[string]string, error) {
	if len(cg.files) == 0 {
		return nil, fmt.Errorf("no files requested for generation")
	}

	results := make(map[string]string, len(cg.files))
	for _, file := range cg.files {
		code, err := cg.generateFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %v: %w", file.FileName, err)
		}
		results[file.FileName] = code
	}

	return results, nil
}

// Generate generates all registered files and writes them to disk.
func (cg *CodeGenerator) Generate() error {
	results, err := cg.GenerateToMap()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	for fileName, code := range results {
		dir := filepath.Dir(fileName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		if err := os.WriteFile(fileName, []byte(code), 0644); err != nil {
			return fmt.Errorf("failed to write code to file %s: %w", fileName, err)
		}
	}

	return nil
}

// analyzeTypes resolves the go types of a file into bridge types and determines the package name.
func (cg *CodeGenerator) analyzeTypes(file *generationFile) ([]*BridgeType, string, error) {
	bridges := append([]*BridgeType{}, file.Options.Bridges...)
	pkgPath := ""
	pkgName := file.Options.PackageName
	otherTypeName := ""

	for _, t := range file.Options.GoTypesTypes {
		named, ok := types.Unalias(t).(*types.Named)
		if !ok {
			return nil, "", fmt.Errorf("type %v is not a named type", t)
		}
		if cg.parser == nil {
			return nil, "", fmt.Errorf("no parser configured for go types")
		}

		obj := named.Obj()
		if obj.Pkg() == nil {
			return nil, "", fmt.Errorf("type %s has no package path", obj.Name())
		}
		if pkgPath == "" {
			pkgPath = obj.Pkg().Path()
			if pkgName == "" {
				pkgName = obj.Pkg().Name()
			}
		} else if pkgPath != obj.Pkg().Path() {
			return nil, "", fmt.Errorf("type %s has different package path than %s. cannot combine types from different packages in a single file", obj.Name(), otherTypeName)
		}
		otherTypeName = obj.Name()

		bridge, err := cg.parser.BuildBridgeType(named)
		if err != nil {
			return nil, "", fmt.Errorf("failed to analyze type %s: %w", obj.Name(), err)
		}
		bridges = append(bridges, bridge)
	}

	if pkgName == "" {
		return nil, "", fmt.Errorf("no package name for %v (use WithPackageName)", file.FileName)
	}
	if len(bridges) == 0 {
		return nil, "", fmt.Errorf("no types requested for generation")
	}

	return bridges, pkgName, nil
}

// generateFile renders one file. The hash in the header covers every class and signature, so
// regenerated files only change when a signature changes.
func (cg *CodeGenerator) generateFile(file *generationFile) (string, error) {
	bridges, pkgName, err := cg.analyzeTypes(file)
	if err != nil {
		return "", err
	}

	hasher := sha256.New()
	mainCode := tmpl.Main{
		PackageName: pkgName,
		Version:     Version,
		SigMaps:     !file.Options.NoSignatureMap,
	}

	usedNames := map[string]string{}
	for _, bridge := range bridges {
		tmplBridge := &tmpl.Bridge{
			GoName:       bridge.GoName,
			ClassName:    bridge.ClassName,
			InternalName: strings.ReplaceAll(bridge.ClassName, ".", "/"),
		}
		if prev, exists := usedNames[bridge.GoName+"Class"]; exists {
			return "", fmt.Errorf("bridge %v of %v collides with %v", bridge.GoName, bridge.ClassName, prev)
		}
		usedNames[bridge.GoName+"Class"] = bridge.ClassName
		fmt.Fprintf(hasher, "%v\n", bridge.ClassName)

		for _, method := range bridge.Methods {
			constName := bridge.GoName + "Sig" + method.GoName
			if prev, exists := usedNames[constName]; exists {
				return "", fmt.Errorf("constant %v for %v.%v collides with %v", constName, bridge.ClassName, method.JavaName, prev)
			}
			usedNames[constName] = bridge.ClassName + "." + method.JavaName

			tmplBridge.Methods = append(tmplBridge.Methods, &tmpl.Method{
				ConstName: constName,
				JavaName:  method.JavaName,
				Static:    method.Static,
				Signature: method.Signature,
			})
			fmt.Fprintf(hasher, "%v %v %v %v\n", method.JavaName, method.Static, method.Signature, constName)
		}

		mainCode.Bridges = append(mainCode.Bridges, tmplBridge)
	}

	sort.SliceStable(mainCode.Bridges, func(i, j int) bool {
		return mainCode.Bridges[i].GoName < mainCode.Bridges[j].GoName
	})
	mainCode.TypesHash = hex.EncodeToString(hasher.Sum(nil))

	mainCodeTpl := GetTemplate("tmpl/main.tmpl")
	mainCodeBuilder := strings.Builder{}
	if err := mainCodeTpl.ExecuteTemplate(&mainCodeBuilder, "main", mainCode); err != nil {
		return "", err
	}

	formatted, err := imports.Process(file.FileName, []byte(mainCodeBuilder.String()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %w", err)
	}

	return string(formatted), nil
}
