// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"

	"github.com/dartnative/jnisig/codegen"
)

// typeRequest is a go type to generate constants for, optionally routed to its own output file.
type typeRequest struct {
	Name string
	File string
}

// parseTypeList parses "Type1,Type2:file2.go" lists.
func parseTypeList(list string) ([]typeRequest, error) {
	requests := []typeRequest{}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, file, _ := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("missing type name in '%v'", entry)
		}
		requests = append(requests, typeRequest{Name: name, File: strings.TrimSpace(file)})
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("no types given")
	}
	return requests, nil
}

func newGoCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "go",
		Short: "Generate signature constants for go bridge types",
		Long: `Load a go package and generate signature constants for the requested bridge types.

Types are interfaces or structs bound to a java class by a //jnisig:class directive or a constant
JavaClassName method. Methods can be renamed with //jnisig:name, marked //jnisig:static or excluded
with //jnisig:skip. Append ":file.go" to a type to write it to its own file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGo()
		},
	}

	cmd.Flags().String("package", ".", "Go package path to analyze")
	cmd.Flags().String("types", "", "Comma-separated list of type names to generate code for")
	cmd.Flags().StringP("output", "o", "", "Output file path for generated code")
	cmd.Flags().String("package-name", "", "Package name of the generated file (default: the analyzed package)")
	cmd.Flags().Bool("no-signature-map", false, "Do not generate the per class signature maps")

	return cmd
}

func (a *app) runGo() error {
	cfg := a.config
	if cfg.Types == "" {
		return fmt.Errorf("type names are required (--types)")
	}

	requests, err := parseTypeList(cfg.Types)
	if err != nil {
		return err
	}
	for _, req := range requests {
		if req.File == "" && cfg.Output == "" {
			return fmt.Errorf("output file is required for %v (--output or Type:file.go)", req.Name)
		}
	}

	a.log.Infow("loading package", "package", cfg.Package)
	pkg, err := loadPackage(cfg.Package)
	if err != nil {
		return err
	}

	parser := codegen.NewParser()
	if err := parser.AddPackage(pkg); err != nil {
		return err
	}

	genOpts := []codegen.CodeGeneratorOption{}
	if cfg.PackageName != "" {
		genOpts = append(genOpts, codegen.WithPackageName(cfg.PackageName))
	}
	if cfg.NoSignatureMap {
		genOpts = append(genOpts, codegen.WithNoSignatureMap())
	}
	codeGen := codegen.NewCodeGenerator(parser, genOpts...)

	fileTypes := map[string][]codegen.CodeGeneratorOption{}
	fileOrder := []string{}
	for _, req := range requests {
		goType, err := lookupType(pkg, req.Name)
		if err != nil {
			return err
		}

		file := req.File
		if file == "" {
			file = cfg.Output
		}
		if _, ok := fileTypes[file]; !ok {
			fileOrder = append(fileOrder, file)
		}
		fileTypes[file] = append(fileTypes[file], codegen.WithGoTypesType(goType))
		a.log.Debugw("found type", "type", req.Name, "file", file)
	}

	for _, file := range fileOrder {
		codeGen.BuildFile(file, fileTypes[file]...)
	}

	if err := codeGen.Generate(); err != nil {
		return err
	}

	a.log.Infow("generated signature files", "types", len(requests), "files", len(fileOrder))
	return nil
}

func loadPackage(path string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", path, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", path)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, 0, len(pkg.Errors))
		for _, pkgErr := range pkg.Errors {
			msgs = append(msgs, pkgErr.Error())
		}
		return nil, fmt.Errorf("package %s has errors: %s", path, strings.Join(msgs, "; "))
	}

	return pkg, nil
}

func lookupType(pkg *packages.Package, name string) (types.Type, error) {
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", name, pkg.PkgPath)
	}

	typeObj, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("object %s is not a type in package %s", name, pkg.PkgPath)
	}
	return typeObj.Type(), nil
}
