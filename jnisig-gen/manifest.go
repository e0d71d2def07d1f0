// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dartnative/jnisig/codegen"
	"github.com/dartnative/jnisig/manifest"
)

func newManifestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest <manifest.yaml>",
		Short: "Generate signature constants from a yaml manifest",
		Long: `Resolve the methods listed in a yaml manifest and generate signature constants for them.

The --filter expression selects methods by name, class, static, signature, params and returns,
e.g. 'static && hasPrefix(class, "android.")'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runManifest(args[0])
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path for generated code")
	cmd.Flags().String("package-name", "", "Package name of the generated file")
	cmd.Flags().String("filter", "", "Expression selecting the methods to generate")
	cmd.Flags().Bool("no-signature-map", false, "Do not generate the per class signature maps")

	return cmd
}

func (a *app) runManifest(path string) error {
	cfg := a.config
	if cfg.Output == "" {
		return fmt.Errorf("output file is required (--output)")
	}
	if cfg.PackageName == "" {
		return fmt.Errorf("package name is required (--package-name)")
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	methods, err := m.Resolve()
	if err != nil {
		return err
	}
	a.log.Infow("resolved manifest", "file", path, "methods", len(methods))

	methods, err = manifest.Select(methods, cfg.Filter)
	if err != nil {
		return err
	}
	if len(methods) == 0 {
		return fmt.Errorf("no methods selected from %v", path)
	}
	for _, method := range methods {
		a.log.Debugw("selected method", "class", method.Class, "name", method.Name, "signature", method.Signature)
	}

	genOpts := []codegen.CodeGeneratorOption{
		codegen.WithPackageName(cfg.PackageName),
		codegen.WithBridgeTypes(codegen.BridgeTypesFromManifest(methods)...),
	}
	if cfg.NoSignatureMap {
		genOpts = append(genOpts, codegen.WithNoSignatureMap())
	}

	codeGen := codegen.NewCodeGenerator(nil)
	codeGen.BuildFile(cfg.Output, genOpts...)
	if err := codeGen.Generate(); err != nil {
		return err
	}

	a.log.Infow("generated signature file", "file", cfg.Output, "methods", len(methods))
	return nil
}
