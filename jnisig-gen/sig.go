// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dartnative/jnisig"
	"github.com/dartnative/jnisig/manifest"
)

func newSigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sig <declaration>...",
		Short: "Print the JVM signature of java method declarations",
		Long: `Print the JVM signature of each java method declaration, one per line.

Simple java.lang class names resolve without qualification. Use --manifest to apply the aliases of
a manifest to the other type names.`,
		Example: `  jnisig-gen sig "boolean renameTo(java.io.File dest)"
  jnisig-gen sig --manifest bridges.yaml "static Bitmap decode(byte[] data, int offset)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSig(cmd, args)
		},
	}

	cmd.Flags().String("manifest", "", "Manifest providing type aliases")

	return cmd
}

func (a *app) runSig(cmd *cobra.Command, decls []string) error {
	m := &manifest.Manifest{}
	if a.config.Manifest != "" {
		loaded, err := manifest.Load(a.config.Manifest)
		if err != nil {
			return err
		}
		m = loaded
	}

	enc := jnisig.NewEncoder(jnisig.WithVerbose(), jnisig.WithLogCb(libraryLogCb(a.log)))

	for _, decl := range decls {
		method, err := m.ParseDeclaration(decl)
		if err != nil {
			return fmt.Errorf("%v: %w", decl, err)
		}

		sig, err := enc.EncodeMethod(method)
		if err != nil {
			return fmt.Errorf("%v: %w", decl, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), sig)
	}

	return nil
}
