// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "jnisig-gen", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"go", "manifest", "sig"} {
		assert.Contains(t, names, expected)
	}
}

func TestSigCommand(t *testing.T) {
	t.Run("SingleDeclaration", func(t *testing.T) {
		stdout, _, err := execute(t, "sig", "public static int d(String tag, String msg)")
		require.NoError(t, err)
		assert.Equal(t, "(Ljava/lang/String;Ljava/lang/String;)I\n", stdout)
	})

	t.Run("MultipleDeclarations", func(t *testing.T) {
		stdout, _, err := execute(t, "sig",
			"void run()",
			"boolean renameTo(java.io.File dest)",
			"int[][] matrix(double[] values, String... names)",
		)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"()V",
			"(Ljava/io/File;)Z",
			"([D[Ljava/lang/String;)[[I",
		}, strings.Split(strings.TrimSpace(stdout), "\n"))
	})

	t.Run("ManifestAliases", func(t *testing.T) {
		dir := t.TempDir()
		manifestFile := filepath.Join(dir, "bridges.yaml")
		require.NoError(t, os.WriteFile(manifestFile, []byte("aliases:\n  Bitmap: android.graphics.Bitmap\nclasses: []\n"), 0644))

		stdout, _, err := execute(t, "sig", "--manifest", manifestFile, "static Bitmap decode(byte[] data, int offset)")
		require.NoError(t, err)
		assert.Equal(t, "([BI)Landroid/graphics/Bitmap;\n", stdout)
	})

	t.Run("VerboseLogsSignatures", func(t *testing.T) {
		_, stderr, err := execute(t, "sig", "-vv", "void run()")
		require.NoError(t, err)
		assert.Contains(t, stderr, "method run -> ()V")
	})

	t.Run("InvalidDeclarations", func(t *testing.T) {
		invalid := []string{
			"void run",
			"run()",
			"void run(void x)",
			"java.util.List<String> list()",
			"void run(int a b c)",
			"void run(Foo..Bar x)",
		}
		for _, decl := range invalid {
			_, _, err := execute(t, "sig", decl)
			assert.Error(t, err, decl)
		}
	})

	t.Run("MissingArgs", func(t *testing.T) {
		_, _, err := execute(t, "sig")
		assert.Error(t, err)
	})
}
