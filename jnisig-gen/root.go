// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dartnative/jnisig/codegen"
)

// app carries the state shared by all subcommands once the root command resolved the config.
type app struct {
	configFile string
	config     *Config
	log        *zap.SugaredLogger
}

func newRootCommand() *cobra.Command {
	a := &app{
		log: zap.NewNop().Sugar(),
	}

	rootCmd := &cobra.Command{
		Use:   "jnisig-gen",
		Short: "Generate JNI signature constants for native java bridges",
		Long: `jnisig-gen computes JVM method signatures ("(Ljava/lang/String;I)Z") and writes them as go
constants, so native bridges can resolve java methods through JNI without computing signatures at
runtime.

Settings can also be given as JNISIG_* environment variables or in a jnisig.yaml file.

Examples:
  jnisig-gen go --types Context,Player --output gen_jni.go
  jnisig-gen manifest bridges.yaml --package-name bridges --output gen_jni.go
  jnisig-gen sig "static int d(String tag, String msg)"`,
		Version:       codegen.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default ./jnisig.yaml)")
	rootCmd.PersistentFlags().CountP("verbosity", "v", "Verbose output (-v progress, -vv signatures)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Log as json")

	rootCmd.AddCommand(newGoCommand(a))
	rootCmd.AddCommand(newManifestCommand(a))
	rootCmd.AddCommand(newSigCommand(a))

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := newViper(a.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	config, err := loadConfig(v)
	if err != nil {
		return err
	}

	a.config = config
	a.log = newLogger(cmd.ErrOrStderr(), config.Verbosity, config.JSONLog)
	if v.ConfigFileUsed() != "" {
		a.log.Infow("loaded config", "file", v.ConfigFileUsed())
	}
	return nil
}
