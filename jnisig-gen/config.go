// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "JNISIG"

// Config holds the generator settings. Values come from flags, JNISIG_* environment variables and
// an optional jnisig.yaml, in that order of precedence.
type Config struct {
	Verbosity      int    `mapstructure:"verbosity"`
	JSONLog        bool   `mapstructure:"json_log"`
	Package        string `mapstructure:"package"`
	Types          string `mapstructure:"types"`
	Output         string `mapstructure:"output"`
	PackageName    string `mapstructure:"package_name"`
	NoSignatureMap bool   `mapstructure:"no_signature_map"`
	Filter         string `mapstructure:"filter"`
	Manifest       string `mapstructure:"manifest"`
}

func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	// every key needs a default, AutomaticEnv only applies to known keys on Unmarshal
	v.SetDefault("verbosity", 0)
	v.SetDefault("json_log", false)
	v.SetDefault("package", ".")
	v.SetDefault("types", "")
	v.SetDefault("output", "")
	v.SetDefault("package_name", "")
	v.SetDefault("no_signature_map", false)
	v.SetDefault("filter", "")
	v.SetDefault("manifest", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("jnisig")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// bindFlags binds every flag of a command to the config key of the same name, with dashes
// replaced by underscores.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		if bindErr != nil || flag.Name == "config" || flag.Name == "help" {
			return
		}
		key := strings.ReplaceAll(flag.Name, "-", "_")
		if err := v.BindPFlag(key, flag); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %v: %w", flag.Name, err)
		}
	})
	return bindErr
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
