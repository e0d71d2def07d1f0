// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package jnisig

type EncoderOption func(*EncoderOptions)

type EncoderOptions struct {
	Verbose      bool
	LogCb        func(format string, args ...any)
	ClassAliases map[any]string
}

func WithVerbose() EncoderOption {
	return func(opts *EncoderOptions) {
		opts.Verbose = true
	}
}

func WithLogCb(logCb func(format string, args ...any)) EncoderOption {
	return func(opts *EncoderOptions) {
		opts.LogCb = logCb
	}
}

// WithClassAliases registers java classes for go types that can not implement JavaClassName
// themselves (interfaces, types from foreign packages). Keys are sample values of the go type,
// e.g. (*io.Reader)(nil) for an interface or time.Time{} for a struct.
func WithClassAliases(aliases map[any]string) EncoderOption {
	return func(opts *EncoderOptions) {
		if opts.ClassAliases == nil {
			opts.ClassAliases = map[any]string{}
		}
		for k, v := range aliases {
			opts.ClassAliases[k] = v
		}
	}
}
