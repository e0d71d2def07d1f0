// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// verbosityToLevel maps -v flag counts to zap levels: none shows warnings, -v progress and -vv
// every computed signature.
func verbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func newLogger(out io.Writer, verbosity int, jsonOutput bool) *zap.SugaredLogger {
	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.TimeKey = ""
		encoderConfig.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), verbosityToLevel(verbosity))
	return zap.New(core).Sugar()
}

// libraryLogCb adapts a logger to the printf style callback of the jnisig library.
func libraryLogCb(log *zap.SugaredLogger) func(format string, args ...any) {
	return func(format string, args ...any) {
		log.Debugf(format, args...)
	}
}
