// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

// Package manifest loads bridge manifests: yaml files listing the java classes and methods a
// native bridge calls, with types written in java source form.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the root of a bridge manifest file.
//
//	aliases:
//	  String: java.lang.String
//	classes:
//	  - name: com.example.Foo
//	    methods:
//	      - name: foo
//	        params: [boolean, com.example.Foo]
//	        returns: int
//	      - name: bar
//	        static: true
//	        signature: "()V"
type Manifest struct {
	Aliases map[string]string `yaml:"aliases,omitempty"`
	Classes []Class           `yaml:"classes"`
}

// Class lists the bridged methods of one java class.
type Class struct {
	Name    string   `yaml:"name"`
	Methods []Method `yaml:"methods"`
}

// Method describes a java method either by its java types or by an explicit signature. When both
// are given they must agree.
type Method struct {
	Name      string   `yaml:"name"`
	Static    bool     `yaml:"static,omitempty"`
	Params    []string `yaml:"params,omitempty"`
	Returns   string   `yaml:"returns,omitempty"`
	Signature string   `yaml:"signature,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %v: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %v: %w", path, err)
	}
	return m, nil
}

// Parse parses manifest yaml. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	for i, class := range m.Classes {
		if strings.TrimSpace(class.Name) == "" {
			return nil, fmt.Errorf("class %v has no name", i)
		}
		for j, method := range class.Methods {
			if strings.TrimSpace(method.Name) == "" {
				return nil, fmt.Errorf("method %v of class %v has no name", j, class.Name)
			}
		}
	}

	return m, nil
}

// Marshal renders the manifest back to yaml.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
