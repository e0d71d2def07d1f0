// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package manifest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dartnative/jnisig/sigtypes"
)

var javaModifiers = map[string]bool{
	"public":       true,
	"protected":    true,
	"private":      true,
	"static":       true,
	"final":        true,
	"native":       true,
	"abstract":     true,
	"synchronized": true,
	"default":      true,
}

// ParseDeclaration parses a java method declaration like
// "public static int d(String tag, String msg)" into a method descriptor, applying the manifest
// aliases to all type names. Parameter names are optional, generics and throws clauses are not
// supported.
func (m *Manifest) ParseDeclaration(decl string) (*sigtypes.MethodDescriptor, error) {
	decl = strings.TrimSuffix(strings.TrimSpace(decl), ";")

	open := strings.Index(decl, "(")
	if open < 0 || !strings.HasSuffix(decl, ")") {
		return nil, fmt.Errorf("declaration '%v' has no parameter list", decl)
	}
	if strings.ContainsAny(decl, "<>") {
		return nil, fmt.Errorf("declaration '%v' uses generics, use the erased types instead", decl)
	}

	head := strings.Fields(decl[:open])
	method := &sigtypes.MethodDescriptor{}
	for len(head) > 0 && javaModifiers[head[0]] {
		if head[0] == "static" {
			method.Static = true
		}
		head = head[1:]
	}

	retName, name, err := splitDeclarator(strings.Join(head, " "))
	if err != nil || name == "" || strings.HasSuffix(retName, "...") {
		return nil, fmt.Errorf("declaration '%v' must be '<return type> <name>(<params>)'", decl)
	}
	if err := sigtypes.ValidateMethodName(name); err != nil {
		return nil, err
	}
	method.Name = name

	retDesc, err := m.ParseType(retName)
	if err != nil {
		return nil, fmt.Errorf("return type: %w", err)
	}
	method.Return = retDesc

	params := strings.TrimSpace(decl[open+1 : len(decl)-1])
	if params == "" {
		return method, nil
	}

	for i, param := range strings.Split(params, ",") {
		typeName, _, err := splitDeclarator(param)
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", i, err)
		}

		paramDesc, err := m.ParseType(typeName)
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", i, err)
		}
		if paramDesc.Kind == sigtypes.PrimitiveKind && paramDesc.Primitive == sigtypes.Void {
			return nil, sigtypes.Unsupported(paramDesc, "parameter %v: void is only valid as return type", i)
		}
		method.Params = append(method.Params, paramDesc)
	}

	return method, nil
}

// splitDeclarator splits a declarator like "final String[] args[]" or "Object ...rest" into its
// type in ParseType form ("String[][]", "Object...") and its optional name. Brackets after the
// name add array dimensions, as in c style "int args[]".
func splitDeclarator(declarator string) (string, string, error) {
	tokens := declaratorTokens(declarator)
	for len(tokens) > 1 && tokens[0] == "final" {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 || !isNameToken(tokens[0]) {
		return "", "", fmt.Errorf("cannot parse '%v'", strings.TrimSpace(declarator))
	}

	typeName, name := tokens[0], ""
	dims, varargs := 0, false
	for i := 1; i < len(tokens); i++ {
		switch tok := tokens[i]; {
		case tok == "[" && i+1 < len(tokens) && tokens[i+1] == "]" && !varargs:
			dims++
			i++
		case tok == "..." && !varargs && name == "":
			varargs = true
		case isNameToken(tok) && name == "":
			name = tok
		default:
			return "", "", fmt.Errorf("cannot parse '%v'", strings.TrimSpace(declarator))
		}
	}

	typeName += strings.Repeat("[]", dims)
	if varargs {
		typeName += "..."
	}
	return typeName, name, nil
}

// declaratorTokens splits a declarator into names, "[", "]" and "..." tokens.
func declaratorTokens(declarator string) []string {
	tokens := []string{}
	current := strings.Builder{}
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(declarator); {
		rest := declarator[i:]
		switch {
		case strings.HasPrefix(rest, "..."):
			flush()
			tokens = append(tokens, "...")
			i += 3
		case rest[0] == '[' || rest[0] == ']':
			flush()
			tokens = append(tokens, rest[:1])
			i++
		default:
			r, size := utf8.DecodeRuneInString(rest)
			if unicode.IsSpace(r) {
				flush()
			} else {
				current.WriteString(rest[:size])
			}
			i += size
		}
	}
	flush()

	return tokens
}

func isNameToken(tok string) bool {
	return tok != "[" && tok != "]" && tok != "..."
}
