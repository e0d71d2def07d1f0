// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package manifest

import (
	"fmt"
	"strings"

	"github.com/casbin/govaluate"
)

// filterFunctions are available to Select expressions in addition to the govaluate operators.
var filterFunctions = map[string]govaluate.ExpressionFunction{
	"hasPrefix": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("hasPrefix expects 2 arguments, got %v", len(args))
		}
		return strings.HasPrefix(fmt.Sprint(args[0]), fmt.Sprint(args[1])), nil
	},
	"hasSuffix": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("hasSuffix expects 2 arguments, got %v", len(args))
		}
		return strings.HasSuffix(fmt.Sprint(args[0]), fmt.Sprint(args[1])), nil
	},
}

// Select returns the methods for which the boolean expression holds. An empty expression selects
// all methods.
//
// Available parameters:
//   - name: method name
//   - class: dot separated class name
//   - static: whether the method is static
//   - params: number of parameters
//   - returns: return type in java source form, e.g. "int[]"
//   - signature: the encoded method signature
//
// Example:
//
//	methods, err := manifest.Select(methods, `static && params > 1 && hasPrefix(class, "com.example")`)
func Select(methods []BridgeMethod, expr string) ([]BridgeMethod, error) {
	if strings.TrimSpace(expr) == "" {
		return methods, nil
	}

	expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, filterFunctions)
	if err != nil {
		return nil, fmt.Errorf("error parsing filter expression: %w", err)
	}

	selected := make([]BridgeMethod, 0, len(methods))
	for _, method := range methods {
		result, err := expression.Evaluate(filterParameters(&method))
		if err != nil {
			return nil, fmt.Errorf("error evaluating filter for %v.%v: %w", method.Class, method.Name, err)
		}

		match, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("filter expression must evaluate to a bool, got %T", result)
		}
		if match {
			selected = append(selected, method)
		}
	}

	return selected, nil
}

func filterParameters(method *BridgeMethod) map[string]interface{} {
	params := map[string]interface{}{
		"name":      method.Name,
		"class":     method.Class,
		"static":    method.Static,
		"signature": method.Signature,
		"params":    float64(0),
		"returns":   "void",
	}
	if method.Desc != nil {
		params["params"] = float64(len(method.Desc.Params))
		if method.Desc.Return != nil {
			params["returns"] = method.Desc.Return.JavaName()
		}
	}
	return params
}
