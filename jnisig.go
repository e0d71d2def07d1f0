// Package jnisig produces JVM type and method signatures ("(ZLcom/example/Foo;)I") for native
// bridges that resolve java methods through JNI. Signatures can be encoded from hand built
// descriptors, from go types via runtime reflection, or parsed back into descriptors.
//
// Copyright (c) 2025 The jnisig Authors. Licensed under Apache-2.0, see the LICENSE file.
package jnisig

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/dartnative/jnisig/sigtypes"
)

// Encoder maps go types and funcs to JVM signatures using runtime reflection.
//
// The instance caches type descriptors and computed signatures. Encoding is a pure function of
// the descriptor, so cached results never go stale unless class aliases change. It's recommended
// to reuse the same Encoder instance across operations to benefit from caching.
//
// Key features:
//   - Go type mapping: bool, integers, floats, strings, slices and classes implementing JavaClassName
//   - Class aliases: map foreign or interface types to java classes
//   - Thread-safe: can be safely used from multiple goroutines
//
// Example usage:
//
//	enc := jnisig.NewEncoder(jnisig.WithClassAliases(map[any]string{
//	    (*io.Reader)(nil): "java.io.InputStream",
//	}))
//
//	sig, err := enc.MethodSignature(func(path string, flags int32) (bool, error) { return false, nil })
//	// sig == "(Ljava/lang/String;I)Z"
type Encoder struct {
	typeCache *sigtypes.TypeCache
	classes   *classRegistry

	sigMutex sync.RWMutex
	sigs     map[sigKey]string
	sigGen   uint64 // bumped whenever class mappings change

	// Verbose enables logging of computed signatures.
	Verbose bool
	logCb   func(format string, args ...any)
}

// NewEncoder creates a new Encoder.
//
// Parameters:
//   - opts: functional options (WithVerbose, WithLogCb, WithClassAliases)
//
// Returns:
//   - *Encoder: A new Encoder instance
//
// NewEncoder panics if a class alias carries an invalid class name, as aliases are static
// program configuration. Use RegisterClass to handle such errors at runtime.
func NewEncoder(opts ...EncoderOption) *Encoder {
	options := &EncoderOptions{}
	for _, opt := range opts {
		opt(options)
	}

	enc := &Encoder{
		classes: newClassRegistry(),
		sigs:    map[sigKey]string{},
		Verbose: options.Verbose,
		logCb:   options.LogCb,
	}
	enc.typeCache = sigtypes.NewTypeCache(enc.classes)

	for sample, className := range options.ClassAliases {
		if err := enc.classes.register(sample, className); err != nil {
			panic(err)
		}
	}

	return enc
}

// GetTypeCache returns the type cache for the Encoder instance.
func (e *Encoder) GetTypeCache() *sigtypes.TypeCache {
	return e.typeCache
}

// RegisterClass maps the go type of sample to a java class. Previously cached descriptors and
// signatures are dropped.
func (e *Encoder) RegisterClass(sample any, className string) error {
	if err := e.classes.register(sample, className); err != nil {
		return err
	}

	e.typeCache.RemoveAllTypes()

	e.sigMutex.Lock()
	e.sigs = map[sigKey]string{}
	e.sigGen++
	e.sigMutex.Unlock()

	return nil
}

// EncodeType encodes a descriptor, see the package level EncodeType.
func (e *Encoder) EncodeType(desc *sigtypes.TypeDescriptor) (string, error) {
	sig, err := EncodeType(desc)
	if err != nil {
		return "", err
	}

	e.log("descriptor %v -> %v", desc.JavaName(), sig)
	return sig, nil
}

// EncodeMethod encodes a method descriptor, see the package level EncodeMethod.
func (e *Encoder) EncodeMethod(method *sigtypes.MethodDescriptor) (string, error) {
	sig, err := EncodeMethod(method)
	if err != nil {
		return "", err
	}

	e.log("method %v -> %v", methodName(method), sig)
	return sig, nil
}

// TypeSignature returns the JVM type signature of the go type of value.
//
// Example:
//
//	sig, _ := enc.TypeSignature([][]int32{})
//	// sig == "[[I"
func (e *Encoder) TypeSignature(value any) (string, error) {
	return e.TypeSignatureOf(reflect.TypeOf(value))
}

// TypeSignatureOf returns the JVM type signature of t.
func (e *Encoder) TypeSignatureOf(t reflect.Type) (string, error) {
	sig, gen, ok := e.cachedSig(sigKey{t: t})
	if ok {
		return sig, nil
	}

	desc, err := e.typeCache.GetTypeDescriptor(t, nil)
	if err != nil {
		return "", err
	}

	sig, err = EncodeType(desc)
	if err != nil {
		return "", err
	}

	e.storeSig(sigKey{t: t}, sig, gen)
	e.log("type %v -> %v", t, sig)
	return sig, nil
}

// MethodSignature returns the JVM method signature of a go func value or func type sample.
// A trailing error result is treated as the java exception channel.
//
// Example:
//
//	sig, _ := enc.MethodSignature(func(bool, *Foo) int32 { return 0 })
//	// sig == "(ZLcom/example/Foo;)I" if *Foo implements JavaClassName
func (e *Encoder) MethodSignature(fn any) (string, error) {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return "", fmt.Errorf("%w: expected func, got %v", sigtypes.ErrUnsupportedDescriptor, fnType)
	}

	sig, gen, ok := e.cachedSig(sigKey{t: fnType, method: true})
	if ok {
		return sig, nil
	}

	method, err := e.typeCache.GetFuncDescriptor(fnType, 0)
	if err != nil {
		return "", err
	}

	sig, err = EncodeMethod(method)
	if err != nil {
		return "", err
	}

	e.storeSig(sigKey{t: fnType, method: true}, sig, gen)
	e.log("func %v -> %v", fnType, sig)
	return sig, nil
}

// MethodSignatureOf returns the JVM method signature of a method obtained from reflect.Type.Method.
// The receiver of methods on concrete types is skipped.
func (e *Encoder) MethodSignatureOf(m reflect.Method) (string, error) {
	skip := 0
	if m.Func.IsValid() {
		skip = 1
	}

	method, err := e.typeCache.GetFuncDescriptor(m.Type, skip)
	if err != nil {
		return "", fmt.Errorf("method %v: %w", m.Name, err)
	}
	method.Name = m.Name

	sig, err := EncodeMethod(method)
	if err != nil {
		return "", err
	}

	e.log("method %v -> %v", m.Name, sig)
	return sig, nil
}

// StructMethodSignature returns the JVM method signature described by a call struct, see
// sigtypes.TypeCache.GetStructMethodDescriptor.
func (e *Encoder) StructMethodSignature(callStruct any) (string, error) {
	method, err := e.typeCache.GetStructMethodDescriptor(reflect.TypeOf(callStruct))
	if err != nil {
		return "", err
	}

	sig, err := EncodeMethod(method)
	if err != nil {
		return "", err
	}

	e.log("call %v -> %v", method.Name, sig)
	return sig, nil
}

// MethodSignatures returns the JVM signatures of all exported methods of the given type, keyed
// by method name. Pass a nil pointer to an interface to describe an interface.
func (e *Encoder) MethodSignatures(sample any) (map[string]string, error) {
	t := aliasType(sample)
	if t == nil {
		return nil, fmt.Errorf("%w: nil sample", sigtypes.ErrUnsupportedDescriptor)
	}

	sigs := make(map[string]string, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.Name == "JavaClassName" {
			continue
		}
		sig, err := e.MethodSignatureOf(m)
		if err != nil {
			return nil, err
		}
		sigs[m.Name] = sig
	}

	return sigs, nil
}

// sigKey identifies a memoized signature; func types are cached both as values and as methods.
type sigKey struct {
	t      reflect.Type
	method bool
}

// cachedSig returns the memoized signature for key along with the current generation, which
// must be passed to storeSig once the signature has been computed.
func (e *Encoder) cachedSig(key sigKey) (string, uint64, bool) {
	e.sigMutex.RLock()
	defer e.sigMutex.RUnlock()

	sig, ok := e.sigs[key]
	return sig, e.sigGen, ok
}

// storeSig memoizes sig unless RegisterClass ran since gen was read, as sig may then have been
// computed from outdated class mappings.
func (e *Encoder) storeSig(key sigKey, sig string, gen uint64) {
	e.sigMutex.Lock()
	defer e.sigMutex.Unlock()

	if e.sigGen != gen {
		return
	}
	e.sigs[key] = sig
}

func (e *Encoder) log(format string, args ...any) {
	if !e.Verbose {
		return
	}
	if e.logCb != nil {
		e.logCb(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
