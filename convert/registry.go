// Package convert turns raw argument strings into typed values.
//
// A Registry maps target types (and converter names) to conversion functions. The Engine
// consults a Registry first and then falls back to enums, one level of collections and
// maps, pointers and finally encoding.TextUnmarshaler or Set(string) error.
package convert

import (
	"reflect"
	"sort"
	"sync"
)

// Func converts a raw string into a value
type Func func(raw string) (any, error)

type enumTable struct {
	values map[string]any
	names  []string
}

// Registry is a concurrency-safe table of converters. Converters are registered by target
// type, or by name for use on individual parameters, and enum types by their value table.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Func
	named  map[string]Func
	enums  map[reflect.Type]*enumTable
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns an isolated registry holding the built-in converters
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)

	return r
}

// NewEmptyRegistry returns a registry without any converter
func NewEmptyRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Func),
		named:  make(map[string]Func),
		enums:  make(map[reflect.Type]*enumTable),
	}
}

// Register sets the converter for t, replacing any earlier one
func (r *Registry) Register(t reflect.Type, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[t] = fn
}

// Lookup returns the converter registered for t. An unregistered type is not an error.
func (r *Registry) Lookup(t reflect.Type) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.byType[t]

	return fn, ok
}

// RegisterNamed sets the converter known as name
func (r *Registry) RegisterNamed(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named[name] = fn
}

// Named returns the converter known as name
func (r *Registry) Named(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.named[name]

	return fn, ok
}

// RegisterEnumValues declares t as an enum whose constants are looked up by exact name
func (r *Registry) RegisterEnumValues(t reflect.Type, values map[string]any) {
	table := &enumTable{values: make(map[string]any, len(values))}
	for name, v := range values {
		table.values[name] = v
		table.names = append(table.names, name)
	}
	sort.Strings(table.names)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums[t] = table
}

// IsEnum reports whether t was registered as an enum
func (r *Registry) IsEnum(t reflect.Type) bool {
	_, ok := r.enum(t)
	return ok
}

// EnumNames returns the sorted constant names of the enum t, or nil if t is not an enum
func (r *Registry) EnumNames(t reflect.Type) []string {
	table, ok := r.enum(t)
	if !ok {
		return nil
	}

	return append([]string(nil), table.names...)
}

// Clone returns an independent copy of r
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := NewEmptyRegistry()
	for t, fn := range r.byType {
		c.byType[t] = fn
	}
	for name, fn := range r.named {
		c.named[name] = fn
	}
	for t, table := range r.enums {
		c.enums[t] = table
	}

	return c
}

func (r *Registry) enum(t reflect.Type) (*enumTable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.enums[t]

	return table, ok
}

// TypeFor returns the reflect.Type of T, including interface types
func TypeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register sets the converter for T in r
func Register[T any](r *Registry, fn func(raw string) (T, error)) {
	r.Register(TypeFor[T](), wrap(fn))
}

// RegisterNamed sets the converter known as name in r
func RegisterNamed[T any](r *Registry, name string, fn func(raw string) (T, error)) {
	r.RegisterNamed(name, wrap(fn))
}

// RegisterEnum declares T as an enum with the given constants
func RegisterEnum[T comparable](r *Registry, values map[string]T) {
	boxed := make(map[string]any, len(values))
	for name, v := range values {
		boxed[name] = v
	}
	r.RegisterEnumValues(TypeFor[T](), boxed)
}

func wrap[T any](fn func(raw string) (T, error)) Func {
	return func(raw string) (any, error) {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
