// Package info resolves typed accessor bundles bound to a metadata store.
//
// A bundle kind is registered once with a Factory, usually from an init
// function, and resolved by name against any store.Store:
//
//	attrs, err := info.As[*info.Attributes](info.KindAttributes, s)
//	title, ok := attrs.String("title")
//
// Registration is explicit; nothing is discovered by reflection.
package info

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/store"
)

// Info is a bundle of accessors bound to one store.
type Info interface {
	// Kind returns the name the bundle was resolved under.
	Kind() string
	// Store returns the store the bundle reads from.
	Store() store.Store
}

// Factory binds a new bundle to s.
type Factory func(s store.Store) (Info, error)

// Registry maps bundle kinds to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under kind.
//
// Returns errs.ErrDuplicateInfo if kind is already registered.
func (r *Registry) Register(kind string, f Factory) error {
	if kind == "" {
		return errors.New("info: kind cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("info: nil factory for %q", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateInfo, kind)
	}
	r.factories[kind] = f

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind string, f Factory) {
	if err := r.Register(kind, f); err != nil {
		panic(err)
	}
}

// Resolve constructs the bundle registered under kind, bound to s.
//
// Returns errs.ErrUnknownInfo if kind is not registered.
func (r *Registry) Resolve(kind string, s store.Store) (Info, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownInfo, kind)
	}

	return f(s)
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	return kinds
}

// Default is the process-wide registry used by the package-level functions.
var Default = NewRegistry()

func init() {
	Default.MustRegister(KindAttributes, NewAttributes)
}

// Register adds a factory to the Default registry.
func Register(kind string, f Factory) error {
	return Default.Register(kind, f)
}

// Resolve constructs a bundle from the Default registry.
func Resolve(kind string, s store.Store) (Info, error) {
	return Default.Resolve(kind, s)
}

// As resolves kind from the Default registry and asserts the bundle type.
//
// Returns errs.ErrUnknownInfo if kind is missing or resolves to a bundle that is
// not an I.
func As[I Info](kind string, s store.Store) (I, error) {
	var zero I

	in, err := Resolve(kind, s)
	if err != nil {
		return zero, err
	}
	typed, ok := in.(I)
	if !ok {
		return zero, fmt.Errorf("%w: %q resolves to %T", errs.ErrUnknownInfo, kind, in)
	}

	return typed, nil
}
