package meta

import (
	"fmt"
	"reflect"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/internal/pool"
)

// Item is a single named metadatum attached to a set of axes.
//
// Positions passed to At are full positions in the item's space: only the
// components at Varying() are read, and implementations must not retain pos.
type Item interface {
	// Name returns the item name.
	Name() string
	// Attached returns the axes the item semantically concerns.
	Attached() Axes
	// Varying returns the axes along which the value changes. It is empty for a
	// constant item and need not be a subset of Attached.
	Varying() Axes
	// IsConstant reports whether the value is the same at every position.
	IsConstant() bool
	// Type returns the static type of the item's value.
	Type() reflect.Type
	// Value returns the position-invariant value. For a varying item it is the
	// value at the origin.
	Value() any
	// At returns the value at pos.
	At(pos []int64) (any, error)
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Compatible reports whether values of item can be used as typ. A nil typ
// accepts every item.
func Compatible(item Item, typ reflect.Type) bool {
	if typ == nil {
		return true
	}
	it := item.Type()
	if it == nil {
		return false
	}

	return it.AssignableTo(typ)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidItem)
	}

	return nil
}

// ConstantItem is an item whose value does not depend on position.
type ConstantItem[T any] struct {
	name     string
	attached Axes
	value    T
}

var _ Item = (*ConstantItem[int])(nil)

// NewConstant creates a constant item attached to the given axes.
//
// Returns errs.ErrInvalidItem for an empty name and errs.ErrInvalidAxis for a
// negative or non-increasing axis list.
func NewConstant[T any](name string, value T, attached ...int) (*ConstantItem[T], error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	axes, err := NewAxes(attached...)
	if err != nil {
		return nil, err
	}

	return &ConstantItem[T]{name: name, attached: axes, value: value}, nil
}

// MustConstant is like NewConstant but panics on error.
func MustConstant[T any](name string, value T, attached ...int) *ConstantItem[T] {
	item, err := NewConstant(name, value, attached...)
	if err != nil {
		panic(err)
	}

	return item
}

func (c *ConstantItem[T]) Name() string       { return c.name }
func (c *ConstantItem[T]) Attached() Axes     { return c.attached }
func (c *ConstantItem[T]) Varying() Axes      { return Axes{} }
func (c *ConstantItem[T]) IsConstant() bool   { return true }
func (c *ConstantItem[T]) Type() reflect.Type { return TypeOf[T]() }
func (c *ConstantItem[T]) Value() any         { return c.value }

// Get returns the typed value.
func (c *ConstantItem[T]) Get() T {
	return c.value
}

// At returns the value; pos is ignored.
func (c *ConstantItem[T]) At([]int64) (any, error) {
	return c.value, nil
}

// VaryingItem is an item whose value is read from a backing function indexed by
// the position components at its varying axes.
type VaryingItem[T any] struct {
	name     string
	attached Axes
	varying  Axes
	fn       Addressable[T]
	origin   T
}

var _ Item = (*VaryingItem[int])(nil)

// NewVarying creates an item backed by fn, which is addressed with the position
// components at varying, in that order.
//
// The value at the origin is resolved eagerly; a backing function that cannot
// answer at the origin is rejected with errs.ErrInvalidItem.
func NewVarying[T any](name string, fn Addressable[T], varying []int, attached ...int) (*VaryingItem[T], error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q has no backing function", errs.ErrInvalidItem, name)
	}
	if len(varying) == 0 {
		return nil, fmt.Errorf("%w: %q has no varying axes", errs.ErrInvalidItem, name)
	}
	vAxes, err := NewAxes(varying...)
	if err != nil {
		return nil, err
	}
	aAxes, err := NewAxes(attached...)
	if err != nil {
		return nil, err
	}

	origin, err := fn.At(make([]int64, vAxes.Len()))
	if err != nil {
		return nil, fmt.Errorf("%w: %q at origin: %w", errs.ErrInvalidItem, name, err)
	}

	return &VaryingItem[T]{name: name, attached: aAxes, varying: vAxes, fn: fn, origin: origin}, nil
}

// MustVarying is like NewVarying but panics on error.
func MustVarying[T any](name string, fn Addressable[T], varying []int, attached ...int) *VaryingItem[T] {
	item, err := NewVarying(name, fn, varying, attached...)
	if err != nil {
		panic(err)
	}

	return item
}

func (v *VaryingItem[T]) Name() string       { return v.name }
func (v *VaryingItem[T]) Attached() Axes     { return v.attached }
func (v *VaryingItem[T]) Varying() Axes      { return v.varying }
func (v *VaryingItem[T]) IsConstant() bool   { return false }
func (v *VaryingItem[T]) Type() reflect.Type { return TypeOf[T]() }
func (v *VaryingItem[T]) Value() any         { return v.origin }

// Backing returns the function the item is read from.
func (v *VaryingItem[T]) Backing() Addressable[T] {
	return v.fn
}

// At returns the value at pos.
//
// Returns errs.ErrInvalidAxis if pos does not reach the largest varying axis.
func (v *VaryingItem[T]) At(pos []int64) (any, error) {
	return v.Get(pos)
}

// Get is the typed form of At.
func (v *VaryingItem[T]) Get(pos []int64) (T, error) {
	if len(pos) <= v.varying.Max() {
		var zero T
		return zero, fmt.Errorf("%w: %d-D position for %q varying on %s", errs.ErrInvalidAxis, len(pos), v.name, v.varying)
	}

	proj, release := pool.GetCoords(v.varying.Len())
	defer release()
	for i := range proj {
		proj[i] = pos[v.varying.At(i)]
	}

	return v.fn.At(proj)
}
