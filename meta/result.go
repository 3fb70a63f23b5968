package meta

import (
	"github.com/arloliu/axmeta/errs"
)

// Result is the outcome of a typed lookup: either a present item whose values
// convert to T, or an absent marker naming what was requested.
//
// The zero Result is absent with an empty name.
type Result[T any] struct {
	item Item
	name string
	axes []int
}

// PresentOf wraps item as a present result. A nil item, or one whose value type
// cannot be used as T, yields an absent result: a type mismatch is reported
// exactly like a missing item.
func PresentOf[T any](item Item) Result[T] {
	if item == nil {
		return Result[T]{}
	}
	if !Compatible(item, TypeOf[T]()) {
		return Result[T]{name: item.Name(), axes: item.Attached().Slice()}
	}

	return Result[T]{item: item, name: item.Name()}
}

// Absent returns the absent result for the item name requested on axes.
func Absent[T any](name string, axes ...int) Result[T] {
	return Result[T]{name: name, axes: append([]int(nil), axes...)}
}

// Present reports whether an item was found.
func (r Result[T]) Present() bool {
	return r.item != nil
}

// Name returns the item name, or the requested name when absent.
func (r Result[T]) Name() string {
	return r.name
}

// Item returns the wrapped item and whether it is present.
func (r Result[T]) Item() (Item, bool) {
	return r.item, r.item != nil
}

// Err returns nil when present and a *errs.NotFoundError otherwise.
func (r Result[T]) Err() error {
	if r.item != nil {
		return nil
	}

	return errs.NotFound(r.name, r.axes...)
}

// Value returns the position-invariant value, or errs.ErrNotFound when absent.
func (r Result[T]) Value() (T, error) {
	var zero T
	if r.item == nil {
		return zero, r.Err()
	}

	return r.convert(r.item.Value())
}

// At returns the value at pos, or errs.ErrNotFound when absent.
func (r Result[T]) At(pos []int64) (T, error) {
	var zero T
	if r.item == nil {
		return zero, r.Err()
	}

	v, err := r.item.At(pos)
	if err != nil {
		return zero, err
	}

	return r.convert(v)
}

// MustValue is like Value but panics when the value cannot be produced.
func (r Result[T]) MustValue() T {
	v, err := r.Value()
	if err != nil {
		panic(err)
	}

	return v
}

// ValueOr returns the value, or def when absent. It never fails.
func (r Result[T]) ValueOr(def T) T {
	v, err := r.Value()
	if err != nil {
		return def
	}

	return v
}

// AtOr returns the value at pos, or def when absent or unreadable at pos.
func (r Result[T]) AtOr(pos []int64, def T) T {
	v, err := r.At(pos)
	if err != nil {
		return def
	}

	return v
}

// Or returns the wrapped item when present and fallback otherwise.
func (r Result[T]) Or(fallback Item) Item {
	if r.item != nil {
		return r.item
	}

	return fallback
}

// OrElse returns r when present and fallback otherwise.
func (r Result[T]) OrElse(fallback Result[T]) Result[T] {
	if r.item != nil {
		return r
	}

	return fallback
}

func (r Result[T]) convert(v any) (T, error) {
	tv, ok := v.(T)
	if !ok {
		var zero T
		return zero, errs.NotFound(r.name, r.axes...)
	}

	return tv, nil
}
