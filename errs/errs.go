// Package errs defines the sentinel errors shared by every axmeta package.
//
// Errors are matched with errors.Is. Packages return these sentinels directly or
// wrap them with fmt.Errorf("context: %w", err); the sentinel stays matchable.
//
// The taxonomy follows how callers are expected to react:
//   - ErrNotFound: a lookup produced no item. Lookups report this as an absent
//     result, not as a failure; only forced access (Result.Value) returns it.
//   - ErrInvalidAxis: an axis index outside [0, numDimensions). Always returned
//     immediately, never clamped.
//   - ErrReadOnly: mutation attempted on a view or a read-only store.
//   - ErrUnsupported: the operation is not implemented by a store backend.
package errs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound indicates that no item matches a name/axes/type combination.
	ErrNotFound = errors.New("axmeta: item not found")

	// ErrInvalidAxis indicates an axis index outside the valid range of a store,
	// view, transform or position.
	ErrInvalidAxis = errors.New("axmeta: invalid axis")

	// ErrReadOnly indicates a write against a transform-derived view or a store
	// constructed read-only.
	ErrReadOnly = errors.New("axmeta: store is read-only")

	// ErrUnsupported indicates an operation a store backend does not implement.
	ErrUnsupported = errors.New("axmeta: operation not supported")

	// ErrDimensionMismatch indicates that two dimensionalities that must agree do not,
	// e.g. a transform applied to a store of a different rank.
	ErrDimensionMismatch = errors.New("axmeta: dimension mismatch")

	// ErrInvalidStep indicates a non-positive subsample step.
	ErrInvalidStep = errors.New("axmeta: subsample step must be positive")

	// ErrInvalidItem indicates an item that cannot be stored: empty name, nil backing
	// function or a malformed axis set.
	ErrInvalidItem = errors.New("axmeta: invalid item")

	// ErrInvalidGrid indicates a grid whose shape does not match its cell count.
	ErrInvalidGrid = errors.New("axmeta: invalid grid shape")

	// ErrUnknownInfo indicates that no factory is registered for an info kind.
	ErrUnknownInfo = errors.New("axmeta: unknown info kind")

	// ErrDuplicateInfo indicates that an info kind is already registered.
	ErrDuplicateInfo = errors.New("axmeta: info kind already registered")

	// ErrDuplicateItem indicates two items with the same name and attached axes in
	// a catalog that must hold unique keys.
	ErrDuplicateItem = errors.New("axmeta: duplicate item")

	// ErrUnsupportedItem indicates an item whose value cannot be encoded.
	ErrUnsupportedItem = errors.New("axmeta: unsupported item value")

	// ErrInvalidSnapshot indicates a malformed, truncated or corrupted snapshot.
	ErrInvalidSnapshot = errors.New("axmeta: invalid snapshot")

	// ErrInvalidCompression indicates an unknown compression type.
	ErrInvalidCompression = errors.New("axmeta: invalid compression type")
)

// NotFoundError names the item and axes a failed lookup was asked for.
//
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Name string
	Axes []int
}

// NotFound returns a *NotFoundError for name and axes.
func NotFound(name string, axes ...int) *NotFoundError {
	return &NotFoundError{Name: name, Axes: append([]int(nil), axes...)}
}

func (e *NotFoundError) Error() string {
	if len(e.Axes) == 0 {
		return fmt.Sprintf("%s: %q", ErrNotFound, e.Name)
	}

	parts := make([]string, len(e.Axes))
	for i, a := range e.Axes {
		parts[i] = strconv.Itoa(a)
	}

	return fmt.Sprintf("%s: %q on axes [%s]", ErrNotFound, e.Name, strings.Join(parts, " "))
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidAxis returns an error wrapping ErrInvalidAxis for axis in a space of n dimensions.
func InvalidAxis(axis, n int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidAxis, axis, n)
}
