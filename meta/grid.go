package meta

import (
	"fmt"
	"slices"

	"github.com/arloliu/axmeta/errs"
)

// Addressable is a function of a lower-dimensional integer position. It backs a
// varying item; implementations must not retain pos.
type Addressable[T any] interface {
	At(pos []int64) (T, error)
}

// Func adapts a plain function to Addressable.
type Func[T any] func(pos []int64) (T, error)

// At calls f(pos).
func (f Func[T]) At(pos []int64) (T, error) {
	return f(pos)
}

// Grid is a dense row-major lookup table. Cell coordinates start at the grid
// origin, which is zero unless set with WithOrigin.
type Grid[T any] struct {
	shape   []int
	strides []int
	origin  []int64
	values  []T
}

var _ Addressable[float64] = (*Grid[float64])(nil)

// NewGrid creates a grid of the given shape over values, which are referenced,
// not copied.
//
// Returns errs.ErrInvalidGrid if shape is empty, holds a non-positive extent, or
// its product differs from len(values).
func NewGrid[T any](shape []int, values []T) (*Grid[T], error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: empty shape", errs.ErrInvalidGrid)
	}

	strides := make([]int, len(shape))
	size := 1
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] <= 0 {
			return nil, fmt.Errorf("%w: extent %d on axis %d", errs.ErrInvalidGrid, shape[i], i)
		}
		strides[i] = size
		size *= shape[i]
	}
	if size != len(values) {
		return nil, fmt.Errorf("%w: shape %v holds %d cells, got %d values", errs.ErrInvalidGrid, shape, size, len(values))
	}

	return &Grid[T]{shape: slices.Clone(shape), strides: strides, origin: make([]int64, len(shape)), values: values}, nil
}

// NewTable creates a one-dimensional grid over values.
func NewTable[T any](values []T) (*Grid[T], error) {
	return NewGrid([]int{len(values)}, values)
}

// WithOrigin returns a grid over the same cells whose first cell sits at origin.
//
// Returns errs.ErrDimensionMismatch if len(origin) differs from the grid rank.
func (g *Grid[T]) WithOrigin(origin ...int64) (*Grid[T], error) {
	if len(origin) != len(g.shape) {
		return nil, fmt.Errorf("%w: %d-D origin on %d-D grid", errs.ErrDimensionMismatch, len(origin), len(g.shape))
	}

	shifted := *g
	shifted.origin = slices.Clone(origin)

	return &shifted, nil
}

// At returns the cell at pos.
//
// Returns errs.ErrDimensionMismatch if len(pos) differs from the grid rank and
// errs.ErrInvalidAxis if a coordinate lies outside the grid.
func (g *Grid[T]) At(pos []int64) (T, error) {
	var zero T
	if len(pos) != len(g.shape) {
		return zero, fmt.Errorf("%w: %d-D position on %d-D grid", errs.ErrDimensionMismatch, len(pos), len(g.shape))
	}

	off := 0
	for i, p := range pos {
		lo := g.origin[i]
		if p < lo || p-lo >= int64(g.shape[i]) {
			return zero, fmt.Errorf("%w: coordinate %d outside [%d, %d) on grid axis %d",
				errs.ErrInvalidAxis, p, lo, lo+int64(g.shape[i]), i)
		}
		off += int(p-lo) * g.strides[i]
	}

	return g.values[off], nil
}

// Rank returns the number of grid dimensions.
func (g *Grid[T]) Rank() int {
	return len(g.shape)
}

// Shape returns a copy of the grid extents.
func (g *Grid[T]) Shape() []int {
	return slices.Clone(g.shape)
}

// Origin returns a copy of the coordinates of the first cell.
func (g *Grid[T]) Origin() []int64 {
	return slices.Clone(g.origin)
}

// Values returns the backing cells in row-major order. The slice is shared with
// the grid and must not be modified.
func (g *Grid[T]) Values() []T {
	return g.values
}
