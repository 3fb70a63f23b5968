package meta

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/axmeta/errs"
)

// Axes is an immutable, strictly increasing set of axis indices.
type Axes struct {
	idx []int
}

// NewAxes returns the axis set holding axes, which must be non-negative and
// strictly increasing.
func NewAxes(axes ...int) (Axes, error) {
	for i, a := range axes {
		if a < 0 {
			return Axes{}, fmt.Errorf("%w: negative axis %d", errs.ErrInvalidAxis, a)
		}
		if i > 0 && axes[i-1] >= a {
			return Axes{}, fmt.Errorf("%w: axes %v are not strictly increasing", errs.ErrInvalidAxis, axes)
		}
	}
	if len(axes) == 0 {
		return Axes{}, nil
	}

	return Axes{idx: slices.Clone(axes)}, nil
}

// SortedAxes returns the axis set holding axes in increasing order with
// duplicates removed.
func SortedAxes(axes ...int) (Axes, error) {
	sorted := slices.Clone(axes)
	slices.Sort(sorted)

	return NewAxes(slices.Compact(sorted)...)
}

// Len returns the number of axes.
func (a Axes) Len() int {
	return len(a.idx)
}

// IsEmpty reports whether the set holds no axis.
func (a Axes) IsEmpty() bool {
	return len(a.idx) == 0
}

// At returns the i-th axis in increasing order.
func (a Axes) At(i int) int {
	return a.idx[i]
}

// Max returns the largest axis, or -1 for an empty set.
func (a Axes) Max() int {
	if len(a.idx) == 0 {
		return -1
	}

	return a.idx[len(a.idx)-1]
}

// Contains reports whether axis is in the set.
func (a Axes) Contains(axis int) bool {
	_, ok := slices.BinarySearch(a.idx, axis)
	return ok
}

// ContainsAll reports whether every axis in axes is in the set.
func (a Axes) ContainsAll(axes ...int) bool {
	for _, x := range axes {
		if !a.Contains(x) {
			return false
		}
	}

	return true
}

// Equal reports whether a and other hold the same axes.
func (a Axes) Equal(other Axes) bool {
	return slices.Equal(a.idx, other.idx)
}

// EqualInts reports whether the set holds exactly axes, in order.
func (a Axes) EqualInts(axes ...int) bool {
	return slices.Equal(a.idx, axes)
}

// Slice returns a copy of the axes.
func (a Axes) Slice() []int {
	return slices.Clone(a.idx)
}

func (a Axes) String() string {
	parts := make([]string, len(a.idx))
	for i, x := range a.idx {
		parts[i] = strconv.Itoa(x)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
