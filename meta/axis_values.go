package meta

import (
	"github.com/arloliu/axmeta/transform"
)

// AxisValues holds one value per axis, such as a per-axis calibration. It is
// Viewable: read through an item view, the list is reordered and filtered to
// follow the view's axes.
type AxisValues[T any] struct {
	values []T
	tf     *transform.Transform
}

var _ Viewable = (*AxisValues[int])(nil)

// NewAxisValues creates a per-axis list whose i-th value describes axis i.
func NewAxisValues[T any](values ...T) *AxisValues[T] {
	return &AxisValues[T]{values: values, tf: transform.Identity(len(values))}
}

// Len returns the number of axes in the current space.
func (a *AxisValues[T]) Len() int {
	return a.tf.NumTarget()
}

// Get returns the value describing axis d of the current space. The second
// result is false for an axis with no original counterpart, such as one added by
// a view, and for d out of range.
func (a *AxisValues[T]) Get(d int) (T, bool) {
	var zero T
	if d < 0 || d >= a.tf.NumTarget() {
		return zero, false
	}
	s := a.tf.SourceOf(d)
	if s < 0 {
		return zero, false
	}

	return a.values[s], true
}

// ViewThrough composes the list's own transform with tf.
func (a *AxisValues[T]) ViewThrough(tf *transform.Transform) (any, error) {
	combined, err := a.tf.Concatenate(tf)
	if err != nil {
		return nil, err
	}

	return &AxisValues[T]{values: a.values, tf: combined}, nil
}
