package meta

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/internal/pool"
	"github.com/arloliu/axmeta/transform"
)

// Viewable is implemented by values that refer to positions or axes themselves.
// When such a value is read through an item view it is re-expressed in view
// space by ViewThrough, which receives the transform from the item's source
// space to the view space.
type Viewable interface {
	ViewThrough(tf *transform.Transform) (any, error)
}

// ItemView is a read-only projection of an item through a transform. It
// references the source item and never copies its data.
type ItemView struct {
	source   Item
	tf       *transform.Transform
	attached Axes
	varying  Axes
	value    any
}

var _ Item = (*ItemView)(nil)

// NewItemView projects item through tf, which maps the item's space onto the
// view space.
//
// If item is itself an *ItemView, the transforms are concatenated and the new
// view wraps the original item directly.
//
// The position-invariant value is resolved here. A Viewable value that cannot
// be re-expressed through tf makes the item malformed in the view.
//
// Returns errs.ErrInvalidAxis if an axis of item lies outside tf's source space,
// errs.ErrDimensionMismatch if a stacked view does not chain with tf, and
// errs.ErrInvalidItem if the value cannot be re-expressed.
func NewItemView(item Item, tf *transform.Transform) (*ItemView, error) {
	if inner, ok := item.(*ItemView); ok {
		combined, err := inner.tf.Concatenate(tf)
		if err != nil {
			return nil, err
		}
		item, tf = inner.source, combined
	}

	attached, err := mapAxes(item.Attached(), tf)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", item.Name(), err)
	}
	varying, err := mapAxes(item.Varying(), tf)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", item.Name(), err)
	}

	v := &ItemView{source: item, tf: tf, attached: attached, varying: varying}
	if v.value, err = v.resolve(); err != nil {
		return nil, fmt.Errorf("%w: %q in view: %w", errs.ErrInvalidItem, item.Name(), err)
	}

	return v, nil
}

// resolve computes the value in view space. A varying source is read at the
// view origin; when the origin is not addressable its own default is used.
func (v *ItemView) resolve() (any, error) {
	if !v.source.IsConstant() {
		origin, release := pool.GetCoords(v.tf.NumTarget())
		defer release()
		if val, err := v.At(origin); err == nil {
			return val, nil
		}
	}

	return v.reexpress(v.source.Value())
}

// mapAxes maps source axes to view axes and drops the ones sliced away.
func mapAxes(axes Axes, tf *transform.Transform) (Axes, error) {
	if axes.IsEmpty() {
		return Axes{}, nil
	}
	if axes.Max() >= tf.NumSource() {
		return Axes{}, errs.InvalidAxis(axes.Max(), tf.NumSource())
	}

	mapped := make([]int, 0, axes.Len())
	for i := range axes.Len() {
		if t := tf.TargetOf(axes.At(i)); t >= 0 {
			mapped = append(mapped, t)
		}
	}
	slices.Sort(mapped)

	return NewAxes(mapped...)
}

// Source returns the wrapped item.
func (v *ItemView) Source() Item { return v.source }

// Transform returns the transform from the source item's space to the view space.
func (v *ItemView) Transform() *transform.Transform { return v.tf }

func (v *ItemView) Name() string       { return v.source.Name() }
func (v *ItemView) Attached() Axes     { return v.attached }
func (v *ItemView) Varying() Axes      { return v.varying }
func (v *ItemView) IsConstant() bool   { return v.source.IsConstant() }
func (v *ItemView) Type() reflect.Type { return v.source.Type() }

// Value returns the position-invariant value in view space. For a varying
// source it is the value at the view origin.
func (v *ItemView) Value() any { return v.value }

// At maps the view position pos back into the source space, reads the source
// item there and re-expresses a Viewable result in view space.
//
// Returns errs.ErrDimensionMismatch if pos is shorter than the view space.
func (v *ItemView) At(pos []int64) (any, error) {
	n := v.tf.NumTarget()
	if len(pos) < n {
		return nil, fmt.Errorf("%w: %d-D position in %d-D view of %q", errs.ErrDimensionMismatch, len(pos), n, v.source.Name())
	}
	if v.source.IsConstant() && v.value != nil {
		return v.value, nil
	}

	src, release := pool.GetCoords(v.tf.NumSource())
	defer release()
	if err := v.tf.Invert(pos[:n], src); err != nil {
		return nil, err
	}

	val, err := v.source.At(src)
	if err != nil {
		return nil, err
	}

	return v.reexpress(val)
}

func (v *ItemView) reexpress(val any) (any, error) {
	if vv, ok := val.(Viewable); ok {
		return vv.ViewThrough(v.tf)
	}

	return val, nil
}

// SubsampleItemView is a read-only projection of an item that scales every
// position by a per-axis step before reading the source. Attachments are
// unchanged.
type SubsampleItemView struct {
	source Item
	steps  []int64
}

var _ Item = (*SubsampleItemView)(nil)

// NewSubsampleItemView wraps item so that view position p reads the source at
// p[d]*steps[d]. Stacked subsample views multiply their steps.
//
// Returns errs.ErrInvalidStep for a non-positive step.
func NewSubsampleItemView(item Item, steps ...int64) (*SubsampleItemView, error) {
	for d, s := range steps {
		if s <= 0 {
			return nil, fmt.Errorf("%w: step %d on axis %d", errs.ErrInvalidStep, s, d)
		}
	}

	combined := slices.Clone(steps)
	if inner, ok := item.(*SubsampleItemView); ok {
		if len(inner.steps) > len(combined) {
			combined = append(combined, inner.steps[len(combined):]...)
		}
		for d := range min(len(inner.steps), len(steps)) {
			combined[d] *= inner.steps[d]
		}
		item = inner.source
	}

	return &SubsampleItemView{source: item, steps: combined}, nil
}

// Source returns the wrapped item.
func (v *SubsampleItemView) Source() Item { return v.source }

// Steps returns a copy of the per-axis steps.
func (v *SubsampleItemView) Steps() []int64 { return slices.Clone(v.steps) }

func (v *SubsampleItemView) Name() string       { return v.source.Name() }
func (v *SubsampleItemView) Attached() Axes     { return v.source.Attached() }
func (v *SubsampleItemView) Varying() Axes      { return v.source.Varying() }
func (v *SubsampleItemView) IsConstant() bool   { return v.source.IsConstant() }
func (v *SubsampleItemView) Type() reflect.Type { return v.source.Type() }

// Value returns the source value; the origin is a fixed point of subsampling.
func (v *SubsampleItemView) Value() any { return v.source.Value() }

// At reads the source at pos scaled by the steps.
func (v *SubsampleItemView) At(pos []int64) (any, error) {
	if v.source.IsConstant() {
		return v.source.Value(), nil
	}

	scaled, release := pool.GetCoords(len(pos))
	defer release()
	for d, p := range pos {
		if d < len(v.steps) {
			p *= v.steps[d]
		}
		scaled[d] = p
	}

	return v.source.At(scaled)
}
