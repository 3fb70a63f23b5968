package store

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/meta"
	"github.com/arloliu/axmeta/transform"
)

// TransformView is a read-only projection of a store through a transform from
// the store's space to the view's space.
type TransformView struct {
	source Store
	tf     *transform.Transform
	logger *zap.Logger
}

var _ Store = (*TransformView)(nil)

// NewView projects src through tf. A view of a TransformView concatenates the
// transforms and wraps the original source directly.
//
// Returns errs.ErrDimensionMismatch if tf.NumSource() != src.NumDimensions().
func NewView(src Store, tf *transform.Transform, opts ...Option) (*TransformView, error) {
	if tf.NumSource() != src.NumDimensions() {
		return nil, fmt.Errorf("%w: %d-D transform on %d-D store", errs.ErrDimensionMismatch, tf.NumSource(), src.NumDimensions())
	}

	cfg, err := newConfig(loggerOf(src), opts)
	if err != nil {
		return nil, err
	}

	if inner, ok := src.(*TransformView); ok {
		combined, err := inner.tf.Concatenate(tf)
		if err != nil {
			return nil, err
		}
		src, tf = inner.source, combined
	}

	return &TransformView{source: src, tf: tf, logger: cfg.logger}, nil
}

// Source returns the wrapped store.
func (v *TransformView) Source() Store { return v.source }

// Transform returns the transform from the source space to the view space.
func (v *TransformView) Transform() *transform.Transform { return v.tf }

// Logger returns the view's logger.
func (v *TransformView) Logger() *zap.Logger { return v.logger }

// NumDimensions implements Store.
func (v *TransformView) NumDimensions() int { return v.tf.NumTarget() }

// Writable implements Store. Views are never writable.
func (v *TransformView) Writable() bool { return false }

// Add implements Store. It always returns errs.ErrReadOnly.
func (v *TransformView) Add(meta.Item) error { return errs.ErrReadOnly }

// Find implements Store. The requested view axes are mapped to source axes
// before the source is queried; an axis added by the view carries no metadata.
func (v *TransformView) Find(name string, typ reflect.Type, dims ...int) (meta.Item, error) {
	if err := checkDims(dims, v.NumDimensions()); err != nil {
		return nil, err
	}

	srcDims := make([]int, len(dims))
	for i, d := range dims {
		s := v.tf.SourceOf(d)
		if s < 0 {
			return nil, nil
		}
		srcDims[i] = s
	}

	item, err := v.source.Find(name, typ, srcDims...)
	if err != nil || item == nil {
		return nil, err
	}

	iv, err := meta.NewItemView(item, v.tf)
	if err != nil {
		return nil, err
	}
	if visible(item, iv) && exact(iv, dims) {
		return iv, nil
	}

	// slicing can hide the source's best match or turn a superset into an
	// exact match, so rank the candidates again in view space
	return search(v.Items(), name, typ, dims), nil
}

// Items implements Store. Every source item is re-expressed in view space;
// items whose attached axes were all sliced away are omitted, and malformed
// items are skipped and logged.
func (v *TransformView) Items() iter.Seq[meta.Item] {
	return func(yield func(meta.Item) bool) {
		for item := range v.source.Items() {
			iv, err := meta.NewItemView(item, v.tf)
			if err != nil {
				v.logger.Debug("skipping item in view", zap.String("item", item.Name()), zap.Error(err))
				continue
			}
			if !visible(item, iv) {
				continue
			}
			if !yield(iv) {
				return
			}
		}
	}
}

// visible reports whether the view of item keeps at least one attachment, or
// whether item had none to begin with.
func visible(item meta.Item, view meta.Item) bool {
	return item.Attached().IsEmpty() || !view.Attached().IsEmpty()
}

// SubsampleView is a read-only projection of a store that keeps every
// steps[d]-th position along axis d. Attachments are unchanged.
type SubsampleView struct {
	source Store
	steps  []int64
	logger *zap.Logger
}

var _ Store = (*SubsampleView)(nil)

// NewSubsampleView subsamples src with one step per axis, or with a single step
// applied to every axis. A subsample view of a SubsampleView multiplies the steps.
//
// Returns errs.ErrInvalidStep for a non-positive step and errs.ErrDimensionMismatch
// for a step count that is neither 1 nor src.NumDimensions().
func NewSubsampleView(src Store, steps []int64, opts ...Option) (*SubsampleView, error) {
	n := src.NumDimensions()
	full := make([]int64, n)
	switch len(steps) {
	case n:
		copy(full, steps)
	case 1:
		for d := range full {
			full[d] = steps[0]
		}
	default:
		return nil, fmt.Errorf("%w: %d steps for %d-D store", errs.ErrDimensionMismatch, len(steps), n)
	}
	for d, s := range full {
		if s <= 0 {
			return nil, fmt.Errorf("%w: step %d on axis %d", errs.ErrInvalidStep, s, d)
		}
	}

	cfg, err := newConfig(loggerOf(src), opts)
	if err != nil {
		return nil, err
	}

	if inner, ok := src.(*SubsampleView); ok {
		for d := range full {
			full[d] *= inner.steps[d]
		}
		src = inner.source
	}

	return &SubsampleView{source: src, steps: full, logger: cfg.logger}, nil
}

// Source returns the wrapped store.
func (v *SubsampleView) Source() Store { return v.source }

// Steps returns a copy of the per-axis steps.
func (v *SubsampleView) Steps() []int64 { return slices.Clone(v.steps) }

// Logger returns the view's logger.
func (v *SubsampleView) Logger() *zap.Logger { return v.logger }

// NumDimensions implements Store.
func (v *SubsampleView) NumDimensions() int { return v.source.NumDimensions() }

// Writable implements Store. Views are never writable.
func (v *SubsampleView) Writable() bool { return false }

// Add implements Store. It always returns errs.ErrReadOnly.
func (v *SubsampleView) Add(meta.Item) error { return errs.ErrReadOnly }

// Find implements Store.
func (v *SubsampleView) Find(name string, typ reflect.Type, dims ...int) (meta.Item, error) {
	item, err := v.source.Find(name, typ, dims...)
	if err != nil || item == nil {
		return nil, err
	}

	return meta.NewSubsampleItemView(item, v.steps...)
}

// Items implements Store.
func (v *SubsampleView) Items() iter.Seq[meta.Item] {
	return func(yield func(meta.Item) bool) {
		for item := range v.source.Items() {
			sv, err := meta.NewSubsampleItemView(item, v.steps...)
			if err != nil {
				v.logger.Debug("skipping item in subsample view", zap.String("item", item.Name()), zap.Error(err))
				continue
			}
			if !yield(sv) {
				return
			}
		}
	}
}
