// Package meta defines metadata items: named values attached to a subset of the
// axes of an N-dimensional space.
//
// An item is either constant, with one value for every position, or varying, with
// a value that changes along its varying axes. A varying item is backed by a
// lower-dimensional Addressable (typically a Grid) that is indexed with the
// position components at the varying axes, in declaration order:
//
//	lut, _ := meta.NewTable([]float64{0.1, 0.2, 0.3})
//	item, _ := meta.NewVarying[float64]("exposure", lut, []int{3}, 3)
//	v, _ := item.At([]int64{10, 20, 0, 2, 7}) // 0.3
//
// # Absent items
//
// Lookups never fail for a missing item. They return a Result that is either
// present or absent, and the caller picks soft or hard failure at the call site:
//
//	scale := res.ValueOr(1.0)    // soft: default when absent
//	scale, err := res.Value()    // hard: errs.ErrNotFound when absent
//
// # Views
//
// NewItemView re-expresses an item through a transform.Transform without copying
// its data; stacked views concatenate their transforms. Values implementing
// Viewable (for example AxisValues) are re-expressed as well, so both the query
// position and the returned value live in view space.
//
// Items, grids and views are immutable and safe for concurrent use.
package meta
