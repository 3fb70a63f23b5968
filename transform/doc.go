// Package transform implements the integer coordinate transforms that relate a
// metadata view to the store it is derived from.
//
// A Transform maps positions in a source space of NumSource dimensions (the
// underlying store) to positions in a target space of NumTarget dimensions (the
// view). Each target axis is either fed by one source axis, or synthetic: an axis
// introduced by AddDimension that has no source counterpart. Each source axis
// carries a translation and an inversion flag, so a target coordinate is
//
//	target[t] = ±source[s] + translation[s]    where s = SourceOf(t)
//
// and a synthetic target coordinate is a fixed fill value (zero when freshly added).
//
// Source axes that feed no target have been removed by HyperSlice. Their
// translation holds the negated slice position, which Invert uses to re-insert
// the fixed coordinate when a view position is mapped back to the source.
//
// # Composition
//
// Views stack by concatenating transforms rather than nesting them:
//
//	rot, _ := transform.Rotate(5, 3, 2)
//	sl, _ := transform.HyperSlice(5, 2, 9)
//	both, _ := rot.Concatenate(sl) // first rotate, then slice
//
// Concatenation is associative, so the cost of mapping a position through a view
// is independent of how many views were stacked.
//
// Subsampling scales coordinates and is not representable as a Transform; the
// store package carries subsample steps separately.
//
// # Thread Safety
//
// Transforms are immutable once constructed and safe for concurrent use. Apply
// and Invert write into caller-owned buffers and keep no scratch state.
package transform
