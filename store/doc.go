// Package store implements metadata catalogs for an N-dimensional space and the
// read-only views that follow the data through coordinate transforms.
//
// # Core Contract
//
// Store is the single contract every backend implements: a root Memory store,
// the transform and subsample views, and external format adapters such as
// snapshot.Reader. Convenience lookups (Get, Lookup, ByAxis, ByName) are free
// functions layered on the contract rather than methods each backend repeats.
//
// # Root Stores and Views
//
// A Memory store owns its items and is writable unless constructed with
// WithReadOnly. Views never own items; they wrap a source store and a transform:
//
//	root, _ := store.New(5)
//	_ = root.Add(meta.MustConstant("axis", "C", 3))
//
//	rot, _ := store.Rotate(root, 3, 2)  // view axis 2 now shows source axis 3
//	res, _ := store.Get[string](rot, "axis", 2)
//	fmt.Println(res.ValueOr("?"))      // C
//
// Slicing an axis removes the attachment to it. An item whose attached axes are
// all sliced away disappears from the view; items without any attachment are
// visible in every view. An axis added by AddDimension carries no metadata.
//
// Views always reject Add with errs.ErrReadOnly.
//
// # Thread Safety
//
// Views and read-only stores are safe for concurrent reads. A writable Memory
// store is not synchronized: populate it from one goroutine before deriving
// views or reading it concurrently.
package store
