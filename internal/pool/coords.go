package pool

import "sync"

var coordPool = sync.Pool{
	New: func() any { return &[]int64{} },
}

// GetCoords retrieves a zeroed coordinate tuple of length n from the pool.
//
// The tuple is confined to the calling goroutine until the returned cleanup
// function is called; it must not be retained afterwards.
//
// Example:
//
//	src, release := pool.GetCoords(tf.NumSource())
//	defer release()
func GetCoords(n int) ([]int64, func()) {
	ptr, _ := coordPool.Get().(*[]int64)
	coords := *ptr

	if cap(coords) < n {
		coords = make([]int64, n)
	} else {
		coords = coords[:n]
		clear(coords)
	}
	*ptr = coords

	return coords, func() { coordPool.Put(ptr) }
}
