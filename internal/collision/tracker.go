package collision

import (
	"fmt"
	"slices"

	"github.com/arloliu/axmeta/errs"
)

type trackedKey struct {
	name string
	axes []int
}

// Tracker records item keys (name plus attached axes) while a catalog is being
// encoded and detects duplicates. Keys are bucketed by their 64-bit hash; two
// different keys sharing a hash are a collision, which is recorded but allowed.
type Tracker struct {
	buckets      map[uint64][]trackedKey
	count        int
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		buckets: make(map[uint64][]trackedKey),
	}
}

// Track records the key (name, axes) under hash.
//
// Returns:
//   - errs.ErrInvalidItem if name is empty
//   - errs.ErrDuplicateItem if the same (name, axes) key was tracked before
func (t *Tracker) Track(name string, axes []int, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidItem
	}

	bucket := t.buckets[hash]
	for _, k := range bucket {
		if k.name == name && slices.Equal(k.axes, axes) {
			return fmt.Errorf("%w: %q on axes %v", errs.ErrDuplicateItem, name, axes)
		}
	}
	if len(bucket) > 0 {
		t.hasCollision = true
	}

	t.buckets[hash] = append(bucket, trackedKey{name: name, axes: slices.Clone(axes)})
	t.count++

	return nil
}

// HasCollision returns true if two distinct keys shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of tracked keys.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears all tracked keys and collision state.
func (t *Tracker) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.count = 0
	t.hasCollision = false
}
