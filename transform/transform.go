package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/axmeta/errs"
)

// Transform is an immutable integer coordinate transform from a source space to a
// target space. See the package documentation for its semantics.
type Transform struct {
	numSource int

	// per target axis
	mapping []int
	zero    []bool
	fill    []int64

	// per source axis
	translation []int64
	inverted    []bool
	toTarget    []int
}

// build allocates a transform whose targets map one-to-one onto the first
// min(numSource, numTarget) source axes. Callers adjust the tables and call finish.
func build(numSource, numTarget int) *Transform {
	t := &Transform{
		numSource:   numSource,
		mapping:     make([]int, numTarget),
		zero:        make([]bool, numTarget),
		fill:        make([]int64, numTarget),
		translation: make([]int64, numSource),
		inverted:    make([]bool, numSource),
		toTarget:    make([]int, numSource),
	}
	for i := range t.mapping {
		if i < numSource {
			t.mapping[i] = i
		} else {
			t.zero[i] = true
		}
	}

	return t
}

// finish computes the inverse component table. It panics if two targets share a
// source axis, which no exported constructor can produce.
func (t *Transform) finish() *Transform {
	for s := range t.toTarget {
		t.toTarget[s] = -1
	}
	for tgt, s := range t.mapping {
		if t.zero[tgt] {
			t.mapping[tgt] = 0
			continue
		}
		if t.toTarget[s] >= 0 {
			panic(fmt.Sprintf("transform: source axis %d feeds targets %d and %d", s, t.toTarget[s], tgt))
		}
		t.toTarget[s] = tgt
	}

	return t
}

// NumSource returns the dimensionality of the source space.
func (t *Transform) NumSource() int {
	return t.numSource
}

// NumTarget returns the dimensionality of the target space.
func (t *Transform) NumTarget() int {
	return len(t.mapping)
}

// SourceOf returns the source axis feeding target axis tgt, or -1 if tgt is synthetic.
func (t *Transform) SourceOf(tgt int) int {
	if t.zero[tgt] {
		return -1
	}

	return t.mapping[tgt]
}

// TargetOf returns the target axis fed by source axis s, or -1 if s was sliced away.
func (t *Transform) TargetOf(s int) int {
	return t.toTarget[s]
}

// Component describes how one target coordinate is computed.
type Component struct {
	// Source is the feeding source axis, or -1 for a synthetic target.
	Source      int
	Inverted    bool
	Translation int64
	// Fill is the fixed coordinate of a synthetic target.
	Fill int64
}

// Component returns the description of target axis tgt.
func (t *Transform) Component(tgt int) Component {
	if t.zero[tgt] {
		return Component{Source: -1, Fill: t.fill[tgt]}
	}
	s := t.mapping[tgt]

	return Component{Source: s, Inverted: t.inverted[s], Translation: t.translation[s]}
}

// IsZero reports whether target axis tgt is synthetic.
func (t *Transform) IsZero(tgt int) bool {
	return t.zero[tgt]
}

// Fill returns the fixed coordinate of a synthetic target axis.
func (t *Transform) Fill(tgt int) int64 {
	return t.fill[tgt]
}

// Translation returns the translation of source axis s.
func (t *Transform) Translation(s int) int64 {
	return t.translation[s]
}

// IsInverted reports whether source axis s is negated.
func (t *Transform) IsInverted(s int) bool {
	return t.inverted[s]
}

// Apply maps the source position src into dst.
//
// Returns errs.ErrDimensionMismatch if len(src) != NumSource or len(dst) != NumTarget.
func (t *Transform) Apply(src, dst []int64) error {
	if len(src) != t.numSource || len(dst) != len(t.mapping) {
		return fmt.Errorf("%w: apply %d->%d to %d->%d", errs.ErrDimensionMismatch,
			t.numSource, len(t.mapping), len(src), len(dst))
	}

	for tgt, s := range t.mapping {
		if t.zero[tgt] {
			dst[tgt] = t.fill[tgt]
			continue
		}
		v := src[s]
		if t.inverted[s] {
			v = -v
		}
		dst[tgt] = v + t.translation[s]
	}

	return nil
}

// Invert maps the target position tgt back into the source position dst.
//
// Coordinates of synthetic target axes are ignored. Source axes that feed no
// target are reconstructed from their translation, as if their target
// coordinate were zero; for a hyper-slice this yields the slice position.
//
// Returns errs.ErrDimensionMismatch if len(tgt) != NumTarget or len(dst) != NumSource.
func (t *Transform) Invert(tgt, dst []int64) error {
	if len(tgt) != len(t.mapping) || len(dst) != t.numSource {
		return fmt.Errorf("%w: invert %d->%d from %d->%d", errs.ErrDimensionMismatch,
			len(t.mapping), t.numSource, len(tgt), len(dst))
	}

	for s, target := range t.toTarget {
		var v int64
		if target >= 0 {
			v = tgt[target]
		}
		v -= t.translation[s]
		if t.inverted[s] {
			v = -v
		}
		dst[s] = v
	}

	return nil
}

// Concatenate returns the transform equivalent to applying t first and then next.
//
// Returns errs.ErrDimensionMismatch if t.NumTarget() != next.NumSource().
func (t *Transform) Concatenate(next *Transform) (*Transform, error) {
	if len(t.mapping) != next.numSource {
		return nil, fmt.Errorf("%w: cannot concatenate %d->%d with %d->%d", errs.ErrDimensionMismatch,
			t.numSource, len(t.mapping), next.numSource, len(next.mapping))
	}

	c := build(t.numSource, len(next.mapping))

	for s0 := range t.numSource {
		c.translation[s0] = t.translation[s0]
		c.inverted[s0] = t.inverted[s0]

		s1 := t.toTarget[s0]
		if s1 < 0 {
			continue
		}
		if next.inverted[s1] {
			c.translation[s0] = -c.translation[s0]
		}
		c.translation[s0] += next.translation[s1]
		c.inverted[s0] = t.inverted[s0] != next.inverted[s1]
	}

	for tgt := range next.mapping {
		c.zero[tgt] = false
		if next.zero[tgt] {
			c.zero[tgt] = true
			c.fill[tgt] = next.fill[tgt]
			continue
		}

		s1 := next.mapping[tgt]
		if t.zero[s1] {
			v := t.fill[s1]
			if next.inverted[s1] {
				v = -v
			}
			c.zero[tgt] = true
			c.fill[tgt] = v + next.translation[s1]
			continue
		}
		c.mapping[tgt] = t.mapping[s1]
	}

	return c.finish(), nil
}

// IsIdentity reports whether t maps every position onto itself.
func (t *Transform) IsIdentity() bool {
	if t.numSource != len(t.mapping) {
		return false
	}
	for tgt, s := range t.mapping {
		if t.zero[tgt] || s != tgt || t.translation[s] != 0 || t.inverted[s] {
			return false
		}
	}

	return true
}

// Equal reports whether t and other describe the same transform.
func (t *Transform) Equal(other *Transform) bool {
	if other == nil {
		return false
	}

	return t.numSource == other.numSource &&
		slices.Equal(t.mapping, other.mapping) &&
		slices.Equal(t.zero, other.zero) &&
		slices.Equal(t.fill, other.fill) &&
		slices.Equal(t.translation, other.translation) &&
		slices.Equal(t.inverted, other.inverted)
}

func (t *Transform) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Transform(%d->%d)[", t.numSource, len(t.mapping))
	for tgt, s := range t.mapping {
		if tgt > 0 {
			sb.WriteString(", ")
		}
		if t.zero[tgt] {
			fmt.Fprintf(&sb, "t%d=%d", tgt, t.fill[tgt])
			continue
		}
		sign := ""
		if t.inverted[s] {
			sign = "-"
		}
		fmt.Fprintf(&sb, "t%d=%ss%d%+d", tgt, sign, s, t.translation[s])
	}
	sb.WriteString("]")

	return sb.String()
}
