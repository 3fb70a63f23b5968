package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/arloliu/axmeta/endian"
	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
	"github.com/arloliu/axmeta/internal/pool"
	"github.com/arloliu/axmeta/meta"
)

// classify returns the record kind for item and the value the record stores,
// or false if the item cannot be stored in a snapshot. numDims is the
// dimensionality of the store being encoded.
//
// A varying item is stored as a grid. Items seen through views are sampled in
// view space over the cells their root grid covers.
func classify(item meta.Item, numDims int) (format.Kind, any, bool) {
	if item.IsConstant() || item.Varying().IsEmpty() {
		switch v := item.Value().(type) {
		case bool:
			return format.KindBool, v, true
		case int64:
			return format.KindInt64, v, true
		case float64:
			return format.KindFloat64, v, true
		case string:
			return format.KindString, v, true
		}

		return 0, nil, false
	}

	switch item.Type() {
	case meta.TypeOf[int64]():
		return gridKind(format.KindInt64Grid, sampleGrid[int64](item, numDims))
	case meta.TypeOf[float64]():
		return gridKind(format.KindFloat64Grid, sampleGrid[float64](item, numDims))
	case meta.TypeOf[string]():
		return gridKind(format.KindStringGrid, sampleGrid[string](item, numDims))
	}

	return 0, nil, false
}

func gridKind[T any](kind format.Kind, g *meta.Grid[T]) (format.Kind, any, bool) {
	if g == nil {
		return 0, nil, false
	}

	return kind, g, true
}

// sampleGrid returns the grid holding item's values over its varying axes, or
// nil if item has no finite grid extent or its extent misses the origin.
func sampleGrid[T any](item meta.Item, numDims int) *meta.Grid[T] {
	if v, ok := item.(*meta.VaryingItem[T]); ok {
		if g, ok := v.Backing().(*meta.Grid[T]); ok && g.Rank() == item.Varying().Len() {
			return g
		}

		return nil
	}

	lo, hi, ok := extent(item)
	if !ok {
		return nil
	}

	// a decoded item must answer at the origin
	shape := make([]int, len(lo))
	cells := 1
	for i := range lo {
		if lo[i] > 0 || hi[i] <= 0 {
			return nil
		}
		shape[i] = int(hi[i] - lo[i])
		cells *= shape[i]
	}

	varying := item.Varying()
	pos := make([]int64, max(numDims, varying.Max()+1))
	idx := slices.Clone(lo)
	values := make([]T, 0, cells)
	for range cells {
		for i, c := range idx {
			pos[varying.At(i)] = c
		}
		v, err := item.At(pos)
		if err != nil {
			return nil
		}
		tv, ok := v.(T)
		if !ok {
			return nil
		}
		values = append(values, tv)

		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < hi[i] {
				break
			}
			idx[i] = lo[i]
		}
	}

	g, err := meta.NewGrid(shape, values)
	if err != nil {
		return nil
	}
	if g, err = g.WithOrigin(lo...); err != nil {
		return nil
	}

	return g
}

// gridBounds is satisfied by *meta.Grid of any cell type.
type gridBounds interface {
	Shape() []int
	Origin() []int64
}

// extent returns the half-open coordinate range [lo, hi) covered along each
// varying axis of item, in the order of item.Varying().
func extent(item meta.Item) ([]int64, []int64, bool) {
	var backing any
	switch v := item.(type) {
	case *meta.ItemView:
		return viewExtent(v)
	case *meta.SubsampleItemView:
		return subsampleExtent(v)
	case *meta.VaryingItem[int64]:
		backing = v.Backing()
	case *meta.VaryingItem[float64]:
		backing = v.Backing()
	case *meta.VaryingItem[string]:
		backing = v.Backing()
	}

	g, ok := backing.(gridBounds)
	if !ok {
		return nil, nil, false
	}
	shape, lo := g.Shape(), g.Origin()
	if len(shape) != item.Varying().Len() {
		return nil, nil, false
	}
	hi := make([]int64, len(shape))
	for i, n := range shape {
		hi[i] = lo[i] + int64(n)
	}

	return lo, hi, true
}

func viewExtent(v *meta.ItemView) ([]int64, []int64, bool) {
	srcLo, srcHi, ok := extent(v.Source())
	if !ok {
		return nil, nil, false
	}

	src, view, tf := v.Source().Varying(), v.Varying().Slice(), v.Transform()
	lo := make([]int64, len(view))
	hi := make([]int64, len(view))
	for k := range src.Len() {
		t := tf.TargetOf(src.At(k))
		if t < 0 {
			continue
		}
		i := slices.Index(view, t)
		c := tf.Component(t)
		if c.Inverted {
			lo[i], hi[i] = c.Translation-srcHi[k]+1, c.Translation-srcLo[k]+1
		} else {
			lo[i], hi[i] = srcLo[k]+c.Translation, srcHi[k]+c.Translation
		}
	}

	return lo, hi, true
}

func subsampleExtent(v *meta.SubsampleItemView) ([]int64, []int64, bool) {
	lo, hi, ok := extent(v.Source())
	if !ok {
		return nil, nil, false
	}

	steps := v.Steps()
	varying := v.Varying()
	for i := range lo {
		if d := varying.At(i); d < len(steps) {
			lo[i], hi[i] = ceilDiv(lo[i], steps[d]), ceilDiv(hi[i], steps[d])
		}
	}

	return lo, hi, true
}

// ceilDiv divides by a positive step, rounding up.
func ceilDiv(a, step int64) int64 {
	q := a / step
	if a%step != 0 && a > 0 {
		q++
	}

	return q
}

// kindType returns the value type of items decoded from records of kind k.
func kindType(k format.Kind) reflect.Type {
	switch k {
	case format.KindBool:
		return meta.TypeOf[bool]()
	case format.KindInt64, format.KindInt64Grid:
		return meta.TypeOf[int64]()
	case format.KindFloat64, format.KindFloat64Grid:
		return meta.TypeOf[float64]()
	case format.KindString, format.KindStringGrid:
		return meta.TypeOf[string]()
	default:
		return nil
	}
}

func appendAxes(bb *pool.ByteBuffer, axes meta.Axes) {
	bb.B = binary.AppendUvarint(bb.B, uint64(axes.Len())) //nolint:gosec
	for i := range axes.Len() {
		bb.B = binary.AppendUvarint(bb.B, uint64(axes.At(i))) //nolint:gosec
	}
}

func appendString(bb *pool.ByteBuffer, s string) {
	bb.B = binary.AppendUvarint(bb.B, uint64(len(s)))
	_, _ = bb.WriteString(s)
}

// appendRecord appends the record of item, already classified as kind with
// value, to bb.
func appendRecord(bb *pool.ByteBuffer, engine endian.Engine, item meta.Item, kind format.Kind, value any) {
	appendString(bb, item.Name())
	appendAxes(bb, item.Attached())
	appendAxes(bb, item.Varying())
	_ = bb.WriteByte(byte(kind))

	switch kind {
	case format.KindBool:
		if value.(bool) {
			_ = bb.WriteByte(1)
		} else {
			_ = bb.WriteByte(0)
		}
	case format.KindInt64:
		bb.B = binary.AppendVarint(bb.B, value.(int64))
	case format.KindFloat64:
		bb.B = engine.AppendUint64(bb.B, math.Float64bits(value.(float64)))
	case format.KindString:
		appendString(bb, value.(string))
	case format.KindInt64Grid:
		g := value.(*meta.Grid[int64])
		appendShape(bb, g.Shape(), g.Origin())
		for _, v := range g.Values() {
			bb.B = binary.AppendVarint(bb.B, v)
		}
	case format.KindFloat64Grid:
		g := value.(*meta.Grid[float64])
		appendShape(bb, g.Shape(), g.Origin())
		bb.Grow(8 * len(g.Values()))
		for _, v := range g.Values() {
			bb.B = engine.AppendUint64(bb.B, math.Float64bits(v))
		}
	case format.KindStringGrid:
		g := value.(*meta.Grid[string])
		appendShape(bb, g.Shape(), g.Origin())
		for _, v := range g.Values() {
			appendString(bb, v)
		}
	}
}

func appendShape(bb *pool.ByteBuffer, shape []int, origin []int64) {
	bb.B = binary.AppendUvarint(bb.B, uint64(len(shape)))
	for _, n := range shape {
		bb.B = binary.AppendUvarint(bb.B, uint64(n)) //nolint:gosec
	}
	for _, o := range origin {
		bb.B = binary.AppendVarint(bb.B, o)
	}
}

// cursor reads record fields from a payload. The first failure sticks: later
// reads return zero values and err keeps the original cause.
type cursor struct {
	data []byte
	off  int
	err  error
}

func (c *cursor) fail(msg string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: offset %d: %s", errs.ErrInvalidSnapshot, c.off, fmt.Sprintf(msg, args...))
	}
}

func (c *cursor) uvarint() uint64 {
	if c.err != nil {
		return 0
	}
	v, n := binary.Uvarint(c.data[c.off:])
	if n <= 0 {
		c.fail("bad uvarint")
		return 0
	}
	c.off += n

	return v
}

func (c *cursor) varint() int64 {
	if c.err != nil {
		return 0
	}
	v, n := binary.Varint(c.data[c.off:])
	if n <= 0 {
		c.fail("bad varint")
		return 0
	}
	c.off += n

	return v
}

// length reads a uvarint that counts elements of at least unit bytes each and
// rejects counts the rest of the payload cannot hold.
func (c *cursor) length(unit int) int {
	n := c.uvarint()
	if c.err == nil && n > uint64((len(c.data)-c.off)/unit) { //nolint:gosec
		c.fail("length %d exceeds payload", n)
		return 0
	}

	return int(n) //nolint:gosec
}

func (c *cursor) next(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n > len(c.data)-c.off {
		c.fail("need %d bytes, %d left", n, len(c.data)-c.off)
		return nil
	}
	b := c.data[c.off : c.off+n]
	c.off += n

	return b
}

func (c *cursor) readByte() byte {
	if b := c.next(1); b != nil {
		return b[0]
	}

	return 0
}

func (c *cursor) readString() string {
	return string(c.next(c.length(1)))
}

func (c *cursor) axes(numDims int) meta.Axes {
	n := c.length(1)
	idx := make([]int, 0, n)
	for range n {
		a := c.uvarint()
		if c.err == nil && a >= uint64(numDims) { //nolint:gosec
			c.fail("axis %d outside %d dimensions", a, numDims)
		}
		idx = append(idx, int(a)) //nolint:gosec
	}
	if c.err != nil {
		return meta.Axes{}
	}

	axes, err := meta.NewAxes(idx...)
	if err != nil {
		c.fail("%v", err)
	}

	return axes
}

// shape reads a grid's extents and origin and returns them with the cell count.
func (c *cursor) shape() ([]int, []int64, int) {
	rank := c.length(1)
	shape := make([]int, rank)
	cells := 1
	for i := range shape {
		n := c.length(1)
		if c.err == nil && n == 0 {
			c.fail("empty grid extent")
		}
		shape[i] = n
		if c.err == nil && cells > len(c.data)/max(n, 1) {
			c.fail("grid of %v exceeds payload", shape[:i+1])
		}
		cells *= max(n, 1)
	}
	if c.err == nil && rank == 0 {
		c.fail("grid without dimensions")
	}
	origin := make([]int64, rank)
	for i := range origin {
		origin[i] = c.varint()
	}

	return shape, origin, cells
}

// record is an indexed, not yet materialized item.
type record struct {
	name     string
	attached meta.Axes
	varying  meta.Axes
	kind     format.Kind
	value    []byte
}

// readRecord indexes the next record, skipping over its value bytes.
func (c *cursor) readRecord(engine endian.Engine, numDims int) record {
	r := record{
		name:     c.readString(),
		attached: c.axes(numDims),
		varying:  c.axes(numDims),
		kind:     format.Kind(c.readByte()),
	}
	if c.err != nil {
		return r
	}
	if r.name == "" {
		c.fail("empty item name")
		return r
	}
	if r.kind.IsGrid() == r.varying.IsEmpty() {
		c.fail("kind %s with varying axes %s", r.kind, r.varying)
		return r
	}

	start := c.off
	c.value(engine, r.kind, nil)
	if c.err == nil {
		r.value = c.data[start:c.off]
	}

	return r
}

// value reads a value of kind. With a nil sink the value is only skipped;
// otherwise the decoded value is passed to sink.
func (c *cursor) value(engine endian.Engine, kind format.Kind, sink func(any)) {
	emit := func(v any) {
		if sink != nil && c.err == nil {
			sink(v)
		}
	}

	switch kind {
	case format.KindBool:
		b := c.readByte()
		if c.err == nil && b > 1 {
			c.fail("bool byte 0x%02x", b)
		}
		emit(b == 1)
	case format.KindInt64:
		emit(c.varint())
	case format.KindFloat64:
		if b := c.next(8); b != nil {
			emit(math.Float64frombits(engine.Uint64(b)))
		}
	case format.KindString:
		emit(c.readString())
	case format.KindInt64Grid:
		shape, origin, cells := c.shape()
		var vals []int64
		if sink != nil {
			vals = make([]int64, 0, cells)
		}
		for i := 0; i < cells && c.err == nil; i++ {
			v := c.varint()
			if sink != nil {
				vals = append(vals, v)
			}
		}
		emit(gridOf(c, shape, origin, vals))
	case format.KindFloat64Grid:
		shape, origin, cells := c.shape()
		raw := c.next(8 * cells)
		if sink != nil && raw != nil {
			vals := make([]float64, cells)
			for i := range vals {
				vals[i] = math.Float64frombits(engine.Uint64(raw[8*i:]))
			}
			emit(gridOf(c, shape, origin, vals))
		}
	case format.KindStringGrid:
		shape, origin, cells := c.shape()
		var vals []string
		if sink != nil {
			vals = make([]string, 0, cells)
		}
		for i := 0; i < cells && c.err == nil; i++ {
			v := c.readString()
			if sink != nil {
				vals = append(vals, v)
			}
		}
		emit(gridOf(c, shape, origin, vals))
	default:
		c.fail("unknown kind %s", kind)
	}
}

func gridOf[T any](c *cursor, shape []int, origin []int64, vals []T) *meta.Grid[T] {
	if c.err != nil || vals == nil {
		return nil
	}
	g, err := meta.NewGrid(shape, vals)
	if err == nil {
		g, err = g.WithOrigin(origin...)
	}
	if err != nil {
		c.fail("%v", err)
		return nil
	}

	return g
}

// materialize builds the item described by r.
func (r record) materialize(engine endian.Engine) (meta.Item, error) {
	var decoded any
	c := &cursor{data: r.value}
	c.value(engine, r.kind, func(v any) { decoded = v })
	if c.err != nil {
		return nil, fmt.Errorf("item %q: %w", r.name, c.err)
	}

	attached := r.attached.Slice()
	var (
		item meta.Item
		err  error
	)
	switch v := decoded.(type) {
	case bool:
		item, err = meta.NewConstant(r.name, v, attached...)
	case int64:
		item, err = meta.NewConstant(r.name, v, attached...)
	case float64:
		item, err = meta.NewConstant(r.name, v, attached...)
	case string:
		item, err = meta.NewConstant(r.name, v, attached...)
	case *meta.Grid[int64]:
		item, err = varyingFromGrid(r, v)
	case *meta.Grid[float64]:
		item, err = varyingFromGrid(r, v)
	case *meta.Grid[string]:
		item, err = varyingFromGrid(r, v)
	default:
		err = fmt.Errorf("no value decoded for kind %s", r.kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: item %q: %w", errs.ErrInvalidSnapshot, r.name, err)
	}

	return item, nil
}

func varyingFromGrid[T any](r record, g *meta.Grid[T]) (meta.Item, error) {
	if g.Rank() != r.varying.Len() {
		return nil, fmt.Errorf("rank %d grid for varying axes %s", g.Rank(), r.varying)
	}

	return meta.NewVarying[T](r.name, g, r.varying.Slice(), r.attached.Slice()...)
}
