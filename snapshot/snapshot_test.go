package snapshot

import (
	"iter"
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
	"github.com/arloliu/axmeta/internal/hash"
	"github.com/arloliu/axmeta/meta"
	"github.com/arloliu/axmeta/store"
)

// listStore enumerates a fixed slice, duplicates included.
type listStore struct {
	n     int
	items []meta.Item
}

func (l listStore) NumDimensions() int                                   { return l.n }
func (l listStore) Find(string, reflect.Type, ...int) (meta.Item, error) { return nil, nil }
func (l listStore) Items() iter.Seq[meta.Item]                           { return slices.Values(l.items) }
func (l listStore) Add(meta.Item) error                                  { return errs.ErrReadOnly }
func (l listStore) Writable() bool                                       { return false }

func newCatalog(t *testing.T) *store.Memory {
	t.Helper()

	s, err := store.New(5)
	require.NoError(t, err)
	for d, label := range []string{"X", "Y", "Z", "C", "T"} {
		require.NoError(t, s.Add(meta.MustConstant("axis", label, d)))
	}

	channels, err := meta.NewTable([]string{"dapi", "gfp", "rfp"})
	require.NoError(t, err)
	exposure, err := meta.NewTable([]float64{0.05, 0.2, 0.125})
	require.NoError(t, err)
	offsets, err := meta.NewGrid([]int{3, 2}, []int64{-4, 0, 4, 8, 12, 16})
	require.NoError(t, err)

	for _, item := range []meta.Item{
		meta.MustVarying[string]("channel", channels, []int{3}, 3),
		meta.MustVarying[float64]("exposure", exposure, []int{3}, 3),
		meta.MustVarying[int64]("offset", offsets, []int{3, 4}, 3, 4),
		meta.MustConstant("title", "mitosis"),
		meta.MustConstant("frames", int64(-120)),
		meta.MustConstant("pitch", 0.108, 0, 1),
		meta.MustConstant("calibrated", true),
	} {
		require.NoError(t, s.Add(item))
	}

	return s
}

func requireSameCatalog(t *testing.T, want, got store.Store) {
	t.Helper()

	wantItems := store.Collect(want)
	gotItems := store.Collect(got)
	require.Len(t, gotItems, len(wantItems))

	for i, w := range wantItems {
		g := gotItems[i]
		require.Equal(t, w.Name(), g.Name())
		require.True(t, w.Attached().Equal(g.Attached()), "%s attached", w.Name())
		require.True(t, w.Varying().Equal(g.Varying()), "%s varying", w.Name())
		require.Equal(t, w.Type(), g.Type())
		require.Equal(t, w.Value(), g.Value())
	}

	for c := range int64(3) {
		for tt := range int64(2) {
			pos := []int64{0, 0, 0, c, tt}
			for _, name := range []string{"channel", "exposure", "offset"} {
				w, err := want.Find(name, nil, 3)
				require.NoError(t, err)
				g, err := got.Find(name, nil, 3)
				require.NoError(t, err)

				wv, err := w.At(pos)
				require.NoError(t, err)
				gv, err := g.At(pos)
				require.NoError(t, err)
				require.Equal(t, wv, gv, "%s at %v", name, pos)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	src := newCatalog(t)
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range compressions {
		for _, big := range []bool{false, true} {
			name := ct.String() + "/little"
			order := WithLittleEndian()
			if big {
				name = ct.String() + "/big"
				order = WithBigEndian()
			}

			t.Run(name, func(t *testing.T) {
				data, err := Encode(src, WithCompression(ct), order)
				require.NoError(t, err)

				r, err := Open(data)
				require.NoError(t, err)
				require.Equal(t, ct, r.Header().Compression)
				require.Equal(t, big, r.Header().IsBigEndian())
				require.Equal(t, 5, r.NumDimensions())
				require.Equal(t, src.Len(), r.Len())
				requireSameCatalog(t, src, r)

				m, err := r.Decode()
				require.NoError(t, err)
				require.True(t, m.Writable())
				requireSameCatalog(t, src, m)
			})
		}
	}
}

func TestEncoder_Reuse(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	first, err := enc.Encode(newCatalog(t))
	require.NoError(t, err)
	second, err := enc.Encode(newCatalog(t))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEncoder_InvalidCompression(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0x42)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = NewEncoder(WithLogger(nil))
	require.Error(t, err)
}

func TestEncoder_DuplicateItem(t *testing.T) {
	s := listStore{n: 2, items: []meta.Item{
		meta.MustConstant("unit", "um", 0),
		meta.MustConstant("unit", "um", 1),
		meta.MustConstant("unit", "nm", 0),
	}}

	_, err := Encode(s)
	require.ErrorIs(t, err, errs.ErrDuplicateItem)
}

func TestEncoder_Unsupported(t *testing.T) {
	s, err := store.New(2)
	require.NoError(t, err)
	require.NoError(t, s.Add(meta.MustConstant("count", 7)))
	require.NoError(t, s.Add(meta.MustConstant("calibration", meta.NewAxisValues(0.1, 0.2), 0, 1)))
	fn := meta.Func[int64](func(p []int64) (int64, error) { return p[0], nil })
	require.NoError(t, s.Add(meta.MustVarying[int64]("index", fn, []int{0}, 0)))
	require.NoError(t, s.Add(meta.MustConstant("unit", "um")))

	t.Run("fails by default", func(t *testing.T) {
		_, err := Encode(s)
		require.ErrorIs(t, err, errs.ErrUnsupportedItem)
	})

	t.Run("skipped and logged", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		data, err := Encode(s, WithSkipUnsupported(), WithLogger(zap.New(core)))
		require.NoError(t, err)

		skipped := logs.FilterMessage("skipping unsupported item").All()
		require.Len(t, skipped, 3)
		require.Equal(t, "count", skipped[0].ContextMap()["item"])

		encoded := logs.FilterMessage("snapshot encoded").All()
		require.Len(t, encoded, 1)
		require.EqualValues(t, 1, encoded[0].ContextMap()["items"])
		require.Contains(t, encoded[0].ContextMap(), "ratio")
		require.Contains(t, encoded[0].ContextMap(), "savingsPercent")

		r, err := Open(data)
		require.NoError(t, err)
		require.Equal(t, 1, r.Len())
	})
}

func TestEncode_View(t *testing.T) {
	rot, err := store.Rotate(newCatalog(t), 3, 2)
	require.NoError(t, err)
	sliced, err := store.Slice(rot, 4, 0)
	require.NoError(t, err)

	data, err := Encode(sliced, WithSkipUnsupported())
	require.NoError(t, err)

	r, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 4, r.NumDimensions())

	res, err := store.Get[string](r, "axis", 2)
	require.NoError(t, err)
	require.Equal(t, "C", res.MustValue())

	res, err = store.Get[string](r, "axis", 3)
	require.NoError(t, err)
	require.Equal(t, "Z", res.MustValue())

	_, err = store.Get[string](r, "axis", 4)
	require.ErrorIs(t, err, errs.ErrInvalidAxis)
}

func TestEncode_SampledViews(t *testing.T) {
	root, err := store.New(3)
	require.NoError(t, err)
	lut, err := meta.NewTable([]int64{10, 20, 30, 40})
	require.NoError(t, err)
	require.NoError(t, root.Add(meta.MustVarying[int64]("lut", lut, []int{1}, 1)))
	require.NoError(t, root.Add(meta.MustConstant("unit", "nm")))

	permuted, err := store.Permute(root, 1, 2)
	require.NoError(t, err)
	subsampled, err := store.Subsample(root, []int64{2})
	require.NoError(t, err)
	inverted, err := store.InvertAxis(root, 1)
	require.NoError(t, err)
	stacked, err := store.Slice(subsampled, 0, 5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		view   store.Store
		axis   int
		shape  []int
		origin []int64
	}{
		{"permute", permuted, 2, []int{4}, []int64{0}},
		{"subsample", subsampled, 1, []int{2}, []int64{0}},
		{"invert", inverted, 1, []int{4}, []int64{-3}},
		{"slice over subsample", stacked, 0, []int{2}, []int64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.view)
			require.NoError(t, err)

			r, err := Open(data)
			require.NoError(t, err)
			require.Equal(t, 2, r.Len())
			require.Equal(t, tt.view.NumDimensions(), r.NumDimensions())

			want, err := tt.view.Find("lut", nil, tt.axis)
			require.NoError(t, err)
			require.NotNil(t, want)
			got, err := r.Find("lut", nil, tt.axis)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.True(t, got.Varying().EqualInts(tt.axis))

			grid, ok := got.(*meta.VaryingItem[int64]).Backing().(*meta.Grid[int64])
			require.True(t, ok)
			require.Equal(t, tt.shape, grid.Shape())
			require.Equal(t, tt.origin, grid.Origin())

			for p := int64(-5); p <= 5; p++ {
				pos := make([]int64, tt.view.NumDimensions())
				pos[tt.axis] = p
				wv, werr := want.At(pos)
				gv, gerr := got.At(pos)
				if werr != nil {
					require.ErrorIs(t, gerr, errs.ErrInvalidAxis, "at %d", p)
					continue
				}
				require.NoError(t, gerr, "at %d", p)
				require.Equal(t, wv, gv, "at %d", p)
			}
		})
	}

	t.Run("range away from the origin", func(t *testing.T) {
		shifted, err := store.Translate(root, []int64{0, 2, 0})
		require.NoError(t, err)

		_, err = Encode(shifted)
		require.ErrorIs(t, err, errs.ErrUnsupportedItem)
	})
}

func TestReader_Store(t *testing.T) {
	data, err := Encode(newCatalog(t))
	require.NoError(t, err)
	r, err := Open(data)
	require.NoError(t, err)

	require.False(t, r.Writable())
	err = r.Add(meta.MustConstant("x", true))
	require.ErrorIs(t, err, errs.ErrReadOnly)
	require.ErrorIs(t, err, errs.ErrUnsupported)
	require.NotNil(t, r.Logger())

	t.Run("decoded once", func(t *testing.T) {
		a, err := r.Find("title", nil)
		require.NoError(t, err)
		b, err := r.Find("title", nil)
		require.NoError(t, err)
		require.Same(t, a, b)
	})

	t.Run("type filter", func(t *testing.T) {
		res, err := store.Get[int64](r, "title")
		require.NoError(t, err)
		require.False(t, res.Present())

		frames, err := store.Get[int64](r, "frames")
		require.NoError(t, err)
		require.Equal(t, int64(-120), frames.MustValue())
	})

	t.Run("superset attachment", func(t *testing.T) {
		res, err := store.Get[float64](r, "pitch", 1)
		require.NoError(t, err)
		require.Equal(t, 0.108, res.MustValue())
	})

	t.Run("invalid axis", func(t *testing.T) {
		_, err := r.Find("axis", nil, 5)
		require.ErrorIs(t, err, errs.ErrInvalidAxis)
	})

	t.Run("views", func(t *testing.T) {
		rot, err := store.Rotate(r, 3, 2)
		require.NoError(t, err)
		res, err := store.Get[string](rot, "channel", 2)
		require.NoError(t, err)
		v, err := res.At([]int64{0, 0, 2, 0, 0})
		require.NoError(t, err)
		require.Equal(t, "rfp", v)
	})
}

func TestOpen_Corrupted(t *testing.T) {
	data, err := Encode(newCatalog(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		bad := slices.Clone(data)
		bad[HeaderSize+3] ^= 0xFF
		_, err := Open(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Open(data[:len(data)-5])
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)

		_, err = Open(data[:10])
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	rewrite := func(payload []byte, items uint32) []byte {
		h, err := ParseHeader(data)
		require.NoError(t, err)
		h.ItemCount = items
		h.PayloadSize = uint32(len(payload)) //nolint:gosec
		h.Checksum = hash.Sum(payload)

		return append(h.Append(nil), payload...)
	}

	t.Run("trailing bytes", func(t *testing.T) {
		payload := append(slices.Clone(data[HeaderSize:]), 0x00)
		_, err := Open(rewrite(payload, 12))
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("item count too high", func(t *testing.T) {
		_, err := Open(rewrite(slices.Clone(data[HeaderSize:]), 13))
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("duplicate record", func(t *testing.T) {
		one, err := Encode(listStore{n: 1, items: []meta.Item{meta.MustConstant("unit", "um")}}, WithCompression(format.CompressionNone))
		require.NoError(t, err)
		rec := one[HeaderSize:]
		_, err = Open(rewrite(append(slices.Clone(rec), rec...), 2))
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
		require.ErrorIs(t, err, errs.ErrDuplicateItem)
	})
}
