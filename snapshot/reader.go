package snapshot

import (
	"fmt"
	"iter"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/compress"
	"github.com/arloliu/axmeta/endian"
	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/internal/collision"
	"github.com/arloliu/axmeta/internal/hash"
	"github.com/arloliu/axmeta/meta"
	"github.com/arloliu/axmeta/store"
)

// Reader is a read-only store backed by a snapshot. Records are indexed by
// Open; each item is decoded on first use and then cached. A Reader is safe for
// concurrent use.
type Reader struct {
	header  Header
	engine  endian.Engine
	entries []entry
	logger  *zap.Logger
}

type entry struct {
	record
	load func() (meta.Item, error)
}

var _ store.Store = (*Reader)(nil)

// Open validates a snapshot and indexes its records. The payload is copied
// when decompressed, and referenced otherwise: data must not be modified while
// the Reader is in use.
//
// Returns errs.ErrInvalidSnapshot for a malformed header, a checksum mismatch,
// a truncated or trailing record, or two records with the same key.
func Open(data []byte, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	payload, err := codec.Decompress(data[HeaderSize:], int(h.PayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", errs.ErrInvalidSnapshot, err)
	}
	if sum := hash.Sum(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: checksum 0x%016x, header says 0x%016x", errs.ErrInvalidSnapshot, sum, h.Checksum)
	}

	r := &Reader{header: h, engine: h.Engine(), logger: cfg.logger}
	if err := r.index(payload); err != nil {
		return nil, err
	}

	cfg.logger.Debug("snapshot opened",
		zap.Uint32("items", h.ItemCount),
		zap.Uint32("dims", h.NumDims),
		zap.Stringer("compression", h.Compression),
	)

	return r, nil
}

func (r *Reader) index(payload []byte) error {
	numDims := int(r.header.NumDims)
	count := int(r.header.ItemCount)
	if count > len(payload) {
		return fmt.Errorf("%w: %d items in a %d byte payload", errs.ErrInvalidSnapshot, count, len(payload))
	}

	tracker := collision.NewTracker()
	c := &cursor{data: payload}
	r.entries = make([]entry, 0, count)
	for range count {
		rec := c.readRecord(r.engine, numDims)
		if c.err != nil {
			return c.err
		}

		attached := rec.attached.Slice()
		if err := tracker.Track(rec.name, attached, hash.ItemKey(rec.name, attached)); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
		}

		e := entry{record: rec}
		e.load = sync.OnceValues(func() (meta.Item, error) {
			return rec.materialize(r.engine)
		})
		r.entries = append(r.entries, e)
	}
	if c.off != len(payload) {
		return fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidSnapshot, len(payload)-c.off)
	}

	return nil
}

// Header returns the parsed snapshot header.
func (r *Reader) Header() Header { return r.header }

// Logger returns the reader's logger.
func (r *Reader) Logger() *zap.Logger { return r.logger }

// Len returns the number of items in the snapshot.
func (r *Reader) Len() int { return len(r.entries) }

// NumDimensions implements store.Store.
func (r *Reader) NumDimensions() int { return int(r.header.NumDims) }

// Writable implements store.Store. A Reader is never writable.
func (r *Reader) Writable() bool { return false }

// Add implements store.Store. A snapshot cannot take new items, so Add always
// fails with an error matching both errs.ErrReadOnly and errs.ErrUnsupported.
func (r *Reader) Add(meta.Item) error {
	return fmt.Errorf("%w: snapshot: %w", errs.ErrReadOnly, errs.ErrUnsupported)
}

// Find implements store.Store. Candidates are matched on the index, so only the
// selected record is decoded.
func (r *Reader) Find(name string, typ reflect.Type, dims ...int) (meta.Item, error) {
	n := r.NumDimensions()
	for _, d := range dims {
		if d < 0 || d >= n {
			return nil, errs.InvalidAxis(d, n)
		}
	}
	want, err := meta.SortedAxes(dims...)
	if err != nil {
		return nil, err
	}

	first := -1
	for i := range r.entries {
		e := &r.entries[i]
		if e.name != name || !e.attached.ContainsAll(dims...) {
			continue
		}
		if typ != nil && !kindType(e.kind).AssignableTo(typ) {
			continue
		}
		if e.attached.Len() == want.Len() {
			return e.load()
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return nil, nil
	}

	return r.entries[first].load()
}

// Items implements store.Store. Records that fail to decode are skipped and
// logged.
func (r *Reader) Items() iter.Seq[meta.Item] {
	return func(yield func(meta.Item) bool) {
		for i := range r.entries {
			item, err := r.entries[i].load()
			if err != nil {
				r.logger.Debug("skipping undecodable record", zap.String("item", r.entries[i].name), zap.Error(err))
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Decode materializes every record into a new writable store.Memory.
//
// Returns the first decoding error, wrapping errs.ErrInvalidSnapshot.
func (r *Reader) Decode() (*store.Memory, error) {
	m, err := store.New(r.NumDimensions(), store.WithCapacity(len(r.entries)), store.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}

	for i := range r.entries {
		item, err := r.entries[i].load()
		if err != nil {
			return nil, err
		}
		if err := m.Add(item); err != nil {
			return nil, err
		}
	}

	return m, nil
}
