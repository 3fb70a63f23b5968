package snapshot

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/compress"
	"github.com/arloliu/axmeta/endian"
	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/internal/collision"
	"github.com/arloliu/axmeta/internal/hash"
	"github.com/arloliu/axmeta/internal/pool"
	"github.com/arloliu/axmeta/store"
)

// Encoder serializes stores into snapshots. An Encoder can be reused for many
// stores but is not safe for concurrent use.
type Encoder struct {
	cfg     *Config
	codec   compress.Codec
	tracker *collision.Tracker
}

// NewEncoder creates an encoder.
//
// Parameters:
//   - opts: WithCompression, WithBigEndian, WithLittleEndian, WithSkipUnsupported, WithLogger
//
// Returns:
//   - *Encoder: The configured encoder
//   - error: errs.ErrInvalidCompression for an unknown codec, or an option error
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg, codec: codec, tracker: collision.NewTracker()}, nil
}

// Encode serializes every item of s in enumeration order.
//
// Returns:
//   - errs.ErrDuplicateItem if two items share a name and attached axes
//   - errs.ErrUnsupportedItem for an item whose value cannot be stored, unless
//     WithSkipUnsupported was given
func (e *Encoder) Encode(s store.Store) ([]byte, error) {
	if uint64(s.NumDimensions()) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot: %d dimensions do not fit the header", s.NumDimensions())
	}

	e.tracker.Reset()
	engine := endian.For(e.cfg.bigEndian)

	bb := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(bb)

	skipped := 0
	for item := range s.Items() {
		kind, value, ok := classify(item, s.NumDimensions())
		if !ok {
			if !e.cfg.skipUnsupported {
				return nil, fmt.Errorf("%w: %q of type %v", errs.ErrUnsupportedItem, item.Name(), item.Type())
			}
			skipped++
			e.cfg.logger.Debug("skipping unsupported item",
				zap.String("item", item.Name()),
				zap.Stringer("attached", item.Attached()),
				zap.Any("type", item.Type()),
			)

			continue
		}

		attached := item.Attached().Slice()
		if err := e.tracker.Track(item.Name(), attached, hash.ItemKey(item.Name(), attached)); err != nil {
			return nil, err
		}
		appendRecord(bb, engine, item, kind, value)
	}

	payload := bb.Bytes()
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot: %d byte payload exceeds the format limit", len(payload))
	}

	packed, stats, err := compress.Apply(e.codec, payload)
	if err != nil {
		return nil, err
	}

	h := NewHeader(e.codec.Type())
	h.SetBigEndian(e.cfg.bigEndian)
	h.NumDims = uint32(s.NumDimensions())  //nolint:gosec
	h.ItemCount = uint32(e.tracker.Count()) //nolint:gosec
	h.PayloadSize = uint32(len(payload))    //nolint:gosec
	h.Checksum = hash.Sum(payload)

	out := make([]byte, 0, HeaderSize+len(packed))
	out = h.Append(out)
	out = append(out, packed...)

	e.cfg.logger.Debug("snapshot encoded",
		zap.Int("items", e.tracker.Count()),
		zap.Int("skipped", skipped),
		zap.Stringer("compression", stats.Algorithm),
		zap.Int("payloadBytes", stats.OriginalSize),
		zap.Int("compressedBytes", stats.CompressedSize),
		zap.Float64("ratio", stats.Ratio()),
		zap.Float64("savingsPercent", stats.Savings()),
		zap.Bool("keyHashCollision", e.tracker.HasCollision()),
	)

	return out, nil
}

// Encode serializes s with a one-off encoder.
func Encode(s store.Store, opts ...Option) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return e.Encode(s)
}
