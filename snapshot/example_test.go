package snapshot_test

import (
	"fmt"

	"github.com/arloliu/axmeta/format"
	"github.com/arloliu/axmeta/meta"
	"github.com/arloliu/axmeta/snapshot"
	"github.com/arloliu/axmeta/store"
)

func ExampleOpen() {
	s, _ := store.New(3)
	_ = s.Add(meta.MustConstant("axis", "X", 0))
	_ = s.Add(meta.MustConstant("axis", "Y", 1))
	_ = s.Add(meta.MustConstant("axis", "T", 2))
	_ = s.Add(meta.MustConstant("interval", 2.5, 2))

	data, err := snapshot.Encode(s, snapshot.WithCompression(format.CompressionZstd))
	if err != nil {
		fmt.Println(err)
		return
	}

	r, err := snapshot.Open(data)
	if err != nil {
		fmt.Println(err)
		return
	}

	// swap X and T on the decoded catalog
	view, _ := store.Permute(r, 0, 2)
	label, _ := store.Get[string](view, "axis", 0)
	interval, _ := store.Get[float64](view, "interval", 0)

	fmt.Println(r.Len(), r.Header().Compression)
	fmt.Println(label.ValueOr("?"), interval.ValueOr(0))
	// Output:
	// 4 Zstd
	// T 2.5
}
