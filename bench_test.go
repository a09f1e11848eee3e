package binpack

import (
	"testing"
)

type benchRecord struct {
	ID    int64
	Flags uint32
	Data  [64]int32
	Tail  [2]float64
}

// BenchmarkLayoutCompile benchmarks shape derivation and offset-table
// construction.
func BenchmarkLayoutCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = LayoutOf(benchRecord{})
	}
}

// BenchmarkPackInto benchmarks the compiled codec with a reused layout
// and destination buffer.
func BenchmarkPackInto(b *testing.B) {
	l, err := LayoutOf(benchRecord{})
	if err != nil {
		b.Fatal(err)
	}
	dst := make([]byte, l.Size())
	in := benchRecord{ID: 1, Flags: 2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.PackInto(dst, in)
	}
}

// BenchmarkUnpack benchmarks the compiled decode path.
func BenchmarkUnpack(b *testing.B) {
	l, err := LayoutOf(benchRecord{})
	if err != nil {
		b.Fatal(err)
	}
	buf, err := l.Pack(benchRecord{ID: 1, Flags: 2})
	if err != nil {
		b.Fatal(err)
	}
	var out benchRecord
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Unpack(buf, &out)
	}
}

// BenchmarkPackDyn benchmarks the run-time codec on a value with
// dynamic sequences.
func BenchmarkPackDyn(b *testing.B) {
	type message struct {
		Kind    uint32
		Payload []uint8
		Extra   []int64
	}
	in := message{Kind: 7, Payload: make([]uint8, 256), Extra: make([]int64, 32)}

	n, err := BytesCount(in)
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = PackDyn(buf, in)
	}
}

// BenchmarkBytesCount benchmarks the sizing pass alone.
func BenchmarkBytesCount(b *testing.B) {
	type message struct {
		Kind    uint32
		Payload []uint8
		Extra   []int64
	}
	in := message{Kind: 7, Payload: make([]uint8, 256), Extra: make([]int64, 32)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BytesCount(in)
	}
}
