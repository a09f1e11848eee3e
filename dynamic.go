package binpack

import (
	"github.com/scigolib/binpack/internal/dynamic"
	"github.com/scigolib/binpack/internal/utils"
)

// HeaderSize is the width in bytes of the element-count header the
// run-time codec writes before every fixed array and slice. The
// header is a little-endian uint32.
const HeaderSize = dynamic.HeaderSize

// BytesCount returns the number of bytes PackDyn would write for the
// values: leaf widths, struct field sums, and a header plus elements
// for every fixed array or slice.
func BytesCount(vs ...any) (int, error) {
	return dynamic.BytesCount(vs...)
}

// PackDyn serializes the values with the run-time codec into buf
// starting at offset 0 and returns the bytes written. Size buf with
// BytesCount first; the codec does not allocate. The output carries
// an element-count header before every fixed array and slice, so it
// is deliberately incompatible with the compiled codec's output for
// the same shapes.
func PackDyn(buf []byte, vs ...any) (int, error) {
	return dynamic.Pack(buf, vs...)
}

// UnpackDyn deserializes buf into the destinations, non-nil pointers,
// and returns the bytes consumed. Slices are resized to their header
// counts; a fixed array whose header differs from its length fails
// with ErrLengthMismatch.
func UnpackDyn(buf []byte, outs ...any) (int, error) {
	return dynamic.Unpack(buf, outs...)
}

// GetBuffer returns a pooled byte slice of the given length, handy as
// scratch for transient run-time packs. Return it with ReleaseBuffer
// when done; do not retain it afterwards.
func GetBuffer(size int) []byte {
	return utils.GetBuffer(size)
}

// ReleaseBuffer returns a buffer obtained from GetBuffer to the pool.
func ReleaseBuffer(buf []byte) {
	utils.ReleaseBuffer(buf)
}
