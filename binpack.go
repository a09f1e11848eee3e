// Package binpack converts nested values built from fixed-width
// numeric leaves, fixed arrays, structs and slices into flat byte
// buffers and back. Two codecs share the structural vocabulary: a
// compiled codec that resolves every byte offset ahead of time for
// fully static shapes, and a run-time codec that also handles
// dynamically-sized sequences by threading a cursor and prefixing
// each sequence with an element-count header.
//
// Leaves are encoded as the host's in-memory representation; callers
// needing a cross-platform format must layer endianness conversion
// above the leaf codec.
package binpack

import (
	"github.com/scigolib/binpack/internal/fixed"
	"github.com/scigolib/binpack/internal/shape"
)

// LeafMarshaler is the capability a user-defined leaf type implements
// to take part in serialization: a constant byte width plus the two
// copies between the value and a byte region at a given offset.
type LeafMarshaler = shape.LeafMarshaler

// Layout is a compiled static layout: flattened slots, constant byte
// offsets and a fixed total size for one sequence of value types.
// Compile once, then pack and unpack any number of times; a Layout is
// immutable and safe for concurrent use on disjoint buffers.
type Layout struct {
	prog *fixed.Program
}

// LayoutOf compiles the layout for the types of the prototype values.
// The prototypes carry only types; their contents are ignored. Shapes
// containing slices are rejected with ErrNotStatic — dynamic
// sequences belong to the run-time codec.
func LayoutOf(prototypes ...any) (*Layout, error) {
	prog, err := fixed.Compile(prototypes...)
	if err != nil {
		return nil, err
	}
	return &Layout{prog: prog}, nil
}

// Size returns the fixed buffer size in bytes.
func (l *Layout) Size() int { return l.prog.Size() }

// Offsets returns the slot offset table: one strictly increasing
// entry per leaf, with contiguous scalar arrays collapsed to a single
// slot spanning their whole body.
func (l *Layout) Offsets() []int { return l.prog.Offsets() }

// Describe renders the compiled shapes for diagnostics.
func (l *Layout) Describe() string { return l.prog.Describe() }

// Pack serializes the values into a fresh buffer of exactly Size
// bytes.
func (l *Layout) Pack(vs ...any) ([]byte, error) { return l.prog.Pack(vs...) }

// PackInto serializes the values into dst, which must be exactly
// Size bytes.
func (l *Layout) PackInto(dst []byte, vs ...any) error { return l.prog.PackInto(dst, vs...) }

// Unpack deserializes buf into the destinations, non-nil pointers to
// the compiled types. buf must be exactly Size bytes.
func (l *Layout) Unpack(buf []byte, outs ...any) error { return l.prog.Unpack(buf, outs...) }

// UnpackFrom is Unpack for buffers that may be longer than Size;
// only the first Size bytes are read.
func (l *Layout) UnpackFrom(buf []byte, outs ...any) error { return l.prog.UnpackFrom(buf, outs...) }

// Pack compiles the layout for the values and serializes them into a
// fresh exact-size buffer. Callers packing the same types repeatedly
// should compile once with LayoutOf and reuse it.
func Pack(vs ...any) ([]byte, error) {
	l, err := LayoutOf(vs...)
	if err != nil {
		return nil, err
	}
	return l.Pack(vs...)
}

// PackInto compiles the layout for the values and serializes them
// into dst, which must be exactly the packed size.
func PackInto(dst []byte, vs ...any) error {
	l, err := LayoutOf(vs...)
	if err != nil {
		return err
	}
	return l.PackInto(dst, vs...)
}

// Unpack compiles the layout for the destination types and
// deserializes buf into them. The destinations must be non-nil
// pointers and buf exactly the packed size.
func Unpack(buf []byte, outs ...any) error {
	l, err := layoutOfPointers(outs...)
	if err != nil {
		return err
	}
	return l.Unpack(buf, outs...)
}

// UnpackFrom is Unpack for buffers that may be longer than the
// packed size.
func UnpackFrom(buf []byte, outs ...any) error {
	l, err := layoutOfPointers(outs...)
	if err != nil {
		return err
	}
	return l.UnpackFrom(buf, outs...)
}

// PackedSize returns the wire size of the prototype values' static
// shapes.
func PackedSize(prototypes ...any) (int, error) {
	l, err := LayoutOf(prototypes...)
	if err != nil {
		return 0, err
	}
	return l.Size(), nil
}

// OffsetsOf returns the slot offset table for the prototype values'
// static shapes.
func OffsetsOf(prototypes ...any) ([]int, error) {
	l, err := LayoutOf(prototypes...)
	if err != nil {
		return nil, err
	}
	return l.Offsets(), nil
}

// DescribeLayout renders the shapes of the prototype values for
// diagnostics.
func DescribeLayout(prototypes ...any) (string, error) {
	l, err := LayoutOf(prototypes...)
	if err != nil {
		return "", err
	}
	return l.Describe(), nil
}
