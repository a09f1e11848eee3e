// Package dynamic implements the run-time codec: the same structural
// vocabulary as the compiled codec extended with dynamically-sized
// sequences. Nothing is resolved ahead of time — a running byte
// cursor threads through the recursive sizing, pack and unpack
// passes, and every fixed array or slice is preceded by a fixed-width
// element-count header so the decoder can walk the buffer uniformly.
//
// The header makes this wire format deliberately incompatible with
// the compiled codec's output for the same shape.
package dynamic

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// HeaderSize is the width of the element-count header preceding every
// fixed array and dynamic sequence on the wire. The header is a
// little-endian uint32, so sequences beyond 2^32-1 elements are not
// representable.
const HeaderSize = 4

var (
	// ErrLengthMismatch reports a fixed-array header whose element
	// count differs from the destination array's length. The cursor
	// position after this failure is undefined.
	ErrLengthMismatch = errors.New("sequence header does not match fixed array length")

	// ErrShortBuffer reports a decode that ran past the end of the
	// source buffer.
	ErrShortBuffer = errors.New("buffer too short")

	// ErrNotPointer reports an unpack destination that is not a
	// non-nil pointer.
	ErrNotPointer = utils.ErrNotPointer
)

var leafMarshalerType = reflect.TypeOf((*shape.LeafMarshaler)(nil)).Elem()

func isCustomLeaf(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(leafMarshalerType)
}

func customWidth(v reflect.Value) int {
	return asLeafMarshaler(v).LeafSize()
}

func asLeafMarshaler(v reflect.Value) shape.LeafMarshaler {
	if v.CanAddr() {
		return v.Addr().Interface().(shape.LeafMarshaler)
	}
	if m, ok := v.Interface().(shape.LeafMarshaler); ok {
		return m
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return ptr.Interface().(shape.LeafMarshaler)
}

func unsupported(t reflect.Type) error {
	name := "untyped nil"
	if t != nil {
		name = t.String()
	}
	return utils.WrapError("run-time codec",
		fmt.Errorf("%w: %s", shape.ErrUnsupportedType, name))
}

func unexportedField(t reflect.Type, name string) error {
	return utils.WrapError("run-time codec",
		fmt.Errorf("%w: %s has unexported field %s", shape.ErrUnsupportedType, t, name))
}
