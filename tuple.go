package binpack

import (
	"fmt"
	"reflect"

	"github.com/scigolib/binpack/internal/fixed"
	"github.com/scigolib/binpack/internal/utils"
)

// Pair is the two-element combinator. On the wire it is simply its
// two fields in order; any two-field struct has the same layout.
type Pair[F, S any] struct {
	First  F
	Second S
}

// MakePair builds a Pair from its elements.
func MakePair[F, S any](first F, second S) Pair[F, S] {
	return Pair[F, S]{First: first, Second: second}
}

// Unpack1 deserializes buf into one default-constructed value of
// type T using the compiled codec.
func Unpack1[T any](buf []byte) (T, error) {
	var a T
	err := Unpack(buf, &a)
	return a, err
}

// Unpack2 deserializes buf into two default-constructed values.
func Unpack2[A, B any](buf []byte) (A, B, error) {
	var a A
	var b B
	err := Unpack(buf, &a, &b)
	return a, b, err
}

// Unpack3 deserializes buf into three default-constructed values.
func Unpack3[A, B, C any](buf []byte) (A, B, C, error) {
	var a A
	var b B
	var c C
	err := Unpack(buf, &a, &b, &c)
	return a, b, c, err
}

// Unpack4 deserializes buf into four default-constructed values.
func Unpack4[A, B, C, D any](buf []byte) (A, B, C, D, error) {
	var a A
	var b B
	var c C
	var d D
	err := Unpack(buf, &a, &b, &c, &d)
	return a, b, c, d, err
}

// layoutOfPointers compiles the layout for the pointed-to types of
// the unpack destinations.
func layoutOfPointers(outs ...any) (*Layout, error) {
	types := make([]reflect.Type, len(outs))
	for i, out := range outs {
		t := reflect.TypeOf(out)
		if t == nil || t.Kind() != reflect.Pointer {
			return nil, utils.WrapError("unpack",
				fmt.Errorf("%w: argument %d is %v", ErrNotPointer, i, t))
		}
		types[i] = t.Elem()
	}
	prog, err := fixed.CompileTypes(types...)
	if err != nil {
		return nil, err
	}
	return &Layout{prog: prog}, nil
}
