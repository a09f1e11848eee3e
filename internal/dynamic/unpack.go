package dynamic

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// Unpack deserializes buf into the destinations, which must be
// non-nil pointers, and returns the total bytes consumed. Slices are
// resized to the element count in their headers; fixed arrays must
// match theirs exactly.
func Unpack(buf []byte, outs ...any) (int, error) {
	off := 0
	for i, out := range outs {
		rv := reflect.ValueOf(out)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return off, utils.WrapError("unpack",
				fmt.Errorf("%w: argument %d is %v", ErrNotPointer, i, reflect.TypeOf(out)))
		}
		var err error
		off, err = unpackValue(buf, off, rv.Elem())
		if err != nil {
			return off, err
		}
	}
	return off, nil
}

func unpackValue(buf []byte, off int, v reflect.Value) (int, error) {
	t := v.Type()

	if isCustomLeaf(t) {
		w := customWidth(v)
		if err := need(buf, off, w); err != nil {
			return off, err
		}
		v.Addr().Interface().(shape.LeafMarshaler).UnmarshalLeaf(buf[off : off+w])
		return off + w, nil
	}
	if w := shape.ScalarWidth(t); w > 0 {
		if err := need(buf, off, w); err != nil {
			return off, err
		}
		utils.GetScalar(buf[off:off+w], v)
		return off + w, nil
	}

	switch t.Kind() {
	case reflect.Array, reflect.Slice:
		return unpackSequence(buf, off, v)

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				return off, unexportedField(t, t.Field(i).Name)
			}
			var err error
			off, err = unpackValue(buf, off, v.Field(i))
			if err != nil {
				return off, err
			}
		}
		return off, nil

	default:
		return off, unsupported(t)
	}
}

// unpackSequence reads the element-count header, resizes the
// destination, and reads exactly that many elements. A fixed array
// cannot be resized, so its header must equal its length.
func unpackSequence(buf []byte, off int, v reflect.Value) (int, error) {
	if err := need(buf, off, HeaderSize); err != nil {
		return off, err
	}
	n := binary.LittleEndian.Uint32(buf[off : off+HeaderSize])
	off += HeaderSize

	if err := utils.ValidateBufferSize(uint64(n), utils.MaxSequenceElements, "sequence header"); err != nil {
		return off, utils.WrapError("unpack", err)
	}

	switch v.Kind() {
	case reflect.Array:
		if int(n) != v.Len() {
			return off, utils.WrapError("unpack",
				fmt.Errorf("%w: header %d, array length %d", ErrLengthMismatch, n, v.Len()))
		}
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), int(n), int(n)))
	}

	elem := v.Type().Elem()
	if w := shape.ScalarWidth(elem); w > 0 && !isCustomLeaf(elem) {
		body := int(n) * w
		if err := need(buf, off, body); err != nil {
			return off, err
		}
		utils.GetScalarRun(buf[off:off+body], v, w)
		return off + body, nil
	}

	for i := 0; i < int(n); i++ {
		var err error
		off, err = unpackValue(buf, off, v.Index(i))
		if err != nil {
			return off, err
		}
	}
	return off, nil
}

func need(buf []byte, off, n int) error {
	if off+n > len(buf) {
		return utils.WrapError("unpack",
			fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, off, len(buf)))
	}
	return nil
}
