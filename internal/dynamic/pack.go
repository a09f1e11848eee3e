package dynamic

import (
	"encoding/binary"
	"reflect"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// Pack serializes the values into buf starting at offset 0 and
// returns the total bytes written. The buffer must already be at
// least BytesCount(vs...) long; callers size it with the sizing pass.
func Pack(buf []byte, vs ...any) (int, error) {
	off := 0
	for _, val := range vs {
		var err error
		off, err = packValue(buf, off, reflect.ValueOf(val))
		if err != nil {
			return off, err
		}
	}
	return off, nil
}

// packValue writes one value at the cursor and returns the advanced
// cursor. Composite shapes call their children left to right.
func packValue(buf []byte, off int, v reflect.Value) (int, error) {
	if !v.IsValid() {
		return off, unsupported(nil)
	}
	t := v.Type()

	if isCustomLeaf(t) {
		m := asLeafMarshaler(v)
		w := m.LeafSize()
		m.MarshalLeaf(buf[off : off+w])
		return off + w, nil
	}
	if w := shape.ScalarWidth(t); w > 0 {
		utils.PutScalar(buf[off:off+w], v)
		return off + w, nil
	}

	switch t.Kind() {
	case reflect.Array, reflect.Slice:
		return packSequence(buf, off, v)

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				return off, unexportedField(t, t.Field(i).Name)
			}
			var err error
			off, err = packValue(buf, off, v.Field(i))
			if err != nil {
				return off, err
			}
		}
		return off, nil

	default:
		return off, unsupported(t)
	}
}

// packSequence writes the element-count header followed by the
// elements. Fixed arrays carry the header too: it is redundant, but
// keeps the decoder uniform across containers.
func packSequence(buf []byte, off int, v reflect.Value) (int, error) {
	n := v.Len()
	binary.LittleEndian.PutUint32(buf[off:off+HeaderSize], uint32(n))
	off += HeaderSize

	elem := v.Type().Elem()
	if w := shape.ScalarWidth(elem); w > 0 && !isCustomLeaf(elem) {
		utils.PutScalarRun(buf[off:off+n*w], v, w)
		return off + n*w, nil
	}

	for i := 0; i < n; i++ {
		var err error
		off, err = packValue(buf, off, v.Index(i))
		if err != nil {
			return off, err
		}
	}
	return off, nil
}
