package fixed

import (
	"fmt"
	"reflect"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// Unpack deserializes buf into the destinations, which must be
// non-nil pointers to the compiled prototype types. buf must be
// exactly the compiled size.
func (p *Program) Unpack(buf []byte, outs ...any) error {
	if len(buf) != p.table.Size {
		return utils.WrapError("unpack",
			fmt.Errorf("%w: got %d, need %d", ErrBufferSize, len(buf), p.table.Size))
	}
	return p.UnpackFrom(buf, outs...)
}

// UnpackFrom is Unpack for buffers that may be longer than the
// compiled size; only the first Size bytes are read.
func (p *Program) UnpackFrom(buf []byte, outs ...any) error {
	if len(buf) < p.table.Size {
		return utils.WrapError("unpack",
			fmt.Errorf("%w: got %d, need at least %d", ErrBufferSize, len(buf), p.table.Size))
	}
	if err := p.checkArgs(len(outs)); err != nil {
		return err
	}
	for i, out := range outs {
		rv := reflect.ValueOf(out)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return utils.WrapError("unpack",
				fmt.Errorf("%w: argument %d is %v", ErrNotPointer, i, reflect.TypeOf(out)))
		}
		elem := rv.Elem()
		if elem.Type() != p.shapes[i].Type() {
			return utils.WrapError("unpack",
				fmt.Errorf("%w: argument %d is *%s, compiled for %s",
					ErrTypeMismatch, i, elem.Type(), p.shapes[i].Type()))
		}
		p.unpackValue(buf, p.starts[i], p.shapes[i], elem)
	}
	return nil
}

// unpackValue is the mirror image of packValue: the same dispatch
// tree reads bytes back into the value by the same offsets.
func (p *Program) unpackValue(buf []byte, slot int, s shape.Shape, v reflect.Value) {
	switch s := s.(type) {
	case *shape.Scalar:
		off := p.table.Offsets[slot]
		utils.GetScalar(buf[off:off+s.PackedBytes()], v)

	case *shape.Custom:
		off := p.table.Offsets[slot]
		v.Addr().Interface().(shape.LeafMarshaler).UnmarshalLeaf(buf[off : off+s.PackedBytes()])

	case *shape.Array:
		if s.Scalar() {
			off := p.table.Offsets[slot]
			utils.GetScalarRun(buf[off:off+s.PackedBytes()], v, s.Elem.PackedBytes())
			return
		}
		stride := s.Elem.MemcpyCount()
		for i := 0; i < s.Len; i++ {
			p.unpackValue(buf, slot+i*stride, s.Elem, v.Index(i))
		}

	case *shape.Tuple:
		rel := 0
		for i, es := range s.Elems {
			p.unpackValue(buf, slot+rel, es, v.Field(i))
			rel += es.MemcpyCount()
		}
	}
}
