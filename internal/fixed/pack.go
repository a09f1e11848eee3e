package fixed

import (
	"fmt"
	"reflect"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// Pack serializes the values into a fresh buffer of exactly the
// compiled size.
func (p *Program) Pack(vs ...any) ([]byte, error) {
	buf := make([]byte, p.table.Size)
	if err := p.PackInto(buf, vs...); err != nil {
		return nil, err
	}
	return buf, nil
}

// PackInto serializes the values into dst, which must be exactly the
// compiled size.
func (p *Program) PackInto(dst []byte, vs ...any) error {
	if len(dst) != p.table.Size {
		return utils.WrapError("pack",
			fmt.Errorf("%w: got %d, need %d", ErrBufferSize, len(dst), p.table.Size))
	}
	if err := p.checkArgs(len(vs)); err != nil {
		return err
	}
	for i, val := range vs {
		rv := reflect.ValueOf(val)
		if !rv.IsValid() || rv.Type() != p.shapes[i].Type() {
			return utils.WrapError("pack",
				fmt.Errorf("%w: argument %d is %v, compiled for %s",
					ErrTypeMismatch, i, reflect.TypeOf(val), p.shapes[i].Type()))
		}
		p.packValue(dst, p.starts[i], p.shapes[i], rv)
	}
	return nil
}

// packValue writes one value at its slot. The slot index is the
// parameter threaded through the recursion; the concrete byte offset
// is always offsets[slot].
func (p *Program) packValue(dst []byte, slot int, s shape.Shape, v reflect.Value) {
	switch s := s.(type) {
	case *shape.Scalar:
		off := p.table.Offsets[slot]
		utils.PutScalar(dst[off:off+s.PackedBytes()], v)

	case *shape.Custom:
		off := p.table.Offsets[slot]
		asLeafMarshaler(v).MarshalLeaf(dst[off : off+s.PackedBytes()])

	case *shape.Array:
		if s.Scalar() {
			// One slot, one bulk run for the whole array body.
			off := p.table.Offsets[slot]
			utils.PutScalarRun(dst[off:off+s.PackedBytes()], v, s.Elem.PackedBytes())
			return
		}
		stride := s.Elem.MemcpyCount()
		for i := 0; i < s.Len; i++ {
			p.packValue(dst, slot+i*stride, s.Elem, v.Index(i))
		}

	case *shape.Tuple:
		rel := 0
		for i, es := range s.Elems {
			p.packValue(dst, slot+rel, es, v.Field(i))
			rel += es.MemcpyCount()
		}
	}
}

// asLeafMarshaler resolves the custom-leaf capability for v. Values
// reached through the pack recursion are not addressable, so a
// pointer-receiver implementation is reached through a copy.
func asLeafMarshaler(v reflect.Value) shape.LeafMarshaler {
	if m, ok := v.Interface().(shape.LeafMarshaler); ok {
		return m
	}
	if v.CanAddr() {
		return v.Addr().Interface().(shape.LeafMarshaler)
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return ptr.Interface().(shape.LeafMarshaler)
}
