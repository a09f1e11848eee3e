package shape

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/scigolib/binpack/internal/utils"
)

// ErrUnsupportedType reports a Go type outside the shape grammar:
// anything that is not a fixed-width leaf, a fixed array, a struct of
// supported shapes or a slice of a supported shape.
var ErrUnsupportedType = errors.New("type not in the shape grammar")

var leafMarshalerType = reflect.TypeOf((*LeafMarshaler)(nil)).Elem()

// Of derives the Shape of a Go type. Named types with a fixed-width
// numeric underlying kind (enumerations) come out as scalar leaves;
// types whose pointer implements LeafMarshaler come out as custom
// leaves, taking precedence over the structural rules.
func Of(t reflect.Type) (Shape, error) {
	if t == nil {
		return nil, utils.WrapError("shape derivation", errors.New("nil type"))
	}

	if reflect.PointerTo(t).Implements(leafMarshalerType) {
		w := reflect.New(t).Interface().(LeafMarshaler).LeafSize()
		if w <= 0 {
			return nil, utils.WrapError("shape derivation",
				fmt.Errorf("%s: LeafSize must be positive, got %d", t, w))
		}
		return &Custom{typ: t, width: w}, nil
	}

	if w := ScalarWidth(t); w > 0 {
		return &Scalar{typ: t, width: w}, nil
	}

	switch t.Kind() {
	case reflect.Array:
		elem, err := Of(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Array{typ: t, Elem: elem, Len: t.Len()}, nil

	case reflect.Struct:
		elems := make([]Shape, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				return nil, utils.WrapError("shape derivation",
					fmt.Errorf("%w: %s has unexported field %s", ErrUnsupportedType, t, f.Name))
			}
			es, err := Of(f.Type)
			if err != nil {
				return nil, err
			}
			elems = append(elems, es)
		}
		return &Tuple{typ: t, Elems: elems}, nil

	case reflect.Slice:
		elem, err := Of(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Seq{typ: t, Elem: elem}, nil

	default:
		return nil, utils.WrapError("shape derivation",
			fmt.Errorf("%w: %s", ErrUnsupportedType, t))
	}
}

// ScalarWidth returns the in-memory byte width of a fixed-width leaf
// kind, or 0 if t is not a scalar leaf.
func ScalarWidth(t reflect.Type) int {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return int(t.Size())
	}
	return 0
}
