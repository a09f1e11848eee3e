package dynamic

import (
	"reflect"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// BytesCount returns the number of bytes Pack would write for the
// values: leaves contribute their widths, structs the sum of their
// fields, and every fixed array or slice an element-count header plus
// its elements. The walk is an explicit left-to-right fold.
func BytesCount(vs ...any) (int, error) {
	total := 0
	for _, val := range vs {
		n, err := valueBytes(reflect.ValueOf(val))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func valueBytes(v reflect.Value) (int, error) {
	if !v.IsValid() {
		return 0, unsupported(nil)
	}
	t := v.Type()

	if isCustomLeaf(t) {
		return customWidth(v), nil
	}
	if w := shape.ScalarWidth(t); w > 0 {
		return w, nil
	}

	switch t.Kind() {
	case reflect.Array, reflect.Slice:
		return sequenceBytes(v)

	case reflect.Struct:
		total := 0
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				return 0, unexportedField(t, t.Field(i).Name)
			}
			n, err := valueBytes(v.Field(i))
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil

	default:
		return 0, unsupported(t)
	}
}

func sequenceBytes(v reflect.Value) (int, error) {
	elem := v.Type().Elem()

	// A run of scalar leaves sizes in one multiplication.
	if w := shape.ScalarWidth(elem); w > 0 && !isCustomLeaf(elem) {
		body, err := utils.SequenceBytes(uint64(v.Len()), uint64(w))
		if err != nil {
			return 0, err
		}
		return HeaderSize + int(body), nil
	}

	total := HeaderSize
	for i, n := 0, v.Len(); i < n; i++ {
		eb, err := valueBytes(v.Index(i))
		if err != nil {
			return 0, err
		}
		total += eb
	}
	return total, nil
}
