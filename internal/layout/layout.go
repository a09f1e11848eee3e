// Package layout computes byte offsets for the slots of a static
// shape. A slot is the unit the packer dispatches on — one leaf, or
// one contiguous array of leaves — and its offset is the prefix sum
// of the widths of the slots before it. Tables are computed once when
// a codec is compiled and are constant afterwards.
package layout

import (
	"errors"
	"fmt"

	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// Table maps slot index to byte offset for a fixed top-level shape
// list. Offsets are strictly increasing and
// Offsets[k-1]+Widths[k-1] == Size.
type Table struct {
	Widths  []int
	Offsets []int
	Size    int
}

// Offsets computes the offset list for a list of slot widths:
// offsets[0] = 0 and offsets[i] = offsets[i-1] + widths[i-1].
func Offsets(widths []int) []int {
	offsets := make([]int, len(widths))
	sum := 0
	for i, w := range widths {
		offsets[i] = sum
		sum += w
	}
	return offsets
}

// New builds a Table from slot widths.
func New(widths []int) Table {
	offsets := Offsets(widths)
	size := 0
	if n := len(widths); n > 0 {
		size = offsets[n-1] + widths[n-1]
	}
	return Table{Widths: widths, Offsets: offsets, Size: size}
}

// ForShapes builds the offset table for a sequence of top-level
// shapes, concatenated left to right. Each shape contributes its
// memcpy-flattened slots: a fixed array of scalars is one slot whose
// width is the whole array body, so the same table serves both
// "write one scalar" and "bulk-copy this array".
func ForShapes(shapes ...shape.Shape) (Table, error) {
	var widths []int
	for _, s := range shapes {
		if !s.Static() {
			return Table{}, utils.WrapError("layout",
				fmt.Errorf("dynamic shape %s has no static layout", s))
		}
		for _, tok := range s.Flatten() {
			slot, ok := tok.(shape.Shape)
			if !ok {
				return Table{}, utils.WrapError("layout",
					errors.New("flatten produced a non-shape token"))
			}
			widths = append(widths, slot.PackedBytes())
		}
	}
	return New(widths), nil
}
