// Package fixed implements the compiled codec for fully static
// shapes. Compile resolves the whole layout up front — flattened
// slots, per-slot byte offsets and the total buffer size — so the
// pack and unpack passes touch the buffer only through a constant
// offset table, never a running cursor.
package fixed

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/scigolib/binpack/internal/layout"
	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

var (
	// ErrNotStatic reports a shape containing a dynamic sequence,
	// which only the run-time codec accepts.
	ErrNotStatic = errors.New("shape is not static")

	// ErrBufferSize reports a caller buffer whose length does not
	// match the compiled size.
	ErrBufferSize = errors.New("buffer length does not match compiled size")

	// ErrNotPointer reports an unpack destination that is not a
	// non-nil pointer.
	ErrNotPointer = utils.ErrNotPointer

	// ErrTypeMismatch reports a value whose type differs from the
	// prototype the program was compiled for.
	ErrTypeMismatch = errors.New("value type differs from compiled prototype")

	// ErrArgCount reports a call with a different number of values
	// than the program was compiled for.
	ErrArgCount = errors.New("argument count differs from compiled prototype")
)

// Program is a compiled layout for a fixed sequence of static shapes.
// It is immutable after Compile and safe for concurrent use on
// disjoint buffers.
type Program struct {
	shapes []shape.Shape
	starts []int // starting slot index of each top-level shape
	table  layout.Table
}

// Compile derives the shapes of the prototype values and freezes
// their layout. The prototypes carry only types; their contents are
// ignored.
func Compile(prototypes ...any) (*Program, error) {
	types := make([]reflect.Type, len(prototypes))
	for i, p := range prototypes {
		t := reflect.TypeOf(p)
		if t == nil {
			return nil, utils.WrapError("compile",
				fmt.Errorf("prototype %d is an untyped nil", i))
		}
		types[i] = t
	}
	return CompileTypes(types...)
}

// CompileTypes is Compile for callers that already hold the
// reflect.Types.
func CompileTypes(types ...reflect.Type) (*Program, error) {
	shapes := make([]shape.Shape, len(types))
	starts := make([]int, len(types))
	slot := 0
	for i, t := range types {
		s, err := shape.Of(t)
		if err != nil {
			return nil, err
		}
		if !s.Static() {
			return nil, utils.WrapError("compile",
				fmt.Errorf("%w: %s", ErrNotStatic, s))
		}
		shapes[i] = s
		starts[i] = slot
		slot += s.MemcpyCount()
	}

	table, err := layout.ForShapes(shapes...)
	if err != nil {
		return nil, err
	}
	return &Program{shapes: shapes, starts: starts, table: table}, nil
}

// Size returns the compiled buffer size in bytes.
func (p *Program) Size() int {
	return p.table.Size
}

// Offsets returns a copy of the compiled slot offset table.
func (p *Program) Offsets() []int {
	out := make([]int, len(p.table.Offsets))
	copy(out, p.table.Offsets)
	return out
}

// Describe renders the compiled shape list, one entry per top-level
// value, for diagnostics.
func (p *Program) Describe() string {
	names := make([]string, len(p.shapes))
	for i, s := range p.shapes {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func (p *Program) checkArgs(n int) error {
	if n != len(p.shapes) {
		return utils.WrapError("compiled codec",
			fmt.Errorf("%w: got %d, compiled for %d", ErrArgCount, n, len(p.shapes)))
	}
	return nil
}
