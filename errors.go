package binpack

import (
	"github.com/scigolib/binpack/internal/dynamic"
	"github.com/scigolib/binpack/internal/fixed"
	"github.com/scigolib/binpack/internal/shape"
	"github.com/scigolib/binpack/internal/utils"
)

// Sentinel errors; match with errors.Is. Every error the library
// returns wraps one of these or carries enough context on its own.
var (
	// ErrUnsupportedType reports a Go type outside the shape grammar.
	ErrUnsupportedType = shape.ErrUnsupportedType

	// ErrNotStatic reports a shape containing a slice passed to the
	// compiled codec; dynamic sequences belong to the run-time codec.
	ErrNotStatic = fixed.ErrNotStatic

	// ErrBufferSize reports a caller buffer whose length does not
	// match the compiled size.
	ErrBufferSize = fixed.ErrBufferSize

	// ErrTypeMismatch reports a value whose type differs from the
	// compiled prototype.
	ErrTypeMismatch = fixed.ErrTypeMismatch

	// ErrArgCount reports a call with a different number of values
	// than the layout was compiled for.
	ErrArgCount = fixed.ErrArgCount

	// ErrNotPointer reports an unpack destination that is not a
	// non-nil pointer.
	ErrNotPointer = utils.ErrNotPointer

	// ErrLengthMismatch reports a fixed-array header whose element
	// count differs from the destination array's length during a
	// run-time decode. The cursor position afterwards is undefined.
	ErrLengthMismatch = dynamic.ErrLengthMismatch

	// ErrShortBuffer reports a run-time decode that ran past the end
	// of the source buffer.
	ErrShortBuffer = dynamic.ErrShortBuffer
)
