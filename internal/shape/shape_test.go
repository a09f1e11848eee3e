package shape

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// color is an enumeration leaf with a 4-byte underlying kind.
type color uint32

// vec3f is a user-defined 12-byte leaf.
type vec3f struct {
	x, y, z float32
}

func (v *vec3f) LeafSize() int { return 12 }

func (v *vec3f) MarshalLeaf(dst []byte) {
	binary.NativeEndian.PutUint32(dst[0:4], math.Float32bits(v.x))
	binary.NativeEndian.PutUint32(dst[4:8], math.Float32bits(v.y))
	binary.NativeEndian.PutUint32(dst[8:12], math.Float32bits(v.z))
}

func (v *vec3f) UnmarshalLeaf(src []byte) {
	v.x = math.Float32frombits(binary.NativeEndian.Uint32(src[0:4]))
	v.y = math.Float32frombits(binary.NativeEndian.Uint32(src[4:8]))
	v.z = math.Float32frombits(binary.NativeEndian.Uint32(src[8:12]))
}

type pairI32I16 struct {
	A int32
	B int16
}

type nested struct {
	Tag   int8
	Count int32
	Data  [3]int32
	Tail  int64
}

func mustOf(t *testing.T, proto any) Shape {
	t.Helper()
	s, err := Of(reflect.TypeOf(proto))
	require.NoError(t, err)
	return s
}

func TestScalarTraits(t *testing.T) {
	tests := []struct {
		name  string
		proto any
		width int
	}{
		{"i8", int8(0), 1},
		{"u16", uint16(0), 2},
		{"i32", int32(0), 4},
		{"u64", uint64(0), 8},
		{"f32", float32(0), 4},
		{"f64", float64(0), 8},
		{"bool", false, 1},
		{"enum", color(0), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustOf(t, tt.proto)
			require.IsType(t, &Scalar{}, s)
			assert.Equal(t, tt.width, s.PackedBytes())
			assert.Equal(t, 1, s.LeafCount())
			assert.Equal(t, 1, s.MemcpyCount())
			assert.True(t, s.Static())
			assert.Len(t, s.Flatten(), 1)
		})
	}
}

func TestScalarArrayTraits(t *testing.T) {
	s := mustOf(t, [3]int32{})
	arr := s.(*Array)

	assert.Equal(t, 12, arr.PackedBytes())
	assert.Equal(t, 3, arr.LeafCount())
	// A contiguous run of scalars is one memcpy slot.
	assert.Equal(t, 1, arr.MemcpyCount())
	assert.True(t, arr.Scalar())
	assert.Len(t, arr.Flatten(), 1)
}

func TestCompoundArrayTraits(t *testing.T) {
	s := mustOf(t, [3]pairI32I16{})
	arr := s.(*Array)

	assert.Equal(t, 18, arr.PackedBytes())
	assert.Equal(t, 6, arr.LeafCount())
	assert.Equal(t, 6, arr.MemcpyCount())
	assert.False(t, arr.Scalar())
	assert.Len(t, arr.Flatten(), 6)
}

func TestCustomLeafArrayTraits(t *testing.T) {
	// Custom leaves pack through their marshal hook, so an array of
	// them is not a bulk-copyable scalar run.
	s := mustOf(t, [2]vec3f{})
	arr := s.(*Array)

	assert.Equal(t, 24, arr.PackedBytes())
	assert.Equal(t, 2, arr.LeafCount())
	assert.Equal(t, 2, arr.MemcpyCount())
	assert.False(t, arr.Scalar())
}

func TestTupleTraits(t *testing.T) {
	s := mustOf(t, nested{})
	tup := s.(*Tuple)

	assert.Equal(t, 1+4+12+8, tup.PackedBytes())
	assert.Equal(t, 6, tup.LeafCount())
	assert.Equal(t, 4, tup.MemcpyCount())
	assert.True(t, tup.Static())
	assert.Equal(t, "tuple(i8, i32, array(3, i32), i64)", tup.String())
}

func TestSeqTraits(t *testing.T) {
	s := mustOf(t, []int32{})
	require.IsType(t, &Seq{}, s)

	assert.False(t, s.Static())
	assert.Nil(t, s.Flatten())
	assert.Equal(t, "seq(i32)", s.String())

	// A tuple containing a sequence is itself dynamic.
	dyn := mustOf(t, struct {
		A int32
		B []int16
	}{})
	assert.False(t, dyn.Static())
	assert.Nil(t, dyn.Flatten())
}

func TestCustomLeaf(t *testing.T) {
	s := mustOf(t, vec3f{})
	require.IsType(t, &Custom{}, s)

	assert.Equal(t, 12, s.PackedBytes())
	assert.Equal(t, 1, s.LeafCount())
	assert.Equal(t, 1, s.MemcpyCount())
	assert.True(t, s.Static())
}

func TestFlattenCoherence(t *testing.T) {
	// Sum of flattened slot widths equals the packed size for every
	// static shape.
	protos := []any{
		int8(0),
		[3]int32{},
		[2][3]int16{},
		pairI32I16{},
		[3]pairI32I16{},
		nested{},
		vec3f{},
		[2]vec3f{},
		struct {
			A nested
			B [4]pairI32I16
			C color
		}{},
	}

	for _, proto := range protos {
		s := mustOf(t, proto)
		sum := 0
		for _, tok := range s.Flatten() {
			sum += tok.(Shape).PackedBytes()
		}
		assert.Equal(t, s.PackedBytes(), sum, "shape %s", s)
		assert.Len(t, s.Flatten(), s.MemcpyCount(), "shape %s", s)
	}
}

func TestMemcpyCoherence(t *testing.T) {
	// memcpy_count <= leaf_count, equal exactly when the shape holds
	// no scalar fixed array.
	withRuns := []any{[3]int32{}, nested{}, [2][3]int16{}}
	for _, proto := range withRuns {
		s := mustOf(t, proto)
		assert.Less(t, s.MemcpyCount(), s.LeafCount(), "shape %s", s)
	}

	withoutRuns := []any{int64(0), pairI32I16{}, [3]pairI32I16{}, vec3f{}}
	for _, proto := range withoutRuns {
		s := mustOf(t, proto)
		assert.Equal(t, s.LeafCount(), s.MemcpyCount(), "shape %s", s)
	}
}

func TestOfRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		proto any
	}{
		{"string", "hello"},
		{"map", map[int32]int32{}},
		{"pointer", new(int32)},
		{"chan", make(chan int)},
		{"complex", complex64(0)},
		{"nested string", struct{ S string }{}},
		{"slice of maps", []map[int]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Of(reflect.TypeOf(tt.proto))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestOfRejectsUnexportedField(t *testing.T) {
	type hidden struct {
		A int32
		b int16 //nolint:unused // the unexported field is the point
	}
	_, err := Of(reflect.TypeOf(hidden{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
