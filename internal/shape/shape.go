// Package shape models the structural type of a packable value: a
// finite tree of fixed-width leaves, fixed arrays, tuples and dynamic
// sequences. Each node answers the structural questions the codecs
// dispatch on — wire size, leaf count and memcpy slot count — purely
// from the type, without a value.
package shape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/scigolib/binpack/internal/typelist"
)

// LeafMarshaler is the capability a user-defined leaf type provides
// to take part in serialization: a constant byte width plus the two
// copies between the value and a byte region. MarshalLeaf must write
// exactly LeafSize bytes into dst; UnmarshalLeaf must read exactly
// LeafSize bytes from src. UnmarshalLeaf mutates the receiver, so the
// methods are normally declared on the pointer type.
type LeafMarshaler interface {
	LeafSize() int
	MarshalLeaf(dst []byte)
	UnmarshalLeaf(src []byte)
}

// Shape is the structural type of a value.
//
// PackedBytes is the wire size of the shape and is meaningful only
// when Static reports true; sizing a dynamic shape needs a value and
// belongs to the run-time codec.
type Shape interface {
	// PackedBytes is the number of bytes the wire form occupies.
	PackedBytes() int
	// LeafCount is the number of scalar slots a full recursive walk
	// reaches. Fixed arrays and tuples expand into their leaves.
	LeafCount() int
	// MemcpyCount is LeafCount except that a fixed array of scalars
	// counts as one: the packer emits it with a single bulk copy.
	MemcpyCount() int
	// Static reports whether the shape contains no dynamic sequence.
	Static() bool
	// Flatten is the ordered leaf sequence of the shape in the memcpy
	// view: scalar fixed arrays stay one unit, compound arrays expand.
	// It is nil for non-static shapes.
	Flatten() typelist.List
	// Type is the Go type the shape was derived from.
	Type() reflect.Type

	fmt.Stringer
}

// Scalar is a fixed-width numeric, bool or enumeration leaf.
type Scalar struct {
	typ   reflect.Type
	width int
}

// PackedBytes returns the leaf's in-memory width.
func (s *Scalar) PackedBytes() int { return s.width }

// LeafCount returns 1.
func (s *Scalar) LeafCount() int { return 1 }

// MemcpyCount returns 1.
func (s *Scalar) MemcpyCount() int { return 1 }

// Static reports true.
func (s *Scalar) Static() bool { return true }

// Flatten returns the singleton list holding s.
func (s *Scalar) Flatten() typelist.List { return typelist.List{s} }

// Type returns the Go type of the leaf.
func (s *Scalar) Type() reflect.Type { return s.typ }

func (s *Scalar) String() string { return kindName(s.typ.Kind()) }

// Custom is a user-defined leaf registered through LeafMarshaler.
type Custom struct {
	typ   reflect.Type
	width int
}

// PackedBytes returns the width the type reported through LeafSize.
func (c *Custom) PackedBytes() int { return c.width }

// LeafCount returns 1.
func (c *Custom) LeafCount() int { return 1 }

// MemcpyCount returns 1.
func (c *Custom) MemcpyCount() int { return 1 }

// Static reports true.
func (c *Custom) Static() bool { return true }

// Flatten returns the singleton list holding c.
func (c *Custom) Flatten() typelist.List { return typelist.List{c} }

// Type returns the Go type of the leaf.
func (c *Custom) Type() reflect.Type { return c.typ }

func (c *Custom) String() string { return c.typ.String() }

// Array is a fixed-length array of a single element shape.
type Array struct {
	typ  reflect.Type
	Elem Shape
	Len  int
}

// PackedBytes returns Len times the element wire size.
func (a *Array) PackedBytes() int { return a.Len * a.Elem.PackedBytes() }

// LeafCount returns Len times the element leaf count.
func (a *Array) LeafCount() int { return a.Len * a.Elem.LeafCount() }

// MemcpyCount returns 1 for an array of scalars (the packer moves it
// in one bulk copy) and Len times the element count otherwise.
func (a *Array) MemcpyCount() int {
	if a.Scalar() {
		return 1
	}
	return a.Len * a.Elem.MemcpyCount()
}

// Static reports whether the element shape is static.
func (a *Array) Static() bool { return a.Elem.Static() }

// Scalar reports whether the element shape is a scalar leaf, i.e. the
// array body is one contiguous run of identically-typed leaves the
// packer can move with a single bulk copy. Custom leaves do not
// qualify: they pack through their own marshal hook, element by
// element.
func (a *Array) Scalar() bool {
	_, ok := a.Elem.(*Scalar)
	return ok
}

// Flatten keeps a scalar array as a single unit and expands a
// compound array into Len copies of the element leaf sequence.
func (a *Array) Flatten() typelist.List {
	if !a.Static() {
		return nil
	}
	if a.Scalar() {
		return typelist.List{a}
	}
	return typelist.Flatten(typelist.Repeat(a.Elem.Flatten(), a.Len))
}

// Type returns the Go array type.
func (a *Array) Type() reflect.Type { return a.typ }

func (a *Array) String() string {
	return fmt.Sprintf("array(%d, %s)", a.Len, a.Elem)
}

// Tuple is a fixed-arity sequence of heterogeneous shapes. Go structs
// map onto it, a two-field struct being the pair combinator.
type Tuple struct {
	typ   reflect.Type
	Elems []Shape
}

// PackedBytes returns the sum of the element wire sizes.
func (t *Tuple) PackedBytes() int {
	n := 0
	for _, e := range t.Elems {
		n += e.PackedBytes()
	}
	return n
}

// LeafCount returns the sum of the element leaf counts.
func (t *Tuple) LeafCount() int {
	n := 0
	for _, e := range t.Elems {
		n += e.LeafCount()
	}
	return n
}

// MemcpyCount returns the sum of the element slot counts.
func (t *Tuple) MemcpyCount() int {
	n := 0
	for _, e := range t.Elems {
		n += e.MemcpyCount()
	}
	return n
}

// Static reports whether every element shape is static.
func (t *Tuple) Static() bool {
	for _, e := range t.Elems {
		if !e.Static() {
			return false
		}
	}
	return true
}

// Flatten joins the element leaf sequences left to right.
func (t *Tuple) Flatten() typelist.List {
	if !t.Static() {
		return nil
	}
	parts := make([]typelist.List, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.Flatten()
	}
	return typelist.Join(parts...)
}

// Type returns the Go struct type.
func (t *Tuple) Type() reflect.Type { return t.typ }

func (t *Tuple) String() string {
	names := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		names[i] = e.String()
	}
	return "tuple(" + strings.Join(names, ", ") + ")"
}

// Seq is a dynamically-sized sequence; its length is known only from
// a value, so the structural size questions have no static answer.
type Seq struct {
	typ  reflect.Type
	Elem Shape
}

// PackedBytes returns 0; a dynamic sequence has no static wire size.
func (s *Seq) PackedBytes() int { return 0 }

// LeafCount returns 0; the leaf count depends on the value.
func (s *Seq) LeafCount() int { return 0 }

// MemcpyCount returns 0; the run-time codec does not use slots.
func (s *Seq) MemcpyCount() int { return 0 }

// Static reports false.
func (s *Seq) Static() bool { return false }

// Flatten returns nil; only static shapes flatten.
func (s *Seq) Flatten() typelist.List { return nil }

// Type returns the Go slice type.
func (s *Seq) Type() reflect.Type { return s.typ }

func (s *Seq) String() string { return fmt.Sprintf("seq(%s)", s.Elem) }

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "bool"
	case reflect.Int8:
		return "i8"
	case reflect.Int16:
		return "i16"
	case reflect.Int32:
		return "i32"
	case reflect.Int64:
		return "i64"
	case reflect.Int:
		return "int"
	case reflect.Uint8:
		return "u8"
	case reflect.Uint16:
		return "u16"
	case reflect.Uint32:
		return "u32"
	case reflect.Uint64:
		return "u64"
	case reflect.Uint:
		return "uint"
	case reflect.Uintptr:
		return "uptr"
	case reflect.Float32:
		return "f32"
	case reflect.Float64:
		return "f64"
	default:
		return k.String()
	}
}
