package binpack_test

import (
	"fmt"

	"github.com/scigolib/binpack"
)

func ExamplePack() {
	buf, err := binpack.Pack(uint16(42), [3]int32{1, 2, 3})
	if err != nil {
		panic(err)
	}

	var header uint16
	var data [3]int32
	if err := binpack.Unpack(buf, &header, &data); err != nil {
		panic(err)
	}
	fmt.Println(len(buf), header, data)
	// Output: 14 42 [1 2 3]
}

func ExampleLayout() {
	type sample struct {
		ID   int64
		Data [4]int16
	}

	l, err := binpack.LayoutOf(sample{})
	if err != nil {
		panic(err)
	}
	fmt.Println(l.Size(), l.Offsets(), l.Describe())
	// Output: 16 [0 8] tuple(i64, array(4, i16))
}

func ExamplePackDyn() {
	type message struct {
		Kind    uint32
		Payload []uint8
	}
	in := message{Kind: 7, Payload: []uint8{1, 2, 3}}

	n, err := binpack.BytesCount(in)
	if err != nil {
		panic(err)
	}

	buf := make([]byte, n)
	if _, err := binpack.PackDyn(buf, in); err != nil {
		panic(err)
	}

	var out message
	if _, err := binpack.UnpackDyn(buf, &out); err != nil {
		panic(err)
	}
	fmt.Println(n, out.Kind, out.Payload)
	// Output: 11 7 [1 2 3]
}
