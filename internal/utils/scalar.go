package utils

import (
	"encoding/binary"
	"math"
	"reflect"
)

// PutScalar writes the in-memory representation of a scalar leaf
// value into dst. dst must be exactly the leaf's byte width; the
// encoding is host-endian by contract.
func PutScalar(dst []byte, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		putBits(dst, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		putBits(dst, v.Uint())
	case reflect.Float32:
		binary.NativeEndian.PutUint32(dst, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		binary.NativeEndian.PutUint64(dst, math.Float64bits(v.Float()))
	}
}

// GetScalar reads the in-memory representation of a scalar leaf from
// src into v. v must be settable and src exactly the leaf's width.
func GetScalar(src []byte, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(src[0] != 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(getSigned(src))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(getBits(src))
	case reflect.Float32:
		v.SetFloat(float64(math.Float32frombits(binary.NativeEndian.Uint32(src))))
	case reflect.Float64:
		v.SetFloat(math.Float64frombits(binary.NativeEndian.Uint64(src)))
	}
}

// PutScalarRun writes a contiguous run of identically-typed scalar
// leaves (a fixed array or slice body) into dst as one block. dst
// must be exactly run length times element width. Byte slices take
// the bulk-copy path; every other run, fixed byte arrays included, is
// emitted element-wise into the single destination block.
func PutScalarRun(dst []byte, v reflect.Value, width int) {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		copy(dst, v.Bytes())
		return
	}
	for i, n := 0, v.Len(); i < n; i++ {
		PutScalar(dst[i*width:(i+1)*width], v.Index(i))
	}
}

// GetScalarRun reads a contiguous run of scalar leaves from src into
// the elements of v, the mirror of PutScalarRun. v must be settable.
func GetScalarRun(src []byte, v reflect.Value, width int) {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		copy(v.Bytes(), src)
		return
	}
	for i, n := 0, v.Len(); i < n; i++ {
		GetScalar(src[i*width:(i+1)*width], v.Index(i))
	}
}

func putBits(dst []byte, bits uint64) {
	switch len(dst) {
	case 1:
		dst[0] = byte(bits)
	case 2:
		binary.NativeEndian.PutUint16(dst, uint16(bits))
	case 4:
		binary.NativeEndian.PutUint32(dst, uint32(bits))
	case 8:
		binary.NativeEndian.PutUint64(dst, bits)
	}
}

func getBits(src []byte) uint64 {
	switch len(src) {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(src))
	case 4:
		return uint64(binary.NativeEndian.Uint32(src))
	case 8:
		return binary.NativeEndian.Uint64(src)
	}
	return 0
}

func getSigned(src []byte) int64 {
	switch len(src) {
	case 1:
		return int64(int8(src[0]))
	case 2:
		return int64(int16(binary.NativeEndian.Uint16(src)))
	case 4:
		return int64(int32(binary.NativeEndian.Uint32(src)))
	case 8:
		return int64(binary.NativeEndian.Uint64(src))
	}
	return 0
}
