//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package group implements the fixed-width output group Z/2^m and the
// n-bit domain elements of the comparison function. Group values are
// held in 128 bits and reduced modulo 2^m by their Width; domain
// elements are MSB-first packed bit vectors.
package group

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrWidth is returned for output group widths the implementation
// does not support.
var ErrWidth = errors.New("group: unsupported width")

// Width is the output group width m in bits. The supported widths are
// 8, 16, 32, 64, and 128.
type Width uint16

// Valid tests if the width is supported.
func (w Width) Valid() bool {
	switch w {
	case 8, 16, 32, 64, 128:
		return true
	}
	return false
}

// Validate checks that the width is supported.
func (w Width) Validate() error {
	if !w.Valid() {
		return fmt.Errorf("%w: %d", ErrWidth, w)
	}
	return nil
}

// ByteLen returns the width in bytes.
func (w Width) ByteLen() int {
	return int(w) / 8
}

// Value is an element of Z/2^m, held in 128 bits. Values are kept
// reduced modulo 2^m by the Width operations.
type Value struct {
	Lo uint64
	Hi uint64
}

// ValueFromUint64 creates a value from x. The value is reduced by the
// first Width operation applied to it.
func ValueFromUint64(x uint64) Value {
	return Value{
		Lo: x,
	}
}

// Uint64 returns the low 64 bits of the value.
func (v Value) Uint64() uint64 {
	return v.Lo
}

// Equal tests if the values are equal.
func (v Value) Equal(o Value) bool {
	return v.Lo == o.Lo && v.Hi == o.Hi
}

// IsZero tests if the value is zero.
func (v Value) IsZero() bool {
	return v.Lo == 0 && v.Hi == 0
}

func (v Value) String() string {
	return fmt.Sprintf("%016x%016x", v.Hi, v.Lo)
}

// Reduce reduces the value modulo 2^m.
func (w Width) Reduce(v Value) Value {
	switch {
	case w >= 128:
		return v
	case w == 64:
		v.Hi = 0
	case w > 64:
		v.Hi &= 1<<(w-64) - 1
	default:
		v.Hi = 0
		v.Lo &= 1<<w - 1
	}
	return v
}

// Add returns a+b mod 2^m.
func (w Width) Add(a, b Value) Value {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return w.Reduce(Value{
		Lo: lo,
		Hi: hi,
	})
}

// Sub returns a-b mod 2^m.
func (w Width) Sub(a, b Value) Value {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return w.Reduce(Value{
		Lo: lo,
		Hi: hi,
	})
}

// Neg returns -a mod 2^m.
func (w Width) Neg(a Value) Value {
	return w.Sub(Value{}, a)
}

// Xor returns the bitwise XOR of a and b, reduced to the width.
func (w Width) Xor(a, b Value) Value {
	return w.Reduce(Value{
		Lo: a.Lo ^ b.Lo,
		Hi: a.Hi ^ b.Hi,
	})
}

// Bytes encodes the value as m/8 bytes, little-endian.
func (w Width) Bytes(v Value) []byte {
	v = w.Reduce(v)
	buf := make([]byte, w.ByteLen())
	for i := range buf {
		if i < 8 {
			buf[i] = byte(v.Lo >> (8 * i))
		} else {
			buf[i] = byte(v.Hi >> (8 * (i - 8)))
		}
	}
	return buf
}

// SetBytes decodes an m/8 byte little-endian buffer into a value.
func (w Width) SetBytes(data []byte) (Value, error) {
	if len(data) != w.ByteLen() {
		return Value{}, fmt.Errorf("group: value length %d, expected %d",
			len(data), w.ByteLen())
	}
	var v Value
	for i, b := range data {
		if i < 8 {
			v.Lo |= uint64(b) << (8 * i)
		} else {
			v.Hi |= uint64(b) << (8 * (i - 8))
		}
	}
	return v, nil
}
