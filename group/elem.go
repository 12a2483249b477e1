//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"strings"
)

// Elem is an n-bit domain element, packed MSB-first: bit 0 is the
// most significant bit of the element and lives in the high bit of
// the first byte. Unused low-order bits of the last byte are zero.
type Elem []byte

// NewElem creates a zero element of bits bits.
func NewElem(bits int) Elem {
	return make(Elem, (bits+7)/8)
}

// ElemBytes returns the byte length of an element of bits bits.
func ElemBytes(bits int) int {
	return (bits + 7) / 8
}

// ElemFromUint64 creates an element of bits bits from the bits least
// significant bits of x.
func ElemFromUint64(x uint64, bits int) Elem {
	e := NewElem(bits)
	for i := 0; i < bits && i < 64; i++ {
		e.SetBit(bits-1-i, byte(x>>i)&1)
	}
	return e
}

// Bit returns the i'th bit of the element, index 0 being the most
// significant bit.
func (e Elem) Bit(i int) byte {
	return (e[i/8] >> (7 - uint(i%8))) & 1
}

// SetBit sets the i'th bit of the element to b.
func (e Elem) SetBit(i int, b byte) {
	if b == 0 {
		e[i/8] &^= 1 << (7 - uint(i%8))
	} else {
		e[i/8] |= 1 << (7 - uint(i%8))
	}
}

// Uint64 returns the element as an unsigned integer. The element must
// have at most 64 bits.
func (e Elem) Uint64(bits int) uint64 {
	var v uint64
	for i := 0; i < bits; i++ {
		v = v<<1 | uint64(e.Bit(i))
	}
	return v
}

// String returns the element bits MSB-first.
func (e Elem) String() string {
	var sb strings.Builder
	for i := 0; i < len(e)*8; i++ {
		sb.WriteByte('0' + e.Bit(i))
	}
	return sb.String()
}
