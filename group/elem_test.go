//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"testing"
)

func TestElemBitOrder(t *testing.T) {
	// 5 over 3 bits is 101, most significant bit first.
	e := ElemFromUint64(5, 3)
	if len(e) != 1 {
		t.Fatalf("len: %d", len(e))
	}
	bits := []byte{1, 0, 1}
	for i, expected := range bits {
		if got := e.Bit(i); got != expected {
			t.Errorf("bit %d: %d, expected %d", i, got, expected)
		}
	}
	if e[0] != 0xa0 {
		t.Errorf("packed: %02x", e[0])
	}
}

func TestElemRoundTrip(t *testing.T) {
	for bits := 1; bits <= 20; bits++ {
		limit := uint64(1) << bits
		step := uint64(1)
		if bits > 12 {
			step = 37
		}
		for v := uint64(0); v < limit; v += step {
			e := ElemFromUint64(v, bits)
			if got := e.Uint64(bits); got != v {
				t.Fatalf("bits=%d: %d != %d", bits, got, v)
			}
		}
	}
}

func TestElemSetBit(t *testing.T) {
	e := NewElem(12)
	e.SetBit(0, 1)
	e.SetBit(11, 1)
	if e.Bit(0) != 1 || e.Bit(11) != 1 {
		t.Errorf("set bits lost: %v", e)
	}
	for i := 1; i < 11; i++ {
		if e.Bit(i) != 0 {
			t.Errorf("bit %d set", i)
		}
	}
	e.SetBit(0, 0)
	if e.Bit(0) != 0 {
		t.Errorf("clear failed")
	}
}

func TestElemBytes(t *testing.T) {
	for _, bits := range []int{1, 7, 8, 9, 16, 17} {
		expected := (bits + 7) / 8
		if got := ElemBytes(bits); got != expected {
			t.Errorf("bits=%d: %d, expected %d", bits, got, expected)
		}
		if got := len(NewElem(bits)); got != expected {
			t.Errorf("bits=%d: NewElem len %d", bits, got)
		}
	}
}
