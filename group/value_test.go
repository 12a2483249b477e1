//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"bytes"
	"testing"
)

var widths = []Width{8, 16, 32, 64, 128}

func TestWidthValid(t *testing.T) {
	for _, w := range widths {
		if !w.Valid() {
			t.Errorf("width %d not valid", w)
		}
	}
	for _, w := range []Width{0, 1, 7, 24, 48, 96, 127, 256} {
		if w.Valid() {
			t.Errorf("width %d valid", w)
		}
		if err := w.Validate(); err == nil {
			t.Errorf("width %d: no error", w)
		}
	}
}

func TestValueWraparound(t *testing.T) {
	for _, w := range widths {
		max := w.Sub(Value{}, ValueFromUint64(1))
		if got := w.Add(max, ValueFromUint64(1)); !got.IsZero() {
			t.Errorf("width %d: max+1 = %v, expected 0", w, got)
		}
		if got := w.Sub(Value{}, ValueFromUint64(1)); !got.Equal(max) {
			t.Errorf("width %d: 0-1 = %v, expected %v", w, got, max)
		}
		if got := w.Add(ValueFromUint64(1), w.Neg(ValueFromUint64(1))); !got.IsZero() {
			t.Errorf("width %d: 1+(-1) = %v, expected 0", w, got)
		}
	}
}

func TestValueWidth8(t *testing.T) {
	const w = Width(8)
	if got := w.Add(ValueFromUint64(200), ValueFromUint64(100)); got.Uint64() != 44 {
		t.Errorf("200+100 mod 256 = %d, expected 44", got.Uint64())
	}
	if got := w.Sub(ValueFromUint64(5), ValueFromUint64(7)); got.Uint64() != 254 {
		t.Errorf("5-7 mod 256 = %d, expected 254", got.Uint64())
	}
}

func TestValueWidth128(t *testing.T) {
	const w = Width(128)
	// Carry must propagate into the high limb.
	a := Value{Lo: ^uint64(0), Hi: 0}
	got := w.Add(a, ValueFromUint64(1))
	if got.Lo != 0 || got.Hi != 1 {
		t.Errorf("carry: got %v", got)
	}
	// Borrow must propagate from the high limb.
	got = w.Sub(Value{Lo: 0, Hi: 1}, ValueFromUint64(1))
	if got.Lo != ^uint64(0) || got.Hi != 0 {
		t.Errorf("borrow: got %v", got)
	}
}

func TestValueReduce(t *testing.T) {
	v := Value{Lo: 0x1122334455667788, Hi: 0x99aabbccddeeff00}
	if got := Width(8).Reduce(v); got.Lo != 0x88 || got.Hi != 0 {
		t.Errorf("reduce 8: %v", got)
	}
	if got := Width(64).Reduce(v); got.Lo != v.Lo || got.Hi != 0 {
		t.Errorf("reduce 64: %v", got)
	}
	if got := Width(128).Reduce(v); !got.Equal(v) {
		t.Errorf("reduce 128: %v", got)
	}
}

func TestValueBytes(t *testing.T) {
	// Little-endian, exact width.
	v := ValueFromUint64(0x01020304)
	got := Width(32).Bytes(v)
	if !bytes.Equal(got, []byte{4, 3, 2, 1}) {
		t.Errorf("bytes: %x", got)
	}

	for _, w := range widths {
		v := w.Reduce(Value{Lo: 0x1122334455667788, Hi: 0x99aabbccddeeff00})
		data := w.Bytes(v)
		if len(data) != w.ByteLen() {
			t.Errorf("width %d: %d bytes", w, len(data))
		}
		back, err := w.SetBytes(data)
		if err != nil {
			t.Fatalf("width %d: SetBytes: %v", w, err)
		}
		if !back.Equal(v) {
			t.Errorf("width %d: round-trip %v != %v", w, back, v)
		}
	}

	if _, err := Width(32).SetBytes([]byte{1, 2, 3}); err == nil {
		t.Errorf("short buffer accepted")
	}
}

func TestValueXor(t *testing.T) {
	const w = Width(16)
	got := w.Xor(ValueFromUint64(0xf0f0), ValueFromUint64(0x0ff0))
	if got.Uint64() != 0xff00 {
		t.Errorf("xor: %04x", got.Uint64())
	}
}
